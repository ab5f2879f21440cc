package transfer

import (
	"context"

	"barstock/internal/core/id"
	"barstock/internal/core/types"
	"barstock/internal/domain/registers/locationstock"
)

// Service provides read and reconciliation operations over the ledger.
type Service struct {
	repo      Repository
	stockRepo locationstock.Repository
}

// NewService creates a new transfer ledger service.
func NewService(repo Repository, stockRepo locationstock.Repository) *Service {
	return &Service{repo: repo, stockRepo: stockRepo}
}

// GetByItem returns ledger entries for an item.
func (s *Service) GetByItem(ctx context.Context, itemID id.ID, filter ListFilter) ([]Transfer, error) {
	return s.repo.GetByItem(ctx, itemID, filter)
}

// ReconciliationRow compares a stock row quantity with its ledger total.
// When only this engine ever created and topped up the row, the two match.
type ReconciliationRow struct {
	LocationStockID id.ID          `json:"locationStockId"`
	LocationID      id.ID          `json:"locationId"`
	RowQuantity     types.Quantity `json:"rowQuantity"`
	LedgerTotal     types.Quantity `json:"ledgerTotal"`
	Consistent      bool           `json:"consistent"`
}

// Reconcile checks every stock row of an item against the summed transfer
// amounts referencing it.
func (s *Service) Reconcile(ctx context.Context, itemID id.ID) ([]ReconciliationRow, error) {
	rows, err := s.stockRepo.GetByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	sums, err := s.repo.SumByLocationStock(ctx, itemID)
	if err != nil {
		return nil, err
	}

	result := make([]ReconciliationRow, 0, len(rows))
	for _, row := range rows {
		total := sums[row.ID]
		result = append(result, ReconciliationRow{
			LocationStockID: row.ID,
			LocationID:      row.LocationID,
			RowQuantity:     row.Quantity,
			LedgerTotal:     total,
			Consistent:      total == row.Quantity,
		})
	}

	return result, nil
}
