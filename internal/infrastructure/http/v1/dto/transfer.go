package dto

import (
	"time"

	"barstock/internal/domain/registers/locationstock"
	"barstock/internal/domain/registers/transfer"
)

// LocationStockResponse represents a stock row in API responses.
type LocationStockResponse struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"itemId"`
	LocationID     string    `json:"locationId"`
	Quantity       float64   `json:"quantity"`
	LastMovementAt time.Time `json:"lastMovementAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromLocationStock converts a stock row to response DTO.
func FromLocationStock(row locationstock.LocationStock) LocationStockResponse {
	return LocationStockResponse{
		ID:             row.ID.String(),
		ItemID:         row.ItemID.String(),
		LocationID:     row.LocationID.String(),
		Quantity:       row.Quantity.Float64(),
		LastMovementAt: row.LastMovementAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

// ItemStockResponse is a stock row joined with item metadata, used by the
// per-location listing.
type ItemStockResponse struct {
	LocationStockResponse

	ItemKind        string `json:"itemKind"`
	ItemCode        string `json:"itemCode"`
	ItemName        string `json:"itemName"`
	ItemUnit        string `json:"itemUnit"`
	ItemAverageCost string `json:"itemAverageCost"`
}

// FromItemStockRow converts a joined stock row to response DTO.
func FromItemStockRow(row locationstock.ItemStockRow) ItemStockResponse {
	return ItemStockResponse{
		LocationStockResponse: FromLocationStock(row.LocationStock),
		ItemKind:              row.ItemKind,
		ItemCode:              row.ItemCode,
		ItemName:              row.ItemName,
		ItemUnit:              row.ItemUnit,
		ItemAverageCost:       row.ItemAverageCost.String(),
	}
}

// TransferResponse represents a ledger entry in API responses.
type TransferResponse struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"itemId"`
	ToLocationID    string    `json:"toLocationId"`
	LocationStockID string    `json:"locationStockId"`
	AllocationID    string    `json:"allocationId"`
	Amount          float64   `json:"amount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FromTransfer converts a ledger entry to response DTO.
func FromTransfer(t transfer.Transfer) TransferResponse {
	return TransferResponse{
		ID:              t.ID.String(),
		ItemID:          t.ItemID.String(),
		ToLocationID:    t.ToLocationID.String(),
		LocationStockID: t.LocationStockID.String(),
		AllocationID:    t.AllocationID.String(),
		Amount:          t.Amount.Float64(),
		CreatedAt:       t.CreatedAt,
	}
}

// ReconciliationRowResponse compares a stock row against its ledger total.
type ReconciliationRowResponse struct {
	LocationStockID string  `json:"locationStockId"`
	LocationID      string  `json:"locationId"`
	RowQuantity     float64 `json:"rowQuantity"`
	LedgerTotal     float64 `json:"ledgerTotal"`
	Consistent      bool    `json:"consistent"`
}

// FromReconciliationRow converts a reconciliation row to response DTO.
func FromReconciliationRow(row transfer.ReconciliationRow) ReconciliationRowResponse {
	return ReconciliationRowResponse{
		LocationStockID: row.LocationStockID.String(),
		LocationID:      row.LocationID.String(),
		RowQuantity:     row.RowQuantity.Float64(),
		LedgerTotal:     row.LedgerTotal.Float64(),
		Consistent:      row.Consistent,
	}
}
