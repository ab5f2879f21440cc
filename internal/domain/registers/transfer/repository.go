package transfer

import (
	"context"

	"barstock/internal/core/id"
	"barstock/internal/core/types"
)

// Repository defines operations for the transfer ledger.
// Purely additive; there is no update or delete contract.
type Repository interface {
	// Append inserts ledger entries. Must be called within the same
	// transaction as the row writes the entries reference.
	Append(ctx context.Context, transfers []Transfer) ([]Transfer, error)

	// GetByItem returns ledger entries for an item, newest first.
	GetByItem(ctx context.Context, itemID id.ID, filter ListFilter) ([]Transfer, error)

	// GetByLocationStock returns all entries referencing one stock row.
	GetByLocationStock(ctx context.Context, locationStockID id.ID) ([]Transfer, error)

	// SumByLocationStock returns summed amounts per stock row for an item,
	// used for reconciliation against current row quantities.
	SumByLocationStock(ctx context.Context, itemID id.ID) (map[id.ID]types.Quantity, error)
}

// ListFilter for ledger queries.
type ListFilter struct {
	LocationID *id.ID
	Limit      int
	Offset     int
}
