package locationstock

import (
	"context"

	"barstock/internal/core/id"
)

// Repository defines operations for the location stock register.
// No delete operation is exposed: rows are only created and topped up.
type Repository interface {
	// GetByItem returns all rows for an item across every location.
	GetByItem(ctx context.Context, itemID id.ID) ([]LocationStock, error)

	// GetByItemForUpdate returns all rows for an item with row locks.
	// Must be called within a transaction.
	GetByItemForUpdate(ctx context.Context, itemID id.ID) ([]LocationStock, error)

	// Upsert writes rows keyed by (item_id, location_id), replacing the
	// quantity with the engine-computed value. The allocation engine is the
	// sole writer, so last-writer-wins needs no merge logic.
	Upsert(ctx context.Context, rows []LocationStock) ([]LocationStock, error)

	// GetByLocation returns all rows for a location joined with item
	// display metadata.
	GetByLocation(ctx context.Context, locationID id.ID) ([]ItemStockRow, error)
}
