package item

import (
	"context"

	"barstock/internal/core/id"
	"barstock/internal/core/types"
)

// Repository defines storage operations for the item catalog.
type Repository interface {
	// Create inserts a new item.
	Create(ctx context.Context, itm *Item) error

	// GetByID retrieves an item by id.
	GetByID(ctx context.Context, itemID id.ID) (*Item, error)

	// GetForUpdate retrieves an item with a row lock.
	// Serializes concurrent purchases and allocations per item; must be
	// called within a transaction.
	GetForUpdate(ctx context.Context, itemID id.ID) (*Item, error)

	// List retrieves items with filtering.
	List(ctx context.Context, filter ListFilter) ([]*Item, error)

	// ApplyPurchase increments stock and replaces the average cost.
	// Only the purchase recorder calls this, inside the recording transaction.
	ApplyPurchase(ctx context.Context, itemID id.ID, qtyDelta types.Quantity, newAvgCost types.Money) error
}

// ListFilter for item listing.
type ListFilter struct {
	Kind           *Kind
	IncludeDeleted bool
	Limit          int
	Offset         int
}
