// Package transfer provides the append-only transfer ledger.
// Every stock movement into a location is recorded here for audit and
// reconciliation; entries are never updated or deleted.
package transfer

import (
	"time"

	"barstock/internal/core/id"
	"barstock/internal/core/types"
)

// Transfer is an immutable ledger entry for one stock movement.
// Many transfers reference one LocationStock row (1:N); each allocation call
// produces one transfer per destination location touched.
type Transfer struct {
	ID id.ID `db:"id" json:"id"`

	// ItemID is the moved item (denormalized for ledger queries).
	ItemID id.ID `db:"item_id" json:"itemId"`

	// ToLocationID is the destination location.
	ToLocationID id.ID `db:"to_location_id" json:"toLocationId"`

	// LocationStockID references the row this movement landed on.
	LocationStockID id.ID `db:"location_stock_id" json:"locationStockId"`

	// AllocationID groups all transfers emitted by one allocation call.
	AllocationID id.ID `db:"allocation_id" json:"allocationId"`

	// Amount moved. Always positive.
	Amount types.Quantity `db:"amount" json:"amount"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a new Transfer entry with generated ID.
func New(itemID, toLocationID, locationStockID, allocationID id.ID, amount types.Quantity) Transfer {
	return Transfer{
		ID:              id.New(),
		ItemID:          itemID,
		ToLocationID:    toLocationID,
		LocationStockID: locationStockID,
		AllocationID:    allocationID,
		Amount:          amount,
		CreatedAt:       time.Now().UTC(),
	}
}
