// Package locationstock provides the per-(item, location) stock register.
// Rows are the materialized view the allocation engine reads and writes.
package locationstock

import (
	"time"

	"barstock/internal/core/id"
	"barstock/internal/core/types"
)

// LocationStock is a quantity row uniquely keyed by (item_id, location_id).
// Created on first allocation to a location, incremented afterwards, never
// deleted by this subsystem.
type LocationStock struct {
	ID         id.ID `db:"id" json:"id"`
	ItemID     id.ID `db:"item_id" json:"itemId"`
	LocationID id.ID `db:"location_id" json:"locationId"`

	// Quantity held at the location. Never negative.
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	LastMovementAt time.Time `db:"last_movement_at" json:"lastMovementAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a new LocationStock row with generated ID.
func New(itemID, locationID id.ID, quantity types.Quantity) LocationStock {
	now := time.Now().UTC()
	return LocationStock{
		ID:             id.New(),
		ItemID:         itemID,
		LocationID:     locationID,
		Quantity:       quantity,
		LastMovementAt: now,
		UpdatedAt:      now,
	}
}

// TopUp adds a delta to the row quantity and touches movement timestamps.
func (ls *LocationStock) TopUp(delta types.Quantity) {
	ls.Quantity += delta
	now := time.Now().UTC()
	ls.LastMovementAt = now
	ls.UpdatedAt = now
}

// ItemStockRow is a LocationStock row joined with item display metadata,
// returned by the per-location listing.
type ItemStockRow struct {
	LocationStock

	ItemKind        string      `db:"item_kind" json:"itemKind"`
	ItemCode        string      `db:"item_code" json:"itemCode"`
	ItemName        string      `db:"item_name" json:"itemName"`
	ItemUnit        string      `db:"item_unit" json:"itemUnit"`
	ItemAverageCost types.Money `db:"item_average_cost" json:"itemAverageCost"`
}
