// Package item provides the item catalog: purchasable and stockable units.
// An item is either a product (sold as-is) or an ingredient (consumed by recipes).
package item

import (
	"context"
	"time"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/core/types"
)

// Kind defines the item variant. The two variants are mutually exclusive.
type Kind string

const (
	KindProduct    Kind = "product"
	KindIngredient Kind = "ingredient"
)

// Item represents a purchasable/stockable unit.
//
// Stock and AverageCost are mutated only by the purchase recorder; allocation
// moves stock between locations conceptually and never changes these fields.
type Item struct {
	ID   id.ID  `db:"id" json:"id"`
	Kind Kind   `db:"kind" json:"kind"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`

	// Unit is the unit of measure (bottle, kg, l).
	Unit string `db:"unit" json:"unit"`

	// Stock is the quantity held centrally, increased by purchases.
	Stock types.Quantity `db:"stock" json:"stock"`

	// AverageCost is the running weighted-average unit cost.
	// Zero until the first purchase arrives.
	AverageCost types.Money `db:"average_cost" json:"averageCost"`

	DeletionMark bool `db:"deletion_mark" json:"deletionMark"`

	// Version for optimistic locking by external catalog writers.
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a new Item with generated ID.
func New(kind Kind, code, name, unit string) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:          id.New(),
		Kind:        kind,
		Code:        code,
		Name:        name,
		Unit:        unit,
		AverageCost: types.ZeroMoney(),
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks item invariants.
func (i *Item) Validate(ctx context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if i.Kind != KindProduct && i.Kind != KindIngredient {
		return apperror.NewValidation("invalid item kind").
			WithDetail("field", "kind").
			WithDetail("value", string(i.Kind))
	}

	if i.Stock.IsNegative() {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}

	if i.AverageCost.IsNegative() {
		return apperror.NewValidation("average cost cannot be negative").
			WithDetail("field", "averageCost")
	}

	return nil
}

// HasCost reports whether the item carries a usable average cost.
// Positive stock with zero cost means the cost history was lost or never
// recorded; the next purchase resets the average (documented policy).
func (i *Item) HasCost() bool {
	return i.Stock.IsPositive() && i.AverageCost.IsPositive()
}
