// Package purchasing provides the purchase recorder: it persists purchase
// events and maintains the running weighted-average unit cost per item.
package purchasing

import (
	"context"
	"time"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/core/types"
	"barstock/internal/domain/catalogs/item"
)

// Purchase is an immutable record of one buy. Never updated or deleted.
type Purchase struct {
	ID id.ID `db:"id" json:"id"`

	// ItemID references exactly one product or ingredient.
	ItemID   id.ID     `db:"item_id" json:"itemId"`
	ItemKind item.Kind `db:"item_kind" json:"itemKind"`

	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`

	Supplier     string    `db:"supplier" json:"supplier"`
	PurchaseDate time.Time `db:"purchase_date" json:"purchaseDate"`
	Notes        string    `db:"notes" json:"notes,omitempty"`

	// ResponsibleUser is who recorded the purchase.
	ResponsibleUser string `db:"responsible_user" json:"responsibleUser,omitempty"`

	// ResultingAverageCost is the item's weighted-average cost after this
	// purchase, stored for audit.
	ResultingAverageCost types.Money `db:"resulting_average_cost" json:"resultingAverageCost"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// RecordInput carries one purchase event.
// Exactly one of ProductID/IngredientID must be set.
type RecordInput struct {
	ProductID    *id.ID
	IngredientID *id.ID

	Quantity  types.Quantity
	UnitPrice types.Money

	Supplier        string
	PurchaseDate    time.Time
	Notes           string
	ResponsibleUser string
}

// Validate checks the input preconditions.
func (in *RecordInput) Validate() error {
	if (in.ProductID == nil) == (in.IngredientID == nil) {
		return apperror.NewValidation("exactly one of productId or ingredientId is required").
			WithDetail("field", "productId")
	}

	if !in.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	if !in.UnitPrice.IsPositive() {
		return apperror.NewValidation("unit price must be positive").
			WithDetail("field", "unitPrice")
	}

	if in.Supplier == "" {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplier")
	}

	if in.PurchaseDate.IsZero() {
		return apperror.NewValidation("purchase date is required").
			WithDetail("field", "purchaseDate")
	}

	return nil
}

// ItemID returns whichever item reference is set.
func (in *RecordInput) ItemID() id.ID {
	if in.ProductID != nil {
		return *in.ProductID
	}
	if in.IngredientID != nil {
		return *in.IngredientID
	}
	return id.Nil()
}

// ItemKind returns the kind matching the set reference.
func (in *RecordInput) ItemKind() item.Kind {
	if in.ProductID != nil {
		return item.KindProduct
	}
	return item.KindIngredient
}

// Repository defines storage operations for purchase records.
type Repository interface {
	Create(ctx context.Context, purchase *Purchase) error
	GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error)
	ListByItem(ctx context.Context, itemID id.ID, filter ListFilter) ([]*Purchase, error)
}

// ListFilter for purchase listing.
type ListFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}
