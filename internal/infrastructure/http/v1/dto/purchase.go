package dto

import (
	"time"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/core/types"
	"barstock/internal/domain/purchasing"
)

// PurchaseResponse represents a recorded purchase in API responses.
type PurchaseResponse struct {
	ID                   string    `json:"id"`
	ItemID               string    `json:"itemId"`
	ItemKind             string    `json:"itemKind"`
	Quantity             float64   `json:"quantity"`
	UnitPrice            string    `json:"unitPrice"`
	Supplier             string    `json:"supplier"`
	PurchaseDate         time.Time `json:"purchaseDate"`
	Notes                string    `json:"notes,omitempty"`
	ResponsibleUser      string    `json:"responsibleUser,omitempty"`
	ResultingAverageCost string    `json:"resultingAverageCost"`
	CreatedAt            time.Time `json:"createdAt"`
}

// FromPurchase converts domain purchase to response DTO.
func FromPurchase(p *purchasing.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:                   p.ID.String(),
		ItemID:               p.ItemID.String(),
		ItemKind:             string(p.ItemKind),
		Quantity:             p.Quantity.Float64(),
		UnitPrice:            p.UnitPrice.String(),
		Supplier:             p.Supplier,
		PurchaseDate:         p.PurchaseDate,
		Notes:                p.Notes,
		ResponsibleUser:      p.ResponsibleUser,
		ResultingAverageCost: p.ResultingAverageCost.String(),
		CreatedAt:            p.CreatedAt,
	}
}

// RecordPurchaseRequest for recording a purchase.
// Exactly one of productId/ingredientId must be set.
type RecordPurchaseRequest struct {
	ProductID    *string `json:"productId"`
	IngredientID *string `json:"ingredientId"`

	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice string  `json:"unitPrice" binding:"required"`

	Supplier        string    `json:"supplier" binding:"required"`
	PurchaseDate    time.Time `json:"purchaseDate" binding:"required"`
	Notes           string    `json:"notes"`
	ResponsibleUser string    `json:"responsibleUser"`
}

// ToInput converts the request to a domain input.
func (r *RecordPurchaseRequest) ToInput() (purchasing.RecordInput, error) {
	var input purchasing.RecordInput

	if r.ProductID != nil {
		parsed, err := id.Parse(*r.ProductID)
		if err != nil {
			return input, apperror.NewValidation("invalid productId format")
		}
		input.ProductID = &parsed
	}
	if r.IngredientID != nil {
		parsed, err := id.Parse(*r.IngredientID)
		if err != nil {
			return input, apperror.NewValidation("invalid ingredientId format")
		}
		input.IngredientID = &parsed
	}

	price, err := types.NewMoneyFromString(r.UnitPrice)
	if err != nil {
		return input, apperror.NewValidation("invalid unitPrice format")
	}

	input.Quantity = types.NewQuantityFromFloat64(r.Quantity)
	input.UnitPrice = price
	input.Supplier = r.Supplier
	input.PurchaseDate = r.PurchaseDate
	input.Notes = r.Notes
	input.ResponsibleUser = r.ResponsibleUser

	return input, nil
}

// PurchaseListRequest carries purchase listing filters.
type PurchaseListRequest struct {
	ItemID   string     `form:"itemId" binding:"required"`
	FromDate *time.Time `form:"fromDate"`
	ToDate   *time.Time `form:"toDate"`
	Limit    int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset   int        `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts the request to a repository filter.
func (r *PurchaseListRequest) ToFilter() purchasing.ListFilter {
	filter := purchasing.ListFilter{
		FromDate: r.FromDate,
		ToDate:   r.ToDate,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	return filter
}
