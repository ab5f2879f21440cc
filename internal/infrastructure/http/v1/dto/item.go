package dto

import (
	"time"

	"barstock/internal/core/types"
	"barstock/internal/domain/catalogs/item"
)

// ItemResponse represents a catalog item in API responses.
type ItemResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	Stock        float64   `json:"stock"`
	AverageCost  string    `json:"averageCost"`
	DeletionMark bool      `json:"deletionMark"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromItem converts domain item to response DTO.
func FromItem(itm *item.Item) ItemResponse {
	return ItemResponse{
		ID:           itm.ID.String(),
		Kind:         string(itm.Kind),
		Code:         itm.Code,
		Name:         itm.Name,
		Unit:         itm.Unit,
		Stock:        itm.Stock.Float64(),
		AverageCost:  itm.AverageCost.String(),
		DeletionMark: itm.DeletionMark,
		Version:      itm.Version,
		CreatedAt:    itm.CreatedAt,
		UpdatedAt:    itm.UpdatedAt,
	}
}

// CreateItemRequest for creating catalog items.
type CreateItemRequest struct {
	Kind string `json:"kind" binding:"required,oneof=product ingredient"`
	Code string `json:"code"`
	Name string `json:"name" binding:"required"`
	Unit string `json:"unit" binding:"required"`
}

// ToInput converts the request to domain values.
func (r *CreateItemRequest) ToInput() (item.Kind, string, string, string) {
	return item.Kind(r.Kind), r.Code, r.Name, r.Unit
}

// ItemListRequest carries item listing filters.
type ItemListRequest struct {
	Kind           string `form:"kind" binding:"omitempty,oneof=product ingredient"`
	IncludeDeleted bool   `form:"includeDeleted"`
	Limit          int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset         int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts the request to a repository filter.
func (r *ItemListRequest) ToFilter() item.ListFilter {
	filter := item.ListFilter{
		IncludeDeleted: r.IncludeDeleted,
		Limit:          r.Limit,
		Offset:         r.Offset,
	}
	if r.Kind != "" {
		kind := item.Kind(r.Kind)
		filter.Kind = &kind
	}
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	return filter
}

// quantityFromFloat converts an API quantity to the fixed-point domain type.
func quantityFromFloat(v float64) types.Quantity {
	return types.NewQuantityFromFloat64(v)
}
