package dto

import (
	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/core/types"
	"barstock/internal/domain/allocation"
)

// AllocateRequest for distributing stock to locations.
type AllocateRequest struct {
	ItemID                 string   `json:"itemId" binding:"required"`
	Quantity               float64  `json:"quantity" binding:"required,gt=0"`
	DestinationLocationIDs []string `json:"destinationLocationIds" binding:"required,min=1"`
}

// ToInput converts the request to a domain input.
func (r *AllocateRequest) ToInput() (allocation.Input, error) {
	var input allocation.Input

	itemID, err := id.Parse(r.ItemID)
	if err != nil {
		return input, apperror.NewValidation("invalid itemId format")
	}

	destinations := make([]id.ID, 0, len(r.DestinationLocationIDs))
	for _, raw := range r.DestinationLocationIDs {
		locID, err := id.Parse(raw)
		if err != nil {
			return input, apperror.NewValidation("invalid destination location id format").
				WithDetail("value", raw)
		}
		destinations = append(destinations, locID)
	}

	input.ItemID = itemID
	input.Quantity = types.NewQuantityFromFloat64(r.Quantity)
	input.DestinationLocationIDs = destinations

	return input, nil
}

// AllocationResponse represents the outcome of one allocation call.
type AllocationResponse struct {
	Created   bool                    `json:"created"`
	Rows      []LocationStockResponse `json:"rows"`
	Transfers []TransferResponse      `json:"transfers"`
}

// FromAllocationResult converts a domain result to response DTO.
func FromAllocationResult(res *allocation.Result) AllocationResponse {
	rows := make([]LocationStockResponse, len(res.Rows))
	for i, row := range res.Rows {
		rows[i] = FromLocationStock(row)
	}

	transfers := make([]TransferResponse, len(res.Transfers))
	for i, t := range res.Transfers {
		transfers[i] = FromTransfer(t)
	}

	return AllocationResponse{
		Created:   res.Created,
		Rows:      rows,
		Transfers: transfers,
	}
}
