package dto

import (
	"time"

	"barstock/internal/domain/catalogs/location"
)

// LocationResponse represents a location in API responses.
type LocationResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	DeletionMark bool      `json:"deletionMark"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromLocation converts domain location to response DTO.
func FromLocation(loc *location.Location) LocationResponse {
	return LocationResponse{
		ID:           loc.ID.String(),
		Code:         loc.Code,
		Name:         loc.Name,
		DeletionMark: loc.DeletionMark,
		Version:      loc.Version,
		CreatedAt:    loc.CreatedAt,
		UpdatedAt:    loc.UpdatedAt,
	}
}

// CreateLocationRequest for creating locations.
type CreateLocationRequest struct {
	Code string `json:"code"`
	Name string `json:"name" binding:"required"`
}
