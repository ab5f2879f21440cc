package locationstock

import (
	"context"

	"barstock/internal/core/id"
)

// Service provides read operations over the location stock register.
// Writes go through the allocation engine only.
type Service struct {
	repo Repository
}

// NewService creates a new location stock service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetLocationStock returns stock rows for one location with item metadata.
func (s *Service) GetLocationStock(ctx context.Context, locationID id.ID) ([]ItemStockRow, error) {
	return s.repo.GetByLocation(ctx, locationID)
}

// GetByItem returns all rows for an item across locations.
func (s *Service) GetByItem(ctx context.Context, itemID id.ID) ([]LocationStock, error) {
	return s.repo.GetByItem(ctx, itemID)
}
