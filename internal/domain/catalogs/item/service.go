package item

import (
	"context"

	"barstock/internal/core/id"
	"barstock/pkg/logger"
)

// Service provides catalog operations for items.
// Catalog management proper lives outside this subsystem; Create exists for
// seeding and operational convenience.
type Service struct {
	repo Repository
}

// NewService creates a new item catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new item.
func (s *Service) Create(ctx context.Context, itm *Item) error {
	if err := itm.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, itm); err != nil {
		return err
	}

	logger.Info(ctx, "item created",
		"id", itm.ID,
		"kind", itm.Kind,
		"code", itm.Code,
	)

	return nil
}

// GetByID retrieves an item by id.
func (s *Service) GetByID(ctx context.Context, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

// List retrieves items with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Item, error) {
	return s.repo.List(ctx, filter)
}
