package location

import (
	"context"

	"barstock/internal/core/id"
	"barstock/pkg/logger"
)

// Service provides catalog operations for locations.
type Service struct {
	repo Repository
}

// NewService creates a new location catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new location.
func (s *Service) Create(ctx context.Context, loc *Location) error {
	if err := loc.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, loc); err != nil {
		return err
	}

	logger.Info(ctx, "location created", "id", loc.ID, "code", loc.Code)
	return nil
}

// GetByID retrieves a location by id.
func (s *Service) GetByID(ctx context.Context, locationID id.ID) (*Location, error) {
	return s.repo.GetByID(ctx, locationID)
}

// List retrieves all locations.
func (s *Service) List(ctx context.Context) ([]*Location, error) {
	return s.repo.List(ctx)
}
