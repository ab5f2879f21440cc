// Package location provides the location catalog: physical bars stock is
// allocated to.
package location

import (
	"context"
	"time"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
)

// Location represents a physical location (bar) within the venue.
type Location struct {
	ID           id.ID  `db:"id" json:"id"`
	Code         string `db:"code" json:"code"`
	Name         string `db:"name" json:"name"`
	DeletionMark bool   `db:"deletion_mark" json:"deletionMark"`
	Version      int    `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a new Location with generated ID.
func New(code, name string) *Location {
	now := time.Now().UTC()
	return &Location{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks location invariants.
func (l *Location) Validate(ctx context.Context) error {
	if l.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Repository defines storage operations for the location catalog.
type Repository interface {
	Create(ctx context.Context, loc *Location) error
	GetByID(ctx context.Context, locationID id.ID) (*Location, error)
	List(ctx context.Context) ([]*Location, error)
}
