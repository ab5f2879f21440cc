package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/domain/catalogs/location"
	"barstock/internal/infrastructure/storage/postgres"
)

const locationsTable = "cat_locations"

var locationColumns = []string{
	"id", "code", "name",
	"deletion_mark", "version", "created_at", "updated_at",
}

// LocationRepo implements location.Repository.
type LocationRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ location.Repository = (*LocationRepo)(nil)

// NewLocationRepo creates a new location catalog repository.
func NewLocationRepo(txManager *postgres.TxManager) *LocationRepo {
	return &LocationRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new location.
func (r *LocationRepo) Create(ctx context.Context, loc *location.Location) error {
	q := r.builder.Insert(locationsTable).
		Columns(locationColumns...).
		Values(
			loc.ID, loc.Code, loc.Name,
			loc.DeletionMark, loc.Version, loc.CreatedAt, loc.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("Location", "code", loc.Code)
		}
		return apperror.NewDatabase(fmt.Errorf("insert location: %w", err))
	}

	return nil
}

// GetByID retrieves a location by id.
func (r *LocationRepo) GetByID(ctx context.Context, locationID id.ID) (*location.Location, error) {
	q := r.builder.Select(locationColumns...).
		From(locationsTable).
		Where(squirrel.Eq{"id": locationID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var loc location.Location
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &loc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Location", locationID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get location: %w", err))
	}

	return &loc, nil
}

// List retrieves all non-deleted locations.
func (r *LocationRepo) List(ctx context.Context) ([]*location.Location, error) {
	q := r.builder.Select(locationColumns...).
		From(locationsTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var locations []*location.Location
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &locations, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select locations: %w", err))
	}

	return locations, nil
}
