// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/domain/registers/locationstock"
	"barstock/internal/infrastructure/storage/postgres"
)

const locationStockTable = "reg_location_stock"

var locationStockColumns = []string{
	"id", "item_id", "location_id",
	"quantity", "last_movement_at", "updated_at",
}

// LocationStockRepo implements locationstock.Repository.
type LocationStockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ locationstock.Repository = (*LocationStockRepo)(nil)

// NewLocationStockRepo creates a new location stock register repository.
func NewLocationStockRepo(txManager *postgres.TxManager) *LocationStockRepo {
	return &LocationStockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByItem returns all rows for an item across every location.
func (r *LocationStockRepo) GetByItem(ctx context.Context, itemID id.ID) ([]locationstock.LocationStock, error) {
	q := r.builder.Select(locationStockColumns...).
		From(locationStockTable).
		Where(squirrel.Eq{"item_id": itemID}).
		OrderBy("location_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []locationstock.LocationStock
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select location stock: %w", err))
	}

	return rows, nil
}

// GetByItemForUpdate returns all rows for an item with row locks.
// Must be called within a transaction.
func (r *LocationStockRepo) GetByItemForUpdate(ctx context.Context, itemID id.ID) ([]locationstock.LocationStock, error) {
	sql := `
		SELECT id, item_id, location_id, quantity, last_movement_at, updated_at
		FROM reg_location_stock
		WHERE item_id = $1
		ORDER BY location_id
		FOR UPDATE
	`

	var rows []locationstock.LocationStock
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, itemID); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select location stock for update: %w", err))
	}

	return rows, nil
}

// Upsert writes rows keyed by (item_id, location_id). The incoming quantity
// replaces the stored one; last writer wins. Returns the persisted rows with
// the canonical row ids.
func (r *LocationStockRepo) Upsert(ctx context.Context, rows []locationstock.LocationStock) ([]locationstock.LocationStock, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	sql := `
		INSERT INTO reg_location_stock (id, item_id, location_id, quantity, last_movement_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (item_id, location_id) DO UPDATE
		SET quantity = EXCLUDED.quantity,
		    last_movement_at = EXCLUDED.last_movement_at,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, item_id, location_id, quantity, last_movement_at, updated_at
	`

	querier := r.txManager.GetQuerier(ctx)
	result := make([]locationstock.LocationStock, 0, len(rows))

	for _, row := range rows {
		var persisted locationstock.LocationStock
		err := pgxscan.Get(ctx, querier, &persisted, sql,
			row.ID, row.ItemID, row.LocationID,
			row.Quantity, row.LastMovementAt, row.UpdatedAt,
		)
		if err != nil {
			return nil, apperror.NewDatabase(fmt.Errorf("upsert location stock: %w", err))
		}
		result = append(result, persisted)
	}

	return result, nil
}

// GetByLocation returns all rows for a location joined with item metadata.
func (r *LocationStockRepo) GetByLocation(ctx context.Context, locationID id.ID) ([]locationstock.ItemStockRow, error) {
	q := r.builder.Select(
		"ls.id", "ls.item_id", "ls.location_id",
		"ls.quantity", "ls.last_movement_at", "ls.updated_at",
		"i.kind AS item_kind", "i.code AS item_code", "i.name AS item_name",
		"i.unit AS item_unit", "i.average_cost AS item_average_cost",
	).From(locationStockTable + " ls").
		Join("cat_items i ON i.id = ls.item_id").
		Where(squirrel.Eq{"ls.location_id": locationID}).
		OrderBy("i.code")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []locationstock.ItemStockRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select location listing: %w", err))
	}

	return rows, nil
}
