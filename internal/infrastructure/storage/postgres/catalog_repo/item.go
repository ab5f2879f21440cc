// Package catalog_repo provides PostgreSQL implementations for catalog repositories.
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
	"barstock/internal/core/types"
	"barstock/internal/domain/catalogs/item"
	"barstock/internal/infrastructure/storage/postgres"
)

const itemsTable = "cat_items"

var itemColumns = []string{
	"id", "kind", "code", "name", "unit",
	"stock", "average_cost",
	"deletion_mark", "version", "created_at", "updated_at",
}

// ItemRepo implements item.Repository.
type ItemRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ item.Repository = (*ItemRepo)(nil)

// NewItemRepo creates a new item catalog repository.
func NewItemRepo(txManager *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new item.
func (r *ItemRepo) Create(ctx context.Context, itm *item.Item) error {
	q := r.builder.Insert(itemsTable).
		Columns(itemColumns...).
		Values(
			itm.ID, itm.Kind, itm.Code, itm.Name, itm.Unit,
			itm.Stock, itm.AverageCost,
			itm.DeletionMark, itm.Version, itm.CreatedAt, itm.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("Item", "code", itm.Code)
		}
		return apperror.NewDatabase(fmt.Errorf("insert item: %w", err))
	}

	return nil
}

// GetByID retrieves an item by id.
func (r *ItemRepo) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	q := r.builder.Select(itemColumns...).
		From(itemsTable).
		Where(squirrel.Eq{"id": itemID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var itm item.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &itm, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Item", itemID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get item: %w", err))
	}

	return &itm, nil
}

// GetForUpdate retrieves an item with a row lock. The lock serializes
// costing and allocation per item; must run inside a transaction.
func (r *ItemRepo) GetForUpdate(ctx context.Context, itemID id.ID) (*item.Item, error) {
	sql := `
		SELECT id, kind, code, name, unit,
		       stock, average_cost,
		       deletion_mark, version, created_at, updated_at
		FROM cat_items
		WHERE id = $1
		FOR UPDATE
	`

	var itm item.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &itm, sql, itemID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Item", itemID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get item for update: %w", err))
	}

	return &itm, nil
}

// List retrieves items with filtering.
func (r *ItemRepo) List(ctx context.Context, filter item.ListFilter) ([]*item.Item, error) {
	q := r.builder.Select(itemColumns...).From(itemsTable)

	if filter.Kind != nil {
		q = q.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	q = q.OrderBy("code")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*item.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select items: %w", err))
	}

	return items, nil
}

// ApplyPurchase increments stock and replaces the average cost in one
// statement. Caller must hold the item row lock.
func (r *ItemRepo) ApplyPurchase(ctx context.Context, itemID id.ID, qtyDelta types.Quantity, newAvgCost types.Money) error {
	sql := `
		UPDATE cat_items
		SET stock = stock + $1,
		    average_cost = $2,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $3
	`

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, qtyDelta, newAvgCost, itemID)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("apply purchase: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("Item", itemID)
	}

	return nil
}
