// Package document_repo provides PostgreSQL implementations for document repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/domain/purchasing"
	"barstock/internal/infrastructure/storage/postgres"
)

const purchasesTable = "doc_purchases"

var purchaseColumns = []string{
	"id", "item_id", "item_kind",
	"quantity", "unit_price",
	"supplier", "purchase_date", "notes", "responsible_user",
	"resulting_average_cost", "created_at",
}

// PurchaseRepo implements purchasing.Repository.
// Purchases are immutable documents; there is no update or delete path.
type PurchaseRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ purchasing.Repository = (*PurchaseRepo)(nil)

// NewPurchaseRepo creates a new purchase document repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new purchase record.
func (r *PurchaseRepo) Create(ctx context.Context, purchase *purchasing.Purchase) error {
	q := r.builder.Insert(purchasesTable).
		Columns(purchaseColumns...).
		Values(
			purchase.ID, purchase.ItemID, purchase.ItemKind,
			purchase.Quantity, purchase.UnitPrice,
			purchase.Supplier, purchase.PurchaseDate, purchase.Notes, purchase.ResponsibleUser,
			purchase.ResultingAverageCost, purchase.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert purchase: %w", err))
	}

	return nil
}

// GetByID retrieves a purchase by id.
func (r *PurchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*purchasing.Purchase, error) {
	q := r.builder.Select(purchaseColumns...).
		From(purchasesTable).
		Where(squirrel.Eq{"id": purchaseID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var purchase purchasing.Purchase
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &purchase, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Purchase", purchaseID)
		}
		return nil, apperror.NewDatabase(fmt.Errorf("get purchase: %w", err))
	}

	return &purchase, nil
}

// ListByItem retrieves purchases for an item, newest first.
func (r *PurchaseRepo) ListByItem(ctx context.Context, itemID id.ID, filter purchasing.ListFilter) ([]*purchasing.Purchase, error) {
	q := r.builder.Select(purchaseColumns...).
		From(purchasesTable).
		Where(squirrel.Eq{"item_id": itemID})

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"purchase_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"purchase_date": *filter.ToDate})
	}

	q = q.OrderBy("purchase_date DESC", "created_at DESC")

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

	var purchases []*purchasing.Purchase
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &purchases, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select purchases: %w", err))
	}

	return purchases, nil
}
