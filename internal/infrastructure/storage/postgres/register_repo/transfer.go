package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/core/types"
	"barstock/internal/domain/registers/transfer"
	"barstock/internal/infrastructure/storage/postgres"
)

const transfersTable = "reg_transfers"

var transferColumns = []string{
	"id", "item_id", "to_location_id",
	"location_stock_id", "allocation_id",
	"amount", "created_at",
}

// TransferRepo implements transfer.Repository.
// The ledger is append-only; no update or delete statements exist here.
type TransferRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ transfer.Repository = (*TransferRepo)(nil)

// NewTransferRepo creates a new transfer ledger repository.
func NewTransferRepo(txManager *postgres.TxManager) *TransferRepo {
	return &TransferRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Append inserts ledger entries. Uses COPY when inside a transaction.
func (r *TransferRepo) Append(ctx context.Context, transfers []transfer.Transfer) ([]transfer.Transfer, error) {
	if len(transfers) == 0 {
		return nil, nil
	}

	// Fast path: COPY when inside a transaction.
	if tx := r.txManager.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txManager)
		rows := make([][]any, 0, len(transfers))
		for _, t := range transfers {
			rows = append(rows, []any{
				t.ID, t.ItemID, t.ToLocationID,
				t.LocationStockID, t.AllocationID,
				t.Amount, t.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, transfersTable, transferColumns, rows); err != nil {
			return nil, apperror.NewDatabase(fmt.Errorf("copy transfers: %w", err))
		}
		return transfers, nil
	}

	q := r.builder.Insert(transfersTable).Columns(transferColumns...)
	for _, t := range transfers {
		q = q.Values(
			t.ID, t.ItemID, t.ToLocationID,
			t.LocationStockID, t.AllocationID,
			t.Amount, t.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("insert transfers: %w", err))
	}

	return transfers, nil
}

// GetByItem returns ledger entries for an item, newest first.
func (r *TransferRepo) GetByItem(ctx context.Context, itemID id.ID, filter transfer.ListFilter) ([]transfer.Transfer, error) {
	q := r.builder.Select(transferColumns...).
		From(transfersTable).
		Where(squirrel.Eq{"item_id": itemID})

	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"to_location_id": *filter.LocationID})
	}

	q = q.OrderBy("created_at DESC", "id DESC")

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

	var transfers []transfer.Transfer
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &transfers, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select transfers: %w", err))
	}

	return transfers, nil
}

// GetByLocationStock returns all entries referencing one stock row.
func (r *TransferRepo) GetByLocationStock(ctx context.Context, locationStockID id.ID) ([]transfer.Transfer, error) {
	q := r.builder.Select(transferColumns...).
		From(transfersTable).
		Where(squirrel.Eq{"location_stock_id": locationStockID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var transfers []transfer.Transfer
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &transfers, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select transfers by stock row: %w", err))
	}

	return transfers, nil
}

// SumByLocationStock returns summed ledger amounts per stock row for an item.
// Used by the reconciliation report.
func (r *TransferRepo) SumByLocationStock(ctx context.Context, itemID id.ID) (map[id.ID]types.Quantity, error) {
	sql := `
		SELECT location_stock_id, COALESCE(SUM(amount), 0) AS total
		FROM reg_transfers
		WHERE item_id = $1
		GROUP BY location_stock_id
	`

	querier := r.txManager.GetQuerier(ctx)
	rows, err := querier.Query(ctx, sql, itemID)
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("sum transfers: %w", err))
	}
	defer rows.Close()

	totals := make(map[id.ID]types.Quantity)
	for rows.Next() {
		var stockID id.ID
		var total int64
		if err := rows.Scan(&stockID, &total); err != nil {
			return nil, apperror.NewDatabase(fmt.Errorf("scan transfer sum: %w", err))
		}
		totals[stockID] = types.NewQuantityFromInt64Scaled(total)
	}

	return totals, rows.Err()
}
