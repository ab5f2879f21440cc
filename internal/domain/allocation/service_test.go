package allocation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/core/types"
	"barstock/internal/domain/catalogs/item"
	"barstock/internal/domain/events"
	"barstock/internal/domain/registers/locationstock"
	"barstock/internal/domain/registers/transfer"
)

// --- Fakes ---

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeItemRepo struct {
	items map[id.ID]*item.Item
}

func newFakeItemRepo(items ...*item.Item) *fakeItemRepo {
	repo := &fakeItemRepo{items: make(map[id.ID]*item.Item)}
	for _, itm := range items {
		repo.items[itm.ID] = itm
	}
	return repo
}

func (r *fakeItemRepo) Create(ctx context.Context, itm *item.Item) error {
	r.items[itm.ID] = itm
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	itm, ok := r.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("Item", itemID)
	}
	return itm, nil
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, itemID id.ID) (*item.Item, error) {
	return r.GetByID(ctx, itemID)
}

func (r *fakeItemRepo) List(ctx context.Context, filter item.ListFilter) ([]*item.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) ApplyPurchase(ctx context.Context, itemID id.ID, qtyDelta types.Quantity, newAvgCost types.Money) error {
	return nil
}

type fakeStockRepo struct {
	rows     []locationstock.LocationStock
	upserted []locationstock.LocationStock
}

func (r *fakeStockRepo) GetByItem(ctx context.Context, itemID id.ID) ([]locationstock.LocationStock, error) {
	var out []locationstock.LocationStock
	for _, row := range r.rows {
		if row.ItemID == itemID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) GetByItemForUpdate(ctx context.Context, itemID id.ID) ([]locationstock.LocationStock, error) {
	return r.GetByItem(ctx, itemID)
}

func (r *fakeStockRepo) Upsert(ctx context.Context, rows []locationstock.LocationStock) ([]locationstock.LocationStock, error) {
	r.upserted = append(r.upserted, rows...)
	for _, incoming := range rows {
		replaced := false
		for i, existing := range r.rows {
			if existing.ItemID == incoming.ItemID && existing.LocationID == incoming.LocationID {
				r.rows[i] = incoming
				replaced = true
				break
			}
		}
		if !replaced {
			r.rows = append(r.rows, incoming)
		}
	}
	return rows, nil
}

func (r *fakeStockRepo) GetByLocation(ctx context.Context, locationID id.ID) ([]locationstock.ItemStockRow, error) {
	return nil, nil
}

type fakeTransferRepo struct {
	appended []transfer.Transfer
}

func (r *fakeTransferRepo) Append(ctx context.Context, transfers []transfer.Transfer) ([]transfer.Transfer, error) {
	r.appended = append(r.appended, transfers...)
	return transfers, nil
}

func (r *fakeTransferRepo) GetByItem(ctx context.Context, itemID id.ID, filter transfer.ListFilter) ([]transfer.Transfer, error) {
	return r.appended, nil
}

func (r *fakeTransferRepo) GetByLocationStock(ctx context.Context, locationStockID id.ID) ([]transfer.Transfer, error) {
	var out []transfer.Transfer
	for _, t := range r.appended {
		if t.LocationStockID == locationStockID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransferRepo) SumByLocationStock(ctx context.Context, itemID id.ID) (map[id.ID]types.Quantity, error) {
	sums := make(map[id.ID]types.Quantity)
	for _, t := range r.appended {
		if t.ItemID == itemID {
			sums[t.LocationStockID] += t.Amount
		}
	}
	return sums, nil
}

type fakePublisher struct {
	events []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

// --- Tests ---

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func TestAllocate_CreatesRowWhenNoneExists(t *testing.T) {
	itm := item.New(item.KindProduct, "BEER", "Lager", "pcs")
	stock := &fakeStockRepo{}
	transfers := &fakeTransferRepo{}
	publisher := &fakePublisher{}

	svc := NewService(newFakeItemRepo(itm), stock, transfers, &fakeTxManager{}, publisher)

	dest := id.New()
	result, err := svc.Allocate(context.Background(), Input{
		ItemID:                 itm.ID,
		Quantity:               qty(5),
		DestinationLocationIDs: []id.ID{dest},
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, dest, result.Rows[0].LocationID)
	assert.Equal(t, qty(5), result.Rows[0].Quantity)

	require.Len(t, result.Transfers, 1)
	assert.Equal(t, qty(5), result.Transfers[0].Amount)
	assert.Equal(t, result.Rows[0].ID, result.Transfers[0].LocationStockID)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.TypeStockAllocated, publisher.events[0].EventType)
}

func TestAllocate_TopUpSkipsDestinationsWithoutRows(t *testing.T) {
	itm := item.New(item.KindProduct, "BEER", "Lager", "pcs")
	l1, l2 := id.New(), id.New()

	existing := locationstock.New(itm.ID, l1, qty(5))
	stock := &fakeStockRepo{rows: []locationstock.LocationStock{existing}}
	transfers := &fakeTransferRepo{}

	svc := NewService(newFakeItemRepo(itm), stock, transfers, &fakeTxManager{}, nil)

	// L1 has a row, L2 does not: only L1 is topped up, L2 is skipped.
	result, err := svc.Allocate(context.Background(), Input{
		ItemID:                 itm.ID,
		Quantity:               qty(3),
		DestinationLocationIDs: []id.ID{l1, l2},
	})
	require.NoError(t, err)

	assert.False(t, result.Created)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, l1, result.Rows[0].LocationID)
	assert.Equal(t, qty(8), result.Rows[0].Quantity)

	require.Len(t, result.Transfers, 1)
	assert.Equal(t, qty(3), result.Transfers[0].Amount)
	assert.Equal(t, l1, result.Transfers[0].ToLocationID)

	// L2 must not have gained a row.
	for _, row := range stock.rows {
		assert.NotEqual(t, l2, row.LocationID)
	}
}

func TestAllocate_TopUpAppliesFullQuantityToEveryMatchedRow(t *testing.T) {
	itm := item.New(item.KindProduct, "BEER", "Lager", "pcs")
	l1, l2 := id.New(), id.New()

	stock := &fakeStockRepo{rows: []locationstock.LocationStock{
		locationstock.New(itm.ID, l1, qty(5)),
		locationstock.New(itm.ID, l2, qty(2)),
	}}
	transfers := &fakeTransferRepo{}

	svc := NewService(newFakeItemRepo(itm), stock, transfers, &fakeTxManager{}, nil)

	// The quantity is not split: each matched row gains the full amount.
	result, err := svc.Allocate(context.Background(), Input{
		ItemID:                 itm.ID,
		Quantity:               qty(3),
		DestinationLocationIDs: []id.ID{l1, l2},
	})
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	byLocation := make(map[id.ID]types.Quantity)
	for _, row := range result.Rows {
		byLocation[row.LocationID] = row.Quantity
	}
	assert.Equal(t, qty(8), byLocation[l1])
	assert.Equal(t, qty(5), byLocation[l2])
}

func TestAllocate_CreatesOneRowPerDestination(t *testing.T) {
	itm := item.New(item.KindProduct, "BEER", "Lager", "pcs")
	stock := &fakeStockRepo{}
	transfers := &fakeTransferRepo{}

	svc := NewService(newFakeItemRepo(itm), stock, transfers, &fakeTxManager{}, nil)

	dests := []id.ID{id.New(), id.New(), id.New()}
	result, err := svc.Allocate(context.Background(), Input{
		ItemID:                 itm.ID,
		Quantity:               qty(2),
		DestinationLocationIDs: dests,
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Len(t, result.Rows, 3)
	assert.Len(t, result.Transfers, 3)
	for _, row := range result.Rows {
		assert.Equal(t, qty(2), row.Quantity)
	}

	// All ledger entries share one allocation id.
	allocID := result.Transfers[0].AllocationID
	for _, tr := range result.Transfers {
		assert.Equal(t, allocID, tr.AllocationID)
	}
}

func TestAllocate_TransferCountMatchesRowCount(t *testing.T) {
	itm := item.New(item.KindProduct, "BEER", "Lager", "pcs")
	l1 := id.New()
	stock := &fakeStockRepo{rows: []locationstock.LocationStock{
		locationstock.New(itm.ID, l1, qty(1)),
	}}

	svc := NewService(newFakeItemRepo(itm), stock, &fakeTransferRepo{}, &fakeTxManager{}, nil)

	result, err := svc.Allocate(context.Background(), Input{
		ItemID:                 itm.ID,
		Quantity:               qty(1),
		DestinationLocationIDs: []id.ID{l1, id.New(), id.New()},
	})
	require.NoError(t, err)
	assert.Equal(t, len(result.Rows), len(result.Transfers))
}

func TestAllocate_DeduplicatesDestinations(t *testing.T) {
	itm := item.New(item.KindProduct, "BEER", "Lager", "pcs")
	stock := &fakeStockRepo{}

	svc := NewService(newFakeItemRepo(itm), stock, &fakeTransferRepo{}, &fakeTxManager{}, nil)

	dest := id.New()
	result, err := svc.Allocate(context.Background(), Input{
		ItemID:                 itm.ID,
		Quantity:               qty(4),
		DestinationLocationIDs: []id.ID{dest, dest, dest},
	})
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, qty(4), result.Rows[0].Quantity)
}

func TestAllocate_ValidationFailuresDoNotMutate(t *testing.T) {
	itm := item.New(item.KindProduct, "BEER", "Lager", "pcs")
	stock := &fakeStockRepo{}
	transfers := &fakeTransferRepo{}
	txm := &fakeTxManager{}

	svc := NewService(newFakeItemRepo(itm), stock, transfers, txm, nil)

	cases := []Input{
		{ItemID: itm.ID, Quantity: qty(0), DestinationLocationIDs: []id.ID{id.New()}},
		{ItemID: itm.ID, Quantity: qty(-2), DestinationLocationIDs: []id.ID{id.New()}},
		{ItemID: itm.ID, Quantity: qty(1)},
		{Quantity: qty(1), DestinationLocationIDs: []id.ID{id.New()}},
	}

	for _, input := range cases {
		_, err := svc.Allocate(context.Background(), input)
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	}

	assert.Equal(t, 0, txm.calls)
	assert.Empty(t, stock.upserted)
	assert.Empty(t, transfers.appended)
}

func TestAllocate_UnknownItem(t *testing.T) {
	svc := NewService(newFakeItemRepo(), &fakeStockRepo{}, &fakeTransferRepo{}, &fakeTxManager{}, nil)

	_, err := svc.Allocate(context.Background(), Input{
		ItemID:                 id.New(),
		Quantity:               qty(1),
		DestinationLocationIDs: []id.ID{id.New()},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
