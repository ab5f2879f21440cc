package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/core/types"
	"barstock/internal/domain/catalogs/item"
	"barstock/internal/domain/events"
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

	applied       []id.ID
	appliedQty    types.Quantity
	appliedCost   types.Money
	lockRequested bool
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
	r.lockRequested = true
	return r.GetByID(ctx, itemID)
}

func (r *fakeItemRepo) List(ctx context.Context, filter item.ListFilter) ([]*item.Item, error) {
	var out []*item.Item
	for _, itm := range r.items {
		out = append(out, itm)
	}
	return out, nil
}

func (r *fakeItemRepo) ApplyPurchase(ctx context.Context, itemID id.ID, qtyDelta types.Quantity, newAvgCost types.Money) error {
	itm, ok := r.items[itemID]
	if !ok {
		return apperror.NewNotFound("Item", itemID)
	}
	itm.Stock += qtyDelta
	itm.AverageCost = newAvgCost
	r.applied = append(r.applied, itemID)
	r.appliedQty = qtyDelta
	r.appliedCost = newAvgCost
	return nil
}

type fakePurchaseRepo struct {
	created []*Purchase
}

func (r *fakePurchaseRepo) Create(ctx context.Context, purchase *Purchase) error {
	r.created = append(r.created, purchase)
	return nil
}

func (r *fakePurchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	for _, p := range r.created {
		if p.ID == purchaseID {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("Purchase", purchaseID)
}

func (r *fakePurchaseRepo) ListByItem(ctx context.Context, itemID id.ID, filter ListFilter) ([]*Purchase, error) {
	var out []*Purchase
	for _, p := range r.created {
		if p.ItemID == itemID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

// --- Helpers ---

func productInput(productID id.ID, qty float64, price string) RecordInput {
	pid := productID
	return RecordInput{
		ProductID:    &pid,
		Quantity:     types.NewQuantityFromFloat64(qty),
		UnitPrice:    types.MustMoney(price),
		Supplier:     "Acme Beverages",
		PurchaseDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

// --- Tests ---

func TestRecordPurchase_EmptyStockTakesUnitPrice(t *testing.T) {
	itm := item.New(item.KindProduct, "BEER", "Lager", "pcs")
	itemRepo := newFakeItemRepo(itm)
	purchaseRepo := &fakePurchaseRepo{}
	publisher := &fakePublisher{}
	txm := &fakeTxManager{}

	svc := NewService(purchaseRepo, itemRepo, txm, publisher)

	purchase, err := svc.RecordPurchase(context.Background(), productInput(itm.ID, 10, "5.00"))
	require.NoError(t, err)

	assert.True(t, purchase.ResultingAverageCost.Equal(types.MustMoney("5.00")))
	assert.Equal(t, types.NewQuantityFromFloat64(10), itm.Stock)
	assert.True(t, itm.AverageCost.Equal(types.MustMoney("5.00")))
	assert.True(t, itemRepo.lockRequested, "item row must be locked")
	assert.Equal(t, 1, txm.calls)
	require.Len(t, purchaseRepo.created, 1)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.TypePurchaseRecorded, publisher.events[0].EventType)
}

func TestRecordPurchase_BlendsAverageCost(t *testing.T) {
	itm := item.New(item.KindProduct, "BEER", "Lager", "pcs")
	itm.Stock = types.NewQuantityFromFloat64(10)
	itm.AverageCost = types.MustMoney("5.00")

	itemRepo := newFakeItemRepo(itm)
	svc := NewService(&fakePurchaseRepo{}, itemRepo, &fakeTxManager{}, nil)

	purchase, err := svc.RecordPurchase(context.Background(), productInput(itm.ID, 10, "7.00"))
	require.NoError(t, err)

	// (10*5 + 10*7) / 20 = 6.00
	assert.True(t, purchase.ResultingAverageCost.Equal(types.MustMoney("6.00")),
		"got %s", purchase.ResultingAverageCost)
	assert.Equal(t, types.NewQuantityFromFloat64(20), itm.Stock)
}

func TestRecordPurchase_NegativeQuantityRejected(t *testing.T) {
	itm := item.New(item.KindProduct, "BEER", "Lager", "pcs")
	itemRepo := newFakeItemRepo(itm)
	purchaseRepo := &fakePurchaseRepo{}
	txm := &fakeTxManager{}

	svc := NewService(purchaseRepo, itemRepo, txm, nil)

	_, err := svc.RecordPurchase(context.Background(), productInput(itm.ID, -1, "5.00"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	// No state mutation on validation failure.
	assert.Equal(t, 0, txm.calls)
	assert.Empty(t, purchaseRepo.created)
	assert.Empty(t, itemRepo.applied)
}

func TestRecordPurchase_ExactlyOneReferenceRequired(t *testing.T) {
	itm := item.New(item.KindIngredient, "LIME", "Lime", "kg")
	svc := NewService(&fakePurchaseRepo{}, newFakeItemRepo(itm), &fakeTxManager{}, nil)

	// Neither set.
	input := productInput(itm.ID, 1, "2.00")
	input.ProductID = nil
	_, err := svc.RecordPurchase(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	// Both set.
	input = productInput(itm.ID, 1, "2.00")
	other := itm.ID
	input.IngredientID = &other
	_, err = svc.RecordPurchase(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRecordPurchase_KindMismatchRejected(t *testing.T) {
	itm := item.New(item.KindIngredient, "LIME", "Lime", "kg")
	svc := NewService(&fakePurchaseRepo{}, newFakeItemRepo(itm), &fakeTxManager{}, nil)

	// Item is an ingredient, referenced as a product.
	_, err := svc.RecordPurchase(context.Background(), productInput(itm.ID, 1, "2.00"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRecordPurchase_UnknownItem(t *testing.T) {
	svc := NewService(&fakePurchaseRepo{}, newFakeItemRepo(), &fakeTxManager{}, nil)

	_, err := svc.RecordPurchase(context.Background(), productInput(id.New(), 1, "2.00"))
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecordPurchase_ZeroCostStockReset(t *testing.T) {
	itm := item.New(item.KindProduct, "WINE", "Red", "bottle")
	itm.Stock = types.NewQuantityFromFloat64(100)
	// AverageCost stays zero: uncosted legacy stock.

	svc := NewService(&fakePurchaseRepo{}, newFakeItemRepo(itm), &fakeTxManager{}, nil)

	purchase, err := svc.RecordPurchase(context.Background(), productInput(itm.ID, 5, "3.50"))
	require.NoError(t, err)

	// The purchase price resets the average instead of being diluted.
	assert.True(t, purchase.ResultingAverageCost.Equal(types.MustMoney("3.50")))
}
