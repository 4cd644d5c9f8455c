package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testProduct(id int, title string, price float64) domain.Product {
	return domain.Product{ID: id, Title: title, Price: price, Category: "test"}
}

func TestCart_AddItemAccumulatesSameID(t *testing.T) {
	cart := NewCartUseCase(nil, "", testLogger())

	p := testProduct(1, "Apple iPhone", 899.99)
	cart.AddItem(p, 1)
	cart.AddItem(p, 2)
	cart.AddItem(p, 3)

	lines := cart.Lines()
	require.Len(t, lines, 1, "repeated adds of the same product must keep a single line")
	assert.Equal(t, 6, lines[0].Quantity)
	assert.Equal(t, 6, cart.TotalItems())
}

func TestCart_AddItemDefaultsQuantityToOne(t *testing.T) {
	cart := NewCartUseCase(nil, "", testLogger())

	cart.AddItem(testProduct(1, "Mouse", 19.99), 0)
	cart.AddItem(testProduct(2, "Keyboard", 49.99), -5)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestCart_InsertionOrderPreserved(t *testing.T) {
	cart := NewCartUseCase(nil, "", testLogger())

	cart.AddItem(testProduct(3, "C", 1), 1)
	cart.AddItem(testProduct(1, "A", 1), 1)
	cart.AddItem(testProduct(2, "B", 1), 1)
	cart.AddItem(testProduct(3, "C", 1), 1)

	lines := cart.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{lines[0].ID, lines[1].ID, lines[2].ID})
}

func TestCart_UpdateQuantityClampsToOne(t *testing.T) {
	cart := NewCartUseCase(nil, "", testLogger())
	cart.AddItem(testProduct(1, "Apple iPhone", 899.99), 5)

	for _, q := range []int{0, -1, -100} {
		cart.UpdateQuantity(1, q)
		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity, "quantity %d must clamp to 1", q)
	}

	cart.UpdateQuantity(1, 7)
	assert.Equal(t, 7, cart.Lines()[0].Quantity)
}

func TestCart_UpdateQuantityUnknownIDIsNoOp(t *testing.T) {
	cart := NewCartUseCase(nil, "", testLogger())
	cart.AddItem(testProduct(1, "A", 10), 2)

	cart.UpdateQuantity(99, 5)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCart_RemoveItemIdempotent(t *testing.T) {
	cart := NewCartUseCase(nil, "", testLogger())
	cart.AddItem(testProduct(1, "A", 10), 2)

	cart.RemoveItem(1)
	assert.Empty(t, cart.Lines())

	// second remove and remove of an unknown id are silent no-ops
	cart.RemoveItem(1)
	cart.RemoveItem(42)
	assert.Empty(t, cart.Lines())
	assert.Equal(t, 0, cart.TotalItems())
}

func TestCart_TotalPriceIndependentOfOrder(t *testing.T) {
	products := []struct {
		p   domain.Product
		qty int
	}{
		{testProduct(1, "A", 10.50), 2},
		{testProduct(2, "B", 3.33), 3},
		{testProduct(3, "C", 99.99), 1},
	}
	want := 10.50*2 + 3.33*3 + 99.99*1

	forward := NewCartUseCase(nil, "", testLogger())
	for _, it := range products {
		forward.AddItem(it.p, it.qty)
	}

	backward := NewCartUseCase(nil, "", testLogger())
	for i := len(products) - 1; i >= 0; i-- {
		backward.AddItem(products[i].p, products[i].qty)
	}

	assert.InDelta(t, want, forward.TotalPrice(), 1e-9)
	assert.InDelta(t, want, backward.TotalPrice(), 1e-9)
}

func TestCart_Clear(t *testing.T) {
	cart := NewCartUseCase(nil, "", testLogger())
	cart.AddItem(testProduct(1, "A", 10), 2)
	cart.AddItem(testProduct(2, "B", 5), 1)

	cart.Clear()

	assert.Empty(t, cart.Lines())
	assert.Equal(t, 0, cart.TotalItems())
	assert.Zero(t, cart.TotalPrice())
}

type fakeSnapshotStore struct {
	snapshots map[string]domain.CartSnapshot
	loadErr   error
	saveErr   error
	saves     int
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snapshots: make(map[string]domain.CartSnapshot)}
}

func (s *fakeSnapshotStore) Load(_ context.Context, storeName string) (domain.CartSnapshot, bool, error) {
	if s.loadErr != nil {
		return domain.CartSnapshot{}, false, s.loadErr
	}
	snapshot, ok := s.snapshots[storeName]
	return snapshot, ok, nil
}

func (s *fakeSnapshotStore) Save(_ context.Context, storeName string, snapshot domain.CartSnapshot) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snapshots[storeName] = snapshot
	return nil
}

func TestCart_RestoresFromSnapshot(t *testing.T) {
	store := newFakeSnapshotStore()
	store.snapshots["cart-storage"] = domain.CartSnapshot{
		Lines: []domain.CartLine{
			{Product: testProduct(1, "A", 10), Quantity: 2},
			{Product: testProduct(2, "B", 5), Quantity: 1},
		},
	}

	cart := NewCartUseCase(store, "cart-storage", testLogger())

	require.Len(t, cart.Lines(), 2)
	assert.Equal(t, 3, cart.TotalItems())
}

func TestCart_RestoreSanitizesInvalidSnapshot(t *testing.T) {
	store := newFakeSnapshotStore()
	store.snapshots["cart-storage"] = domain.CartSnapshot{
		Lines: []domain.CartLine{
			{Product: testProduct(1, "A", 10), Quantity: 0},
			{Product: testProduct(1, "A", 10), Quantity: 3},
			{Product: testProduct(2, "B", 5), Quantity: -2},
		},
	}

	cart := NewCartUseCase(store, "cart-storage", testLogger())

	lines := cart.Lines()
	require.Len(t, lines, 2, "duplicate ids in a snapshot must collapse into one line")
	assert.Equal(t, 1, lines[0].ID)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity, "non-positive quantities must be floored at 1")
}

func TestCart_FailedRestoreStartsEmpty(t *testing.T) {
	store := newFakeSnapshotStore()
	store.loadErr = errors.New("connection refused")

	cart := NewCartUseCase(store, "cart-storage", testLogger())

	assert.Empty(t, cart.Lines())
}

func TestCart_MutationsPersistBestEffort(t *testing.T) {
	store := newFakeSnapshotStore()
	cart := NewCartUseCase(store, "cart-storage", testLogger())

	cart.AddItem(testProduct(1, "A", 10), 2)
	cart.UpdateQuantity(1, 5)
	cart.RemoveItem(1)

	assert.Equal(t, 3, store.saves)
	assert.Empty(t, store.snapshots["cart-storage"].Lines)

	// a failing store never surfaces to the caller
	store.saveErr = errors.New("disk full")
	cart.AddItem(testProduct(2, "B", 5), 1)
	assert.Equal(t, 1, cart.TotalItems())
}
