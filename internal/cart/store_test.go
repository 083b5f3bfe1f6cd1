package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	products map[int]Product
	stock    map[int]Stock

	productErr error
	stockErr   error

	productCalls int
	stockCalls   int
}

func (f *fakeLookup) FetchProduct(ctx context.Context, id int) (Product, error) {
	f.productCalls++
	if f.productErr != nil {
		return Product{}, f.productErr
	}
	p, ok := f.products[id]
	if !ok {
		return Product{}, ErrLookupNotFound
	}
	return p, nil
}

func (f *fakeLookup) FetchStock(ctx context.Context, id int) (Stock, error) {
	f.stockCalls++
	if f.stockErr != nil {
		return Stock{}, f.stockErr
	}
	st, ok := f.stock[id]
	if !ok {
		return Stock{}, ErrLookupNotFound
	}
	return st, nil
}

type recorderNotifier struct {
	msgs []string
}

func (n *recorderNotifier) ReportError(msg string) {
	n.msgs = append(n.msgs, msg)
}

type failingSnapshot struct {
	*MemSnapshot
	saveErr error
}

func (s *failingSnapshot) Save(ctx context.Context, cart []Product) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.MemSnapshot.Save(ctx, cart)
}

func newTestLookup() *fakeLookup {
	return &fakeLookup{
		products: map[int]Product{
			1: {ID: 1, Title: "Sneakers", Price: 179.9},
			2: {ID: 2, Title: "Loafers", Price: 219.9},
		},
		stock: map[int]Stock{
			1: {ID: 1, Amount: 5},
			2: {ID: 2, Amount: 2},
		},
	}
}

func newTestStore(t *testing.T, snap Snapshot, lookup Lookup, notify Notifier) *Store {
	t.Helper()

	s, err := NewStore(context.Background(), StoreDeps{
		Snapshot: snap,
		Lookup:   lookup,
		Notifier: notify,
	})
	require.NoError(t, err)
	return s
}

func snapshotCart(t *testing.T, snap Snapshot) []Product {
	t.Helper()

	cart, found, err := snap.Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	return cart
}

func TestNewStore_StartsEmptyWithoutSnapshot(t *testing.T) {
	s := newTestStore(t, NewMemSnapshot(), newTestLookup(), nil)
	require.Empty(t, s.Items())
}

func TestNewStore_LoadsSnapshot(t *testing.T) {
	ctx := context.Background()
	snap := NewMemSnapshot()
	saved := []Product{{ID: 2, Title: "Loafers", Amount: 3}}
	require.NoError(t, snap.Save(ctx, saved))

	s := newTestStore(t, snap, newTestLookup(), nil)
	require.Equal(t, saved, s.Items())
}

func TestNewStore_MalformedSnapshotIsFatal(t *testing.T) {
	snap := NewMemSnapshot()
	snap.raw = []byte("{not json")

	_, err := NewStore(context.Background(), StoreDeps{
		Snapshot: snap,
		Lookup:   newTestLookup(),
	})
	require.Error(t, err)
}

func TestAddProduct_New(t *testing.T) {
	snap := NewMemSnapshot()
	notify := &recorderNotifier{}
	s := newTestStore(t, snap, newTestLookup(), notify)

	require.NoError(t, s.AddProduct(context.Background(), 1))

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].ID)
	require.Equal(t, 1, items[0].Amount)
	require.Equal(t, "Sneakers", items[0].Title)
	require.Equal(t, items, snapshotCart(t, snap))
	require.Empty(t, notify.msgs)
}

func TestAddProduct_ExistingWithinStock(t *testing.T) {
	snap := NewMemSnapshot()
	s := newTestStore(t, snap, newTestLookup(), nil)

	ctx := context.Background()
	require.NoError(t, s.AddProduct(ctx, 1))
	require.NoError(t, s.AddProduct(ctx, 1))
	require.NoError(t, s.AddProduct(ctx, 1))

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Amount)
	require.Equal(t, items, snapshotCart(t, snap))
}

func TestAddProduct_AtStockLimit(t *testing.T) {
	ctx := context.Background()
	snap := NewMemSnapshot()
	notify := &recorderNotifier{}
	s := newTestStore(t, snap, newTestLookup(), notify)

	// Stock for product 2 is 2: third add must be rejected in full.
	require.NoError(t, s.AddProduct(ctx, 2))
	require.NoError(t, s.AddProduct(ctx, 2))
	err := s.AddProduct(ctx, 2)

	require.ErrorIs(t, err, ErrStockExceeded)
	require.Equal(t, []string{MsgStockExceeded}, notify.msgs)
	require.Equal(t, 2, s.Items()[0].Amount)
	require.Equal(t, s.Items(), snapshotCart(t, snap))
}

func TestAddProduct_UnknownProduct(t *testing.T) {
	notify := &recorderNotifier{}
	s := newTestStore(t, NewMemSnapshot(), newTestLookup(), notify)

	err := s.AddProduct(context.Background(), 99)
	require.ErrorIs(t, err, ErrLookupNotFound)
	require.Equal(t, []string{MsgAddFailed}, notify.msgs)
	require.Empty(t, s.Items())
}

func TestAddProduct_StockFetchFailure(t *testing.T) {
	lookup := newTestLookup()
	lookup.stockErr = ErrLookupUnavailable
	notify := &recorderNotifier{}
	snap := NewMemSnapshot()
	s := newTestStore(t, snap, lookup, notify)

	err := s.AddProduct(context.Background(), 1)
	require.ErrorIs(t, err, ErrLookupUnavailable)
	require.Equal(t, []string{MsgAddFailed}, notify.msgs)
	require.Empty(t, s.Items())

	// Nothing was ever written.
	_, found, loadErr := snap.Load(context.Background())
	require.NoError(t, loadErr)
	require.False(t, found)
}

func TestRemoveProduct(t *testing.T) {
	ctx := context.Background()
	snap := NewMemSnapshot()
	s := newTestStore(t, snap, newTestLookup(), nil)

	require.NoError(t, s.AddProduct(ctx, 1))
	require.NoError(t, s.AddProduct(ctx, 2))
	require.NoError(t, s.RemoveProduct(ctx, 1))

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].ID)
	require.Equal(t, items, snapshotCart(t, snap))
}

func TestRemoveProduct_Missing(t *testing.T) {
	ctx := context.Background()
	snap := NewMemSnapshot()
	notify := &recorderNotifier{}
	s := newTestStore(t, snap, newTestLookup(), notify)
	require.NoError(t, s.AddProduct(ctx, 1))

	err := s.RemoveProduct(ctx, 99)
	require.ErrorIs(t, err, ErrNotInCart)
	require.Equal(t, []string{MsgRemoveFailed}, notify.msgs)
	require.Len(t, s.Items(), 1)
	require.Equal(t, s.Items(), snapshotCart(t, snap))
}

func TestUpdateProductAmount_Additive(t *testing.T) {
	ctx := context.Background()
	snap := NewMemSnapshot()
	s := newTestStore(t, snap, newTestLookup(), nil)
	require.NoError(t, s.AddProduct(ctx, 1))

	require.NoError(t, s.UpdateProductAmount(ctx, 1, 3))

	require.Equal(t, 4, s.Items()[0].Amount)
	require.Equal(t, s.Items(), snapshotCart(t, snap))
}

func TestUpdateProductAmount_IncrementAtLimit(t *testing.T) {
	ctx := context.Background()
	notify := &recorderNotifier{}
	lookup := newTestLookup()
	s := newTestStore(t, NewMemSnapshot(), lookup, notify)

	require.NoError(t, s.AddProduct(ctx, 2))
	require.NoError(t, s.AddProduct(ctx, 2))

	err := s.UpdateProductAmount(ctx, 2, 1)
	require.ErrorIs(t, err, ErrStockExceeded)
	require.Equal(t, []string{MsgStockExceeded}, notify.msgs)
	require.Equal(t, 2, s.Items()[0].Amount)
}

func TestUpdateProductAmount_NonpositiveIsSilent(t *testing.T) {
	ctx := context.Background()
	notify := &recorderNotifier{}
	lookup := newTestLookup()
	s := newTestStore(t, NewMemSnapshot(), lookup, notify)
	require.NoError(t, s.AddProduct(ctx, 1))

	calls := lookup.stockCalls
	require.NoError(t, s.UpdateProductAmount(ctx, 1, 0))
	require.NoError(t, s.UpdateProductAmount(ctx, 1, -3))

	// No notification, no change, and no fetch at all.
	require.Empty(t, notify.msgs)
	require.Equal(t, 1, s.Items()[0].Amount)
	require.Equal(t, calls, lookup.stockCalls)
}

func TestUpdateProductAmount_MissingEntry(t *testing.T) {
	notify := &recorderNotifier{}
	s := newTestStore(t, NewMemSnapshot(), newTestLookup(), notify)

	err := s.UpdateProductAmount(context.Background(), 1, 2)
	require.ErrorIs(t, err, ErrNotInCart)
	require.Equal(t, []string{MsgUpdateFailed}, notify.msgs)
}

func TestUpdateProductAmount_LookupFailure(t *testing.T) {
	ctx := context.Background()
	lookup := newTestLookup()
	notify := &recorderNotifier{}
	s := newTestStore(t, NewMemSnapshot(), lookup, notify)
	require.NoError(t, s.AddProduct(ctx, 1))

	lookup.stockErr = ErrLookupUnavailable
	err := s.UpdateProductAmount(ctx, 1, 1)
	require.ErrorIs(t, err, ErrLookupUnavailable)
	require.Equal(t, []string{MsgUpdateFailed}, notify.msgs)
	require.Equal(t, 1, s.Items()[0].Amount)
}

func TestMutation_SaveFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	snap := &failingSnapshot{MemSnapshot: NewMemSnapshot()}
	notify := &recorderNotifier{}
	s := newTestStore(t, snap, newTestLookup(), notify)

	require.NoError(t, s.AddProduct(ctx, 1))

	snap.saveErr = boom
	err := s.AddProduct(ctx, 1)
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{MsgAddFailed}, notify.msgs)

	// In-memory cart and snapshot still agree on the last committed state.
	require.Equal(t, 1, s.Items()[0].Amount)
	require.Equal(t, s.Items(), snapshotCart(t, snap.MemSnapshot))
}

func TestItems_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemSnapshot(), newTestLookup(), nil)
	require.NoError(t, s.AddProduct(ctx, 1))

	items := s.Items()
	items[0].Amount = 42

	require.Equal(t, 1, s.Items()[0].Amount)
}
