package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const (
	opAdd    = "add"
	opRemove = "remove"
	opUpdate = "update_amount"
)

// Store holds the in-memory cart and keeps the persisted snapshot in step
// with it: every successful mutation is saved before the in-memory cart is
// swapped, and a failed mutation leaves both untouched. Mutations are
// serialized internally; reads return copies.
type Store struct {
	snap    Snapshot
	lookup  Lookup
	notify  Notifier
	log     *zap.Logger
	metrics *Metrics

	mu    sync.RWMutex
	items []Product
}

type StoreDeps struct {
	Snapshot Snapshot
	Lookup   Lookup
	Notifier Notifier
	Log      *zap.Logger
	Metrics  *Metrics
}

// NewStore loads the persisted snapshot and starts from it, or from an empty
// cart when nothing was saved yet. A snapshot that exists but cannot be
// decoded is fatal: the error is returned and the store is not created.
func NewStore(ctx context.Context, deps StoreDeps) (*Store, error) {
	items, found, err := deps.Snapshot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}
	if !found {
		items = []Product{}
	}

	return &Store{
		snap:    deps.Snapshot,
		lookup:  deps.Lookup,
		notify:  deps.Notifier,
		log:     deps.Log,
		metrics: deps.Metrics,
		items:   items,
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.snap.Ping(ctx)
}

// Items returns a copy of the current cart in insertion order.
func (s *Store) Items() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.items)
}

// AddProduct puts one unit of a product into the cart. A product not yet in
// the cart enters with amount 1 regardless of the fetched stock level; an
// existing entry is incremented only while below the stock limit.
func (s *Store) AddProduct(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.lookup.FetchProduct(ctx, productID)
	if err != nil {
		return s.failed(opAdd, MsgAddFailed, productID, err)
	}

	stock, err := s.lookup.FetchStock(ctx, productID)
	if err != nil {
		return s.failed(opAdd, MsgAddFailed, productID, err)
	}

	next, err := reconcileAdd(s.items, product, stock)
	if err != nil {
		return s.rejected(opAdd, MsgStockExceeded, productID, err)
	}

	return s.commit(ctx, opAdd, MsgAddFailed, next)
}

// RemoveProduct drops the product's entry from the cart. Removing a product
// that is not in the cart is an error, not a no-op.
func (s *Store) RemoveProduct(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := reconcileRemove(s.items, productID)
	if err != nil {
		return s.rejected(opRemove, MsgRemoveFailed, productID, err)
	}

	return s.commit(ctx, opRemove, MsgRemoveFailed, next)
}

// UpdateProductAmount applies a quantity delta to an existing entry: the
// entry ends at current+amount, not at amount. Callers holding a target
// quantity must convert it to a delta first. A nonpositive amount is ignored
// entirely: no change, no notification, no error.
func (s *Store) UpdateProductAmount(ctx context.Context, productID, amount int) error {
	if amount <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.lookup.FetchStock(ctx, productID)
	if err != nil {
		return s.failed(opUpdate, MsgUpdateFailed, productID, err)
	}

	next, changed, err := reconcileUpdate(s.items, productID, amount, stock)
	switch {
	case errors.Is(err, ErrStockExceeded):
		return s.rejected(opUpdate, MsgStockExceeded, productID, err)
	case err != nil:
		return s.rejected(opUpdate, MsgUpdateFailed, productID, err)
	case !changed:
		return nil
	}

	return s.commit(ctx, opUpdate, MsgUpdateFailed, next)
}

// commit persists the next cart and only then swaps it in. A failed save
// counts as an operation failure and the in-memory cart stays as it was.
func (s *Store) commit(ctx context.Context, op, failMsg string, next []Product) error {
	if err := s.snap.Save(ctx, next); err != nil {
		return s.failed(op, failMsg, 0, fmt.Errorf("save snapshot: %w", err))
	}

	s.items = next
	s.metrics.observe(op, resultOK)
	if s.log != nil {
		s.log.Info("cart updated", zap.String("op", op), zap.Int("entries", len(s.items)))
	}
	return nil
}

func (s *Store) rejected(op, msg string, productID int, err error) error {
	s.notifyUser(msg)
	s.metrics.observe(op, resultRejected)
	if s.log != nil {
		s.log.Info("cart mutation rejected",
			zap.String("op", op),
			zap.Int("product_id", productID),
			zap.Error(err),
		)
	}
	return err
}

func (s *Store) failed(op, msg string, productID int, err error) error {
	s.notifyUser(msg)
	s.metrics.observe(op, resultError)
	if s.log != nil {
		s.log.Warn("cart mutation failed",
			zap.String("op", op),
			zap.Int("product_id", productID),
			zap.Error(err),
		)
	}
	return err
}

func (s *Store) notifyUser(msg string) {
	if s.notify != nil {
		s.notify.ReportError(msg)
	}
}
