package cart

import (
	"context"
	"encoding/json"
	"sync"
)

// MemSnapshot keeps the serialized cart in memory. Used in tests and as the
// default when the daemon runs without durable storage configured.
type MemSnapshot struct {
	mu  sync.RWMutex
	raw []byte
}

func NewMemSnapshot() *MemSnapshot { return &MemSnapshot{} }

func (s *MemSnapshot) Ping(ctx context.Context) error { return nil }

func (s *MemSnapshot) Load(ctx context.Context) ([]Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.raw == nil {
		return nil, false, nil
	}

	var cart []Product
	if err := json.Unmarshal(s.raw, &cart); err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

func (s *MemSnapshot) Save(ctx context.Context, cart []Product) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
	return nil
}
