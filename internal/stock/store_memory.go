package stock

import (
	"context"
	"sort"
	"sync"
)

type MemStore struct {
	mu       sync.RWMutex
	products map[int]Product
	stock    map[int]int
}

// NewMemStore returns a store seeded with a small demo catalog.
func NewMemStore() *MemStore {
	s := &MemStore{
		products: map[int]Product{},
		stock:    map[int]int{},
	}
	s.seed(Product{ID: 1, Title: "Lightweight Trail Sneakers", Price: 179.9, Image: "https://cdn.rocketcart.local/img/sneakers-1.jpg"}, 10)
	s.seed(Product{ID: 2, Title: "Canvas High-Top Sneakers", Price: 139.9, Image: "https://cdn.rocketcart.local/img/sneakers-2.jpg"}, 5)
	s.seed(Product{ID: 3, Title: "Suede Slip-On Loafers", Price: 219.9, Image: "https://cdn.rocketcart.local/img/loafers-1.jpg"}, 2)
	s.seed(Product{ID: 4, Title: "Retro Running Shoes", Price: 159.9, Image: "https://cdn.rocketcart.local/img/running-1.jpg"}, 0)
	return s
}

func (s *MemStore) seed(p Product, available int) {
	p.Amount = available
	s.products[p.ID] = p
	s.stock[p.ID] = available
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetProduct(ctx context.Context, id int) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok, nil
}

func (s *MemStore) GetStock(ctx context.Context, id int) (Stock, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.stock[id]
	if !ok {
		return Stock{}, false, nil
	}
	return Stock{ID: id, Amount: n}, true, nil
}

// SetStock adjusts the available quantity, for tests and demos.
func (s *MemStore) SetStock(id, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stock[id] = amount
	if p, ok := s.products[id]; ok {
		p.Amount = amount
		s.products[id] = p
	}
}
