package textdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// MemoryStore keeps products in process. Used for practice runs without a
// database and in tests.
type MemoryStore struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	products []*Product
	nextID   int
}

func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{clock: clock, nextID: 1}
}

func (s *MemoryStore) Latest(_ context.Context, awips string) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.products) - 1; i >= 0; i-- {
		if s.products[i].AWIPS == awips {
			p := *s.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Insert(_ context.Context, product *Product) (*Product, error) {
	if product.Data == "" {
		return nil, ErrEmptyProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.clock.Now()
	product.ID = s.nextID
	product.CreatedAt = &created
	s.nextID++

	stored := *product
	s.products = append(s.products, &stored)
	return product, nil
}

func (s *MemoryStore) Issued(_ context.Context, from, to time.Time) ([]*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Product
	for _, p := range s.products {
		if !p.Issued.Before(from) && p.Issued.Before(to) {
			c := *p
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Issued.Before(out[j].Issued)
	})
	return out, nil
}

func (s *MemoryStore) Purge(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.products[:0]
	var removed int64
	for _, p := range s.products {
		if p.CreatedAt != nil && p.CreatedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.products = kept
	return removed, nil
}
