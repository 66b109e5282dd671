package cartstore

import (
	"context"
	"sync"
	"time"

	"github.com/medsupply/backend/internal/domain/cart"
	"github.com/medsupply/backend/internal/domain/shared"
)

// MemoryStore implements cart.Store with an in-process map. Suitable for
// single-instance deployments and testing; state is lost on restart and
// not shared across instances.
type MemoryStore struct {
	mu      sync.RWMutex
	carts   map[string]entry
	ttl     time.Duration
	nowFunc func() time.Time
}

type entry struct {
	cart      cart.Cart
	expiresAt time.Time
}

var _ cart.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory cart store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		carts:   make(map[string]entry),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

// Load returns the cart for a session. Expired entries are treated as absent
// and removed lazily.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.RLock()
	e, ok := s.carts[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, shared.ErrNotFound
	}
	if s.nowFunc().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.carts, sessionID)
		s.mu.Unlock()
		return nil, shared.ErrNotFound
	}

	// Copy so callers cannot mutate stored state through the returned pointer
	c := e.cart
	c.Items = append([]cart.CartItem(nil), e.cart.Items...)
	return &c, nil
}

// Save stores a copy of the cart and resets the session TTL
func (s *MemoryStore) Save(_ context.Context, c *cart.Cart) error {
	stored := *c
	stored.Items = append([]cart.CartItem(nil), c.Items...)

	s.mu.Lock()
	s.carts[c.SessionID] = entry{
		cart:      stored,
		expiresAt: s.nowFunc().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

// Delete removes the cart for a session
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}
