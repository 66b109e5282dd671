package cart

import "context"

// Store persists carts between requests, keyed by session ID. Implementations
// are key-value with JSON serialization. Callers treat Save and Delete as
// best-effort: a failing store degrades the session to memory-only operation
// and must never fail a cart mutation.
type Store interface {
	// Load returns the cart for a session, or shared.ErrNotFound if none
	// has been persisted
	Load(ctx context.Context, sessionID string) (*Cart, error)

	// Save persists the full cart state
	Save(ctx context.Context, cart *Cart) error

	// Delete removes the persisted cart for a session
	Delete(ctx context.Context, sessionID string) error
}
