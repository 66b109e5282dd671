package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StockMovementRepository defines persistence operations for the ledger.
// The ledger is append-only: there are no update or delete operations.
type StockMovementRepository interface {
	// Create appends a movement record
	Create(ctx context.Context, movement *StockMovement) error

	// FindByProduct returns the most recent movements for a product,
	// newest first, capped at limit
	FindByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]StockMovement, error)

	// FindByDateRange returns all movements in [start, end], oldest first
	FindByDateRange(ctx context.Context, start, end time.Time) ([]StockMovement, error)

	// FindByReference returns movements tied to a source document
	FindByReference(ctx context.Context, referenceID string) ([]StockMovement, error)
}
