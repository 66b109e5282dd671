package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/medsupply/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	// Create persists a new order with its lines
	Create(ctx context.Context, order *Order) error

	// FindByID finds an order by ID, including its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its order number
	FindByNumber(ctx context.Context, number string) (*Order, error)

	// FindAll finds orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// UpdatePaymentStatus stores the derived payment status
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error

	// UpdateStatus stores the fulfillment status
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
}

// PaymentTransactionRepository defines persistence for payment events.
// Transactions are append-only.
type PaymentTransactionRepository interface {
	// Create appends a payment transaction
	Create(ctx context.Context, transaction *PaymentTransaction) error

	// FindByOrder returns all transactions for an order, oldest first
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]PaymentTransaction, error)
}
