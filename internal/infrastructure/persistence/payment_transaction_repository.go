package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medsupply/backend/internal/domain/billing"
)

// GormPaymentTransactionRepository implements
// billing.PaymentTransactionRepository using GORM. Transactions are
// append-only.
type GormPaymentTransactionRepository struct {
	db *gorm.DB
}

var _ billing.PaymentTransactionRepository = (*GormPaymentTransactionRepository)(nil)

// NewGormPaymentTransactionRepository creates a new GormPaymentTransactionRepository
func NewGormPaymentTransactionRepository(db *gorm.DB) *GormPaymentTransactionRepository {
	return &GormPaymentTransactionRepository{db: db}
}

// Create appends a payment transaction
func (r *GormPaymentTransactionRepository) Create(ctx context.Context, transaction *billing.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindByOrder returns all transactions for an order, oldest first
func (r *GormPaymentTransactionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]billing.PaymentTransaction, error) {
	var transactions []billing.PaymentTransaction
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("processed_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}
