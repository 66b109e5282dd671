package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medsupply/backend/internal/domain/shared"
)

// PaymentType distinguishes charges from refunds
type PaymentType string

const (
	PaymentTypePayment PaymentType = "payment"
	PaymentTypeRefund  PaymentType = "refund"
)

// IsValid returns true for known payment types
func (t PaymentType) IsValid() bool {
	return t == PaymentTypePayment || t == PaymentTypeRefund
}

// PaymentTransaction is an immutable record of a gateway payment event.
// Status strings come from the gateway and are matched case-insensitively.
type PaymentTransaction struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        PaymentType     `gorm:"type:varchar(20);not null"`
	Status      string          `gorm:"type:varchar(30);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Always a positive magnitude
	Reference   string          `gorm:"type:varchar(64)"`            // Gateway transaction reference
	ProcessedAt time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for GORM
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

// settledStatuses are the gateway states that count toward the paid amount
var settledStatuses = map[string]struct{}{
	"approved":  {},
	"completed": {},
	"success":   {},
}

// NewPaymentTransaction creates a payment event for an order
func NewPaymentTransaction(orderID uuid.UUID, paymentType PaymentType, status string, amount decimal.Decimal) (*PaymentTransaction, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Invalid payment type")
	}
	if status == "" {
		return nil, shared.NewDomainError("INVALID_STATUS", "Payment status cannot be empty")
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	return &PaymentTransaction{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		Type:        paymentType,
		Status:      status,
		Amount:      amount,
		ProcessedAt: time.Now(),
	}, nil
}

// WithReference sets the gateway reference
func (t *PaymentTransaction) WithReference(reference string) *PaymentTransaction {
	t.Reference = reference
	return t
}

// IsSettled returns true if the gateway status counts toward the paid amount
func (t *PaymentTransaction) IsSettled() bool {
	_, ok := settledStatuses[strings.ToLower(t.Status)]
	return ok
}

// SignedAmount returns the amount with refunds negated
func (t *PaymentTransaction) SignedAmount() decimal.Decimal {
	if t.Type == PaymentTypeRefund {
		return t.Amount.Neg()
	}
	return t.Amount
}
