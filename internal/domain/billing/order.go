package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medsupply/backend/internal/domain/shared"
	"github.com/medsupply/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus is the stored payment state of an order. It is derived from
// the order's payment transactions; the stored value exists so legacy orders
// created before transaction logging can still be classified.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Order is the aggregate root for a customer order. Line items are immutable
// snapshots of cart state at checkout time.
type Order struct {
	shared.BaseAggregateRoot
	Number        string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notes         string          `gorm:"type:varchar(255)"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderLine is one product-size line of an order
type OrderLine struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SizeID      *uuid.UUID      `gorm:"type:uuid"`
	Description string          `gorm:"type:varchar(255);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// NewOrderLine creates an order line and computes its total
func NewOrderLine(productID uuid.UUID, sizeID *uuid.UUID, description string, quantity int64, unitPrice decimal.Decimal) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderLine{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		SizeID:      sizeID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(quantity)),
	}, nil
}

// NewOrder creates a pending order from its lines; the total is computed
// as the sum of line totals
func NewOrder(number string, lines []OrderLine) (*Order, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must have at least one line")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
		Lines:             lines,
	}
	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
	}
	order.TotalAmount = order.computeTotal()

	return order, nil
}

func (o *Order) computeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].LineTotal)
	}
	return total
}

// TotalMoney returns the order total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// SetCustomer attaches the ordering customer
func (o *Order) SetCustomer(customerID uuid.UUID) {
	o.CustomerID = &customerID
}

// Confirm transitions a pending order to confirmed
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return shared.ErrInvalidState
	}
	o.Status = OrderStatusConfirmed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Cancel transitions an order to cancelled unless it is already completed
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled {
		return shared.ErrInvalidState
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// SetPaymentStatus records the derived payment state
func (o *Order) SetPaymentStatus(status PaymentStatus) {
	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
