package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medsupply/backend/internal/domain/billing"
)

// CheckoutRequest converts the session's cart into an order
type CheckoutRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
	Notes      string     `json:"notes" binding:"max=255"`
}

// RecordPaymentRequest records one gateway payment event against an order
type RecordPaymentRequest struct {
	Type      string          `json:"type" binding:"required,oneof=payment refund"`
	Status    string          `json:"status" binding:"required,max=30"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference" binding:"max=64"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderLineResponse is one line of an order in API responses
type OrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	SizeID      *uuid.UUID      `json:"size_id,omitempty"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order with its derived payment summary
type OrderResponse struct {
	ID            uuid.UUID              `json:"id"`
	Number        string                 `json:"number"`
	CustomerID    *uuid.UUID             `json:"customer_id,omitempty"`
	Status        string                 `json:"status"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	Notes         string                 `json:"notes,omitempty"`
	Lines         []OrderLineResponse    `json:"lines,omitempty"`
	Payment       billing.PaymentSummary `json:"payment"`
	CreatedAt     time.Time              `json:"created_at"`
}

// TransactionResponse is one payment event in API responses
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference,omitempty"`
	Settled     bool            `json:"settled"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// ToOrderResponse converts an order and its payment summary to a DTO
func ToOrderResponse(order *billing.Order, summary billing.PaymentSummary) OrderResponse {
	lines := make([]OrderLineResponse, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]
		lines[i] = OrderLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			SizeID:      line.SizeID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		}
	}

	return OrderResponse{
		ID:          order.ID,
		Number:      order.Number,
		CustomerID:  order.CustomerID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Notes:       order.Notes,
		Lines:       lines,
		Payment:     summary,
		CreatedAt:   order.CreatedAt,
	}
}

// ToTransactionResponse converts a payment transaction to a DTO
func ToTransactionResponse(tx *billing.PaymentTransaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Status:      tx.Status,
		Amount:      tx.Amount,
		Reference:   tx.Reference,
		Settled:     tx.IsSettled(),
		ProcessedAt: tx.ProcessedAt,
	}
}
