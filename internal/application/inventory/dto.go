package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/medsupply/backend/internal/domain/inventory"
)

// RecordMovementRequest represents a request to record a stock movement.
// Quantity is a positive magnitude for directional movement types and a
// signed delta for signed types (adjustment, transfer).
type RecordMovementRequest struct {
	ProductID   uuid.UUID  `json:"product_id" binding:"required"`
	Type        string     `json:"type" binding:"required,movementtype"`
	Quantity    int64      `json:"quantity" binding:"required"`
	ReferenceID string     `json:"reference_id"`
	Notes       string     `json:"notes" binding:"max=255"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

// BulkMovementRequest represents a batch of movements applied sequentially
type BulkMovementRequest struct {
	Movements []RecordMovementRequest `json:"movements" binding:"required,min=1,max=100,dive"`
}

// MovementResponse represents a ledger record in API responses
type MovementResponse struct {
	ID            uuid.UUID  `json:"id"`
	ProductID     uuid.UUID  `json:"product_id"`
	Type          string     `json:"type"`
	Quantity      int64      `json:"quantity"`
	PreviousStock int64      `json:"previous_stock"`
	NewStock      int64      `json:"new_stock"`
	ReferenceID   string     `json:"reference_id,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	RecordedBy    *uuid.UUID `json:"recorded_by,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// BulkMovementFailure describes one rejected movement in a batch
type BulkMovementFailure struct {
	Index   int    `json:"index"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkMovementResult reports the per-movement outcome of a batch. Succeeded
// movements stay applied even when later ones fail.
type BulkMovementResult struct {
	Succeeded []MovementResponse    `json:"succeeded"`
	Failed    []BulkMovementFailure `json:"failed"`
}

// ProductSummaryResponse is one product's aggregated movement report row
type ProductSummaryResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	Sold        int64     `json:"sold"`
	Received    int64     `json:"received"`
	Adjusted    int64     `json:"adjusted"`
	Returned    int64     `json:"returned"`
	NetChange   int64     `json:"net_change"`
}

// MovementReportResponse is the aggregated movement report for a date range
type MovementReportResponse struct {
	Start    time.Time                `json:"start"`
	End      time.Time                `json:"end"`
	Products []ProductSummaryResponse `json:"products"`
}

// LowStockProductResponse is one row of the reorder report
type LowStockProductResponse struct {
	ProductID     uuid.UUID `json:"product_id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	StockQuantity int64     `json:"stock_quantity"`
	ReorderLevel  int64     `json:"reorder_level"`
}

// ToMovementResponse converts a domain movement to a response DTO
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		RecordedBy:    m.RecordedBy,
		OccurredAt:    m.OccurredAt,
	}
}

// ToMovementResponses converts a slice of domain movements
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}
