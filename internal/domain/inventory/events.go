package inventory

import (
	"github.com/google/uuid"

	"github.com/medsupply/backend/internal/domain/shared"
)

// Event types
const (
	EventTypeStockMovementRecorded = "inventory.stock_movement_recorded"
	EventTypeStockBelowReorder     = "inventory.stock_below_reorder_level"
)

// StockMovementRecordedEvent is emitted after a ledger row has been written
type StockMovementRecordedEvent struct {
	shared.BaseDomainEvent
	MovementID    uuid.UUID    `json:"movement_id"`
	MovementType  MovementType `json:"movement_type"`
	Quantity      int64        `json:"quantity"`
	PreviousStock int64        `json:"previous_stock"`
	NewStock      int64        `json:"new_stock"`
	ReferenceID   string       `json:"reference_id,omitempty"`
}

// NewStockMovementRecordedEvent creates a new StockMovementRecordedEvent
func NewStockMovementRecordedEvent(movement *StockMovement) *StockMovementRecordedEvent {
	return &StockMovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementRecorded, "Product", movement.ProductID),
		MovementID:      movement.ID,
		MovementType:    movement.Type,
		Quantity:        movement.Quantity,
		PreviousStock:   movement.PreviousStock,
		NewStock:        movement.NewStock,
		ReferenceID:     movement.ReferenceID,
	}
}

// StockBelowReorderLevelEvent is emitted when a movement leaves a product
// below its reorder threshold
type StockBelowReorderLevelEvent struct {
	shared.BaseDomainEvent
	CurrentStock int64 `json:"current_stock"`
	ReorderLevel int64 `json:"reorder_level"`
}

// NewStockBelowReorderLevelEvent creates a new StockBelowReorderLevelEvent
func NewStockBelowReorderLevelEvent(productID uuid.UUID, currentStock, reorderLevel int64) *StockBelowReorderLevelEvent {
	return &StockBelowReorderLevelEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowReorder, "Product", productID),
		CurrentStock:    currentStock,
		ReorderLevel:    reorderLevel,
	}
}
