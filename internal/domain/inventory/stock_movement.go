package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/medsupply/backend/internal/domain/shared"
)

// StockMovement is an immutable, append-only record of a stock change.
// Once created, movements cannot be modified - corrections are recorded
// as new adjustment movements.
type StockMovement struct {
	shared.BaseEntity
	ProductID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_stock_movement_product_time,priority:1"`
	Type          MovementType `gorm:"type:varchar(20);not null;index"`
	Quantity      int64        `gorm:"not null"` // Signed delta applied to stock
	PreviousStock int64        `gorm:"not null"`
	NewStock      int64        `gorm:"not null"`
	ReferenceID   string       `gorm:"type:varchar(64);index"` // Source document (order number etc.)
	Notes         string       `gorm:"type:varchar(255)"`
	RecordedBy    *uuid.UUID   `gorm:"type:uuid"`
	OccurredAt    time.Time    `gorm:"type:timestamptz;not null;index:idx_stock_movement_product_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new ledger record. The quantity is the signed
// delta already normalized through MovementType.SignedQuantity. Invariants:
// newStock = previousStock + quantity, and newStock >= 0.
func NewStockMovement(productID uuid.UUID, movementType MovementType, quantity, previousStock, newStock int64) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}
	if newStock != previousStock+quantity {
		return nil, shared.NewDomainError("LEDGER_MISMATCH", "New stock must equal previous stock plus quantity")
	}
	if newStock < 0 {
		return nil, NewInsufficientStockError(productID, previousStock, quantity)
	}

	return &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		Type:          movementType,
		Quantity:      quantity,
		PreviousStock: previousStock,
		NewStock:      newStock,
		OccurredAt:    time.Now(),
	}, nil
}

// WithReference sets the source document reference
func (m *StockMovement) WithReference(referenceID string) *StockMovement {
	m.ReferenceID = referenceID
	return m
}

// WithNotes sets free-form notes
func (m *StockMovement) WithNotes(notes string) *StockMovement {
	m.Notes = notes
	return m
}

// WithRecordedBy sets the user who recorded the movement
func (m *StockMovement) WithRecordedBy(userID uuid.UUID) *StockMovement {
	m.RecordedBy = &userID
	return m
}

// WithOccurredAt overrides the movement timestamp
func (m *StockMovement) WithOccurredAt(at time.Time) *StockMovement {
	m.OccurredAt = at
	return m
}

// IsOutflow returns true if the movement decreased stock
func (m *StockMovement) IsOutflow() bool {
	return m.Quantity < 0
}

// Magnitude returns the unsigned quantity moved
func (m *StockMovement) Magnitude() int64 {
	if m.Quantity < 0 {
		return -m.Quantity
	}
	return m.Quantity
}
