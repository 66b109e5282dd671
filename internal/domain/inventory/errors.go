package inventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/medsupply/backend/internal/domain/shared"
)

// InsufficientStockError is returned when a movement would drive a product's
// stock counter negative. It carries the current and requested values so
// callers can surface both; no writes occur when it is returned.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Current   int64
	Requested int64 // Signed delta that was rejected
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: current %d, requested change %d", e.ProductID, e.Current, e.Requested)
}

// Is allows errors.Is(err, shared.ErrInsufficientStock) to match
func (e *InsufficientStockError) Is(target error) bool {
	return target == shared.ErrInsufficientStock
}

// Unwrap exposes the sentinel so errors.As finds the underlying DomainError
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(productID uuid.UUID, current, requested int64) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Current:   current,
		Requested: requested,
	}
}
