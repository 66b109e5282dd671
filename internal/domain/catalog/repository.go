package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/medsupply/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// FindByID finds a product by its ID, including size variants
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindBelowReorderLevel finds active products whose stock has fallen
	// below their reorder threshold
	FindBelowReorderLevel(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock applies a signed delta to the product's stock counter as a
	// single atomic conditional update: the write succeeds only when the
	// resulting quantity is non-negative, so concurrent writers can neither
	// drive the counter below zero nor lose updates. Returns the new stock
	// value, shared.ErrInsufficientStock when the delta would go negative,
	// or shared.ErrNotFound when the product does not exist.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (int64, error)
}
