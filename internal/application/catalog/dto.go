package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medsupply/backend/internal/domain/catalog"
)

// SizeRequest is one size variant in a create or update request
type SizeRequest struct {
	Label     string          `json:"label" binding:"required,max=100"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU                  string          `json:"sku" binding:"required,max=64"`
	Name                 string          `json:"name" binding:"required,max=255"`
	Description          string          `json:"description"`
	Category             string          `json:"category" binding:"max=100"`
	UnitPrice            decimal.Decimal `json:"unit_price" binding:"required"`
	ReorderLevel         int64           `json:"reorder_level" binding:"min=0"`
	RequiresPrescription bool            `json:"requires_prescription"`
	Sizes                []SizeRequest   `json:"sizes" binding:"dive"`
}

// UpdateProductRequest represents a partial update to a product
type UpdateProductRequest struct {
	Name                 *string          `json:"name" binding:"omitempty,max=255"`
	Description          *string          `json:"description"`
	Category             *string          `json:"category" binding:"omitempty,max=100"`
	UnitPrice            *decimal.Decimal `json:"unit_price"`
	ReorderLevel         *int64           `json:"reorder_level" binding:"omitempty,min=0"`
	RequiresPrescription *bool            `json:"requires_prescription"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search       string `form:"search"`
	Category     string `form:"category"`
	ActiveOnly   bool   `form:"active_only"`
	InStockOnly  bool   `form:"in_stock_only"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by" binding:"omitempty,oneof=name sku created_at stock_quantity"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SizeResponse is one size variant in API responses
type SizeResponse struct {
	ID        uuid.UUID       `json:"id"`
	Label     string          `json:"label"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Position  int             `json:"position"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                   uuid.UUID       `json:"id"`
	SKU                  string          `json:"sku"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	Category             string          `json:"category,omitempty"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	StockQuantity        int64           `json:"stock_quantity"`
	ReorderLevel         int64           `json:"reorder_level"`
	BelowReorderLevel    bool            `json:"below_reorder_level"`
	RequiresPrescription bool            `json:"requires_prescription"`
	Active               bool            `json:"active"`
	Sizes                []SizeResponse  `json:"sizes"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	sizes := make([]SizeResponse, len(p.Sizes))
	for i, size := range p.Sizes {
		sizes[i] = SizeResponse{
			ID:        size.ID,
			Label:     size.Label,
			UnitPrice: size.UnitPrice,
			Position:  size.Position,
		}
	}

	return ProductResponse{
		ID:                   p.ID,
		SKU:                  p.SKU,
		Name:                 p.Name,
		Description:          p.Description,
		Category:             p.Category,
		UnitPrice:            p.UnitPrice,
		StockQuantity:        p.StockQuantity,
		ReorderLevel:         p.ReorderLevel,
		BelowReorderLevel:    p.IsBelowReorderLevel(),
		RequiresPrescription: p.RequiresPrescription,
		Active:               p.Active,
		Sizes:                sizes,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
