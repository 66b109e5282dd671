package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medsupply/backend/internal/domain/cart"
)

// AddSizeRequest is one size line of an add-to-cart request
type AddSizeRequest struct {
	SizeID   uuid.UUID `json:"size_id" binding:"required"`
	Quantity int64     `json:"quantity" binding:"required,min=1"`
}

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Sizes     []AddSizeRequest `json:"sizes" binding:"required,min=1,dive"`
}

// UpdateQuantityRequest sets the quantity of one size line
type UpdateQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	SizeID    uuid.UUID `json:"size_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// SizeLineResponse is one size line in a cart response
type SizeLineResponse struct {
	SizeID    uuid.UUID       `json:"size_id"`
	Label     string          `json:"label"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartItemResponse is one product entry in a cart response
type CartItemResponse struct {
	ProductID uuid.UUID          `json:"product_id"`
	Name      string             `json:"name"`
	Quantity  int64              `json:"quantity"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Sizes     []SizeLineResponse `json:"sizes"`
}

// CartResponse represents the cart in API responses. Subtotal and ItemCount
// are recomputed from the size lines on every response.
type CartResponse struct {
	SessionID string             `json:"session_id"`
	Items     []CartItemResponse `json:"items"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	ItemCount int64              `json:"item_count"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ToCartResponse converts a domain cart to a response DTO
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		sizes := make([]SizeLineResponse, len(item.Sizes))
		for j, size := range item.Sizes {
			sizes[j] = SizeLineResponse{
				SizeID:    size.SizeID,
				Label:     size.Label,
				Quantity:  size.Quantity,
				UnitPrice: size.UnitPrice,
				LineTotal: size.UnitPrice.Mul(decimal.NewFromInt(size.Quantity)),
			}
		}
		items[i] = CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
			Sizes:     sizes,
		}
	}

	return CartResponse{
		SessionID: c.SessionID,
		Items:     items,
		Subtotal:  c.Subtotal(),
		ItemCount: c.ItemCount(),
		UpdatedAt: c.UpdatedAt,
	}
}
