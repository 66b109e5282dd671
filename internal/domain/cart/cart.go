package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medsupply/backend/internal/domain/shared"
)

// Cart holds a shopping session's line items. Totals are always derived from
// the size lines by reduction, never stored, so they cannot drift from the
// underlying quantities.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one product in the cart with one line per size variant
type CartItem struct {
	ProductID uuid.UUID  `json:"product_id"`
	Name      string     `json:"name"`
	Sizes     []SizeLine `json:"sizes"`
}

// SizeLine is a quantity of a single size variant at a snapshotted price
type SizeLine struct {
	SizeID    uuid.UUID       `json:"size_id"`
	Label     string          `json:"label"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewCart creates an empty cart for a session
func NewCart(sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, shared.NewDomainError("INVALID_SESSION", "Session ID cannot be empty")
	}
	return &Cart{
		SessionID: sessionID,
		Items:     make([]CartItem, 0),
		UpdatedAt: time.Now(),
	}, nil
}

// AddItem merges an item into the cart. If the product is already present,
// matching size IDs have their quantities summed and unmatched sizes are
// appended; otherwise the item is appended as-is.
func (c *Cart) AddItem(item CartItem) error {
	if item.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if len(item.Sizes) == 0 {
		return shared.NewDomainError("INVALID_ITEM", "Cart item must have at least one size line")
	}
	for _, size := range item.Sizes {
		if size.SizeID == uuid.Nil {
			return shared.NewDomainError("INVALID_SIZE", "Size ID cannot be empty")
		}
		if size.Quantity < 1 {
			return shared.NewDomainError("INVALID_QUANTITY", "Size quantity must be at least 1")
		}
		if size.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Size unit price cannot be negative")
		}
	}

	for i := range c.Items {
		if c.Items[i].ProductID != item.ProductID {
			continue
		}
		c.Items[i].merge(item)
		c.UpdatedAt = time.Now()
		return nil
	}

	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	return nil
}

// merge folds incoming size lines into an existing item
func (i *CartItem) merge(incoming CartItem) {
	for _, size := range incoming.Sizes {
		merged := false
		for j := range i.Sizes {
			if i.Sizes[j].SizeID == size.SizeID {
				i.Sizes[j].Quantity += size.Quantity
				merged = true
				break
			}
		}
		if !merged {
			i.Sizes = append(i.Sizes, size)
		}
	}
}

// UpdateQuantity sets the quantity of one size line. The caller is expected
// to have validated the quantity is at least 1.
func (c *Cart) UpdateQuantity(productID, sizeID uuid.UUID, quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		for j := range c.Items[i].Sizes {
			if c.Items[i].Sizes[j].SizeID == sizeID {
				c.Items[i].Sizes[j].Quantity = quantity
				c.UpdatedAt = time.Now()
				return nil
			}
		}
		return shared.NewDomainError("SIZE_NOT_IN_CART", "Size is not in the cart")
	}

	return shared.NewDomainError("PRODUCT_NOT_IN_CART", "Product is not in the cart")
}

// RemoveItem filters a product out of the cart. Removing a product that is
// not present is a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	c.Items = items
	c.UpdatedAt = time.Now()
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal returns the cart total as a reduction over all size lines
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// ItemCount returns the total unit quantity across all size lines
func (c *Cart) ItemCount() int64 {
	var count int64
	for i := range c.Items {
		count += c.Items[i].Quantity()
	}
	return count
}

// Quantity returns the item's total quantity across its size lines
func (i *CartItem) Quantity() int64 {
	var quantity int64
	for _, size := range i.Sizes {
		quantity += size.Quantity
	}
	return quantity
}

// Subtotal returns the item's price as quantity-weighted sum of size prices
func (i *CartItem) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, size := range i.Sizes {
		total = total.Add(size.UnitPrice.Mul(decimal.NewFromInt(size.Quantity)))
	}
	return total
}

// FindItem returns the cart item for a product
func (c *Cart) FindItem(productID uuid.UUID) (*CartItem, bool) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i], true
		}
	}
	return nil, false
}
