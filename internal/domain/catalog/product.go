package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medsupply/backend/internal/domain/shared"
	"github.com/medsupply/backend/internal/domain/shared/valueobject"
)

// Product is the aggregate root for catalog items. StockQuantity is the
// authoritative current-stock counter; it is mutated only through the
// inventory ledger (see internal/domain/inventory) and must never go negative.
type Product struct {
	shared.BaseAggregateRoot
	SKU                  string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name                 string          `gorm:"type:varchar(255);not null"`
	Description          string          `gorm:"type:text"`
	Category             string          `gorm:"type:varchar(100);index"`
	UnitPrice            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StockQuantity        int64           `gorm:"not null;default:0"`
	ReorderLevel         int64           `gorm:"not null;default:0"` // Threshold for low-stock alerts
	RequiresPrescription bool            `gorm:"not null;default:false"`
	Active               bool            `gorm:"not null;default:true"`

	// Size variants - loaded with the product
	Sizes []ProductSize `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductSize is a purchasable size variant of a product (e.g. 100ct bottle).
// Pricing is per size; the cart snapshots these prices into its line items.
type ProductSize struct {
	shared.BaseEntity
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Label     string          `gorm:"type:varchar(100);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Position  int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductSize) TableName() string {
	return "product_sizes"
}

// NewProduct creates a new product with zero stock
func NewProduct(sku, name string, unitPrice decimal.Decimal) (*Product, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		UnitPrice:         unitPrice,
		Active:            true,
		Sizes:             make([]ProductSize, 0),
	}, nil
}

// AddSize appends a size variant to the product
func (p *Product) AddSize(label string, unitPrice decimal.Decimal) (*ProductSize, error) {
	if label == "" {
		return nil, shared.NewDomainError("INVALID_SIZE_LABEL", "Size label cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Size unit price cannot be negative")
	}

	size := ProductSize{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  p.ID,
		Label:      label,
		UnitPrice:  unitPrice,
		Position:   len(p.Sizes),
	}
	p.Sizes = append(p.Sizes, size)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return &p.Sizes[len(p.Sizes)-1], nil
}

// FindSize returns the size variant with the given ID
func (p *Product) FindSize(sizeID uuid.UUID) (*ProductSize, bool) {
	for i := range p.Sizes {
		if p.Sizes[i].ID == sizeID {
			return &p.Sizes[i], true
		}
	}
	return nil, false
}

// SetReorderLevel sets the low-stock alert threshold
func (p *Product) SetReorderLevel(level int64) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}
	p.ReorderLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsBelowReorderLevel returns true if stock has fallen below the reorder threshold
func (p *Product) IsBelowReorderLevel() bool {
	return p.ReorderLevel > 0 && p.StockQuantity < p.ReorderLevel
}

// HasStock returns true if there is stock on hand
func (p *Product) HasStock() bool {
	return p.StockQuantity > 0
}

// CanFulfill returns true if current stock covers the requested quantity
func (p *Product) CanFulfill(quantity int64) bool {
	return p.StockQuantity >= quantity
}

// Deactivate removes the product from sale without deleting it
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// UnitPriceMoney returns the base unit price as a Money value object
func (p *Product) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitPrice)
}
