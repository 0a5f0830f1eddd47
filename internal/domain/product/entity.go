// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item sold at the register
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SKU           string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Price         int64          `gorm:"not null" json:"price"` // Price in cents
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`
	Category      string         `gorm:"size:100;index" json:"category"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Movements []StockMovement `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"movements,omitempty"`
}

// MovementReason represents why a product's stock changed
type MovementReason string

const (
	ReasonSale       MovementReason = "sale"
	ReasonRestock    MovementReason = "restock"
	ReasonAdjustment MovementReason = "adjustment"
)

// StockMovement records a single change to a product's stock quantity
type StockMovement struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ProductID        uint           `gorm:"not null;index" json:"product_id"`
	Reason           MovementReason `gorm:"not null;size:20" json:"reason"`
	Quantity         int            `gorm:"not null" json:"quantity"` // Negative for outbound
	PreviousQuantity int            `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int            `gorm:"not null" json:"new_quantity"`
	ReferenceID      uint           `json:"reference_id"` // Sale ID for sale movements
	CreatedBy        uint           `gorm:"index" json:"created_by"`
	CreatedAt        time.Time      `json:"created_at"`
}

// StockBucket filters products by stock level
type StockBucket string

const (
	StockBucketAll StockBucket = "all"
	StockBucketLow StockBucket = "low"
	StockBucketOut StockBucket = "out"
)

// LowStockThreshold is the stock level at or below which a product counts as low
const LowStockThreshold = 10

// TableName overrides
func (Product) TableName() string       { return "products" }
func (StockMovement) TableName() string { return "stock_movements" }

// Business methods for Product

func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity == 0
}

func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= LowStockThreshold
}

func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}
