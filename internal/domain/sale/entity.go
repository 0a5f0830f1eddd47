// internal/domain/sale/entity.go
package sale

import (
	"fmt"
	"time"
)

// SaleStatus represents the sale status
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusVoided    SaleStatus = "voided"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// Sale represents a committed register transaction
type Sale struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	ReceiptNumber string        `gorm:"uniqueIndex;not null;size:50" json:"receipt_number"`
	CashierID     uint          `gorm:"not null;index" json:"cashier_id"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"` // In cents
	PaymentMethod PaymentMethod `gorm:"not null;size:20;default:'cash'" json:"payment_method"`
	Status        SaleStatus    `gorm:"not null;size:20;default:'completed'" json:"status"`
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// SaleItem represents one line of a committed sale. UnitPrice is a
// point-in-time copy; later catalog price changes never touch it.
type SaleItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SaleID    uint      `gorm:"not null;index" json:"sale_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	SKU       string    `gorm:"not null;size:100" json:"sku"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Subtotal  int64     `gorm:"not null" json:"subtotal"` // Quantity * UnitPrice
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Sale) TableName() string     { return "sales" }
func (SaleItem) TableName() string { return "sale_items" }

// GenerateReceiptNumber builds the printed receipt identifier.
// Format: RCP-YYYYMMDD-XXXXX
func (s *Sale) GenerateReceiptNumber() string {
	return fmt.Sprintf("RCP-%s-%05d", time.Now().Format("20060102"), s.ID)
}

// GetFormattedTotal returns total amount as float
func (s *Sale) GetFormattedTotal() float64 {
	return float64(s.TotalAmount) / 100
}
