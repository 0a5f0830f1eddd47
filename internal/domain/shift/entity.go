// internal/domain/shift/entity.go
package shift

import (
	"time"

	"gorm.io/gorm"
)

// ShiftStatus represents a cash-drawer session status. open -> closed is the
// only transition.
type ShiftStatus string

const (
	ShiftStatusOpen   ShiftStatus = "open"
	ShiftStatusClosed ShiftStatus = "closed"
)

// Shift represents a bounded cash-drawer session used to reconcile sales
// against physical cash
type Shift struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CashierID    uint           `gorm:"not null;index" json:"cashier_id"`
	StartedAt    time.Time      `gorm:"not null" json:"started_at"`
	EndedAt      *time.Time     `json:"ended_at"`
	StartingCash int64          `gorm:"not null" json:"starting_cash"` // In cents
	EndingCash   *int64         `json:"ending_cash"`
	TotalSales   *int64         `json:"total_sales"`
	Status       ShiftStatus    `gorm:"not null;size:20;default:'open';index" json:"status"`
	Notes        string         `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Shift
func (Shift) TableName() string {
	return "shifts"
}

// IsOpen reports whether the drawer is still open
func (s *Shift) IsOpen() bool {
	return s.Status == ShiftStatusOpen
}

// CashDifference returns ending cash minus expected cash (starting cash plus
// total sales). Only meaningful once the shift is closed.
func (s *Shift) CashDifference() int64 {
	if s.EndingCash == nil || s.TotalSales == nil {
		return 0
	}
	return *s.EndingCash - (s.StartingCash + *s.TotalSales)
}
