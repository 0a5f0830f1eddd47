// internal/domain/shift/service.go
package shift

import (
	"fmt"
	"time"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/sale"
	"gorm.io/gorm"
)

// Service handles cash-drawer shift business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	saleService *sale.Service
}

// NewService creates a new shift service
func NewService(db *gorm.DB, cfg *config.Config, saleService *sale.Service) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		saleService: saleService,
	}
}

// StartShiftRequest represents the start-of-shift form
type StartShiftRequest struct {
	StartingCash int64 `json:"starting_cash"`
}

// EndShiftRequest represents the end-of-shift form
type EndShiftRequest struct {
	EndingCash int64  `json:"ending_cash"`
	Notes      string `json:"notes"`
}

// ShiftListRequest represents shift history query parameters
type ShiftListRequest struct {
	Page      int         `form:"page,default=1"`
	Limit     int         `form:"limit,default=20"`
	CashierID uint        `form:"cashier_id"`
	Status    ShiftStatus `form:"status"`
}

// ValidateCashAmount rejects negative drawer amounts. Validation happens
// before any record is written.
func ValidateCashAmount(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("cash amount cannot be negative")
	}
	return nil
}

// SumSalesInWindow totals completed sales for one cashier whose timestamps
// fall inside [from, to], both bounds inclusive. Voided sales and other
// cashiers' sales never count. This is the in-memory counterpart of the
// aggregate the drawer close runs in SQL.
func SumSalesInWindow(sales []sale.Sale, cashierID uint, from, to time.Time) int64 {
	var total int64
	for _, sl := range sales {
		if sl.CashierID != cashierID || sl.Status != sale.SaleStatusCompleted {
			continue
		}
		if sl.CreatedAt.Before(from) || sl.CreatedAt.After(to) {
			continue
		}
		total += sl.TotalAmount
	}
	return total
}

// Start opens a new cash-drawer shift for the cashier, stamped with the
// current time. A cashier can hold at most one open shift.
func (s *Service) Start(cashierID uint, req *StartShiftRequest) (*Shift, error) {
	if err := ValidateCashAmount(req.StartingCash); err != nil {
		return nil, err
	}

	var open Shift
	result := s.db.Where("cashier_id = ? AND status = ?", cashierID, ShiftStatusOpen).First(&open)
	if result.Error == nil {
		return nil, fmt.Errorf("an open shift already exists for this cashier")
	}
	if result.Error != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check for open shift: %w", result.Error)
	}

	sh := Shift{
		CashierID:    cashierID,
		StartedAt:    time.Now().UTC(),
		StartingCash: req.StartingCash,
		Status:       ShiftStatusOpen,
	}

	if err := s.db.Create(&sh).Error; err != nil {
		return nil, fmt.Errorf("failed to start shift: %w", err)
	}

	return &sh, nil
}

// End closes the cashier's open shift: it computes total sales over the
// shift window [started_at, now], both bounds inclusive, and records the
// counted drawer cash.
func (s *Service) End(cashierID uint, req *EndShiftRequest) (*Shift, error) {
	if err := ValidateCashAmount(req.EndingCash); err != nil {
		return nil, err
	}

	sh, err := s.Active(cashierID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	totalSales, err := s.saleService.SumForWindow(cashierID, sh.StartedAt, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute shift sales total: %w", err)
	}

	updates := map[string]interface{}{
		"ended_at":    now,
		"ending_cash": req.EndingCash,
		"total_sales": totalSales,
		"notes":       req.Notes,
		"status":      ShiftStatusClosed,
	}

	if err := s.db.Model(sh).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to end shift: %w", err)
	}

	sh.EndedAt = &now
	sh.EndingCash = &req.EndingCash
	sh.TotalSales = &totalSales
	sh.Notes = req.Notes
	sh.Status = ShiftStatusClosed

	return sh, nil
}

// Active returns the cashier's open shift
func (s *Service) Active(cashierID uint) (*Shift, error) {
	var sh Shift
	result := s.db.Where("cashier_id = ? AND status = ?", cashierID, ShiftStatusOpen).First(&sh)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no open shift for this cashier")
		}
		return nil, fmt.Errorf("failed to retrieve shift: %w", result.Error)
	}
	return &sh, nil
}

// Get retrieves a single shift by ID
func (s *Service) Get(id uint) (*Shift, error) {
	var sh Shift
	result := s.db.Where("id = ?", id).First(&sh)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("shift not found")
		}
		return nil, fmt.Errorf("failed to retrieve shift: %w", result.Error)
	}
	return &sh, nil
}

// List retrieves shift history, newest first
func (s *Service) List(req *ShiftListRequest) ([]Shift, error) {
	var shifts []Shift

	query := s.db.Model(&Shift{})
	if req.CashierID > 0 {
		query = query.Where("cashier_id = ?", req.CashierID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("started_at DESC").Offset(offset).Limit(req.Limit).Find(&shifts).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve shifts: %w", err)
	}

	return shifts, nil
}

// Delete removes a closed shift's record. Open shifts are not deletable.
func (s *Service) Delete(id uint) error {
	sh, err := s.Get(id)
	if err != nil {
		return err
	}

	if sh.IsOpen() {
		return fmt.Errorf("cannot delete an open shift")
	}

	if err := s.db.Delete(sh).Error; err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}
