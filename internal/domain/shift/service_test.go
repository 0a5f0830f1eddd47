package shift

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/sale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestValidateCashAmount(t *testing.T) {
	assert.NoError(t, ValidateCashAmount(0))
	assert.NoError(t, ValidateCashAmount(10000))

	assert.Error(t, ValidateCashAmount(-1))
	assert.Error(t, ValidateCashAmount(-10000))
}

func TestIsOpen(t *testing.T) {
	assert.True(t, (&Shift{Status: ShiftStatusOpen}).IsOpen())
	assert.False(t, (&Shift{Status: ShiftStatusClosed}).IsOpen())
}

func TestCashDifferenceBalancedDrawer(t *testing.T) {
	ending := int64(25000)
	total := int64(15000)
	sh := &Shift{
		StartingCash: 10000,
		EndingCash:   &ending,
		TotalSales:   &total,
	}

	assert.Equal(t, int64(0), sh.CashDifference())
}

func TestCashDifferenceShortage(t *testing.T) {
	ending := int64(24500)
	total := int64(15000)
	sh := &Shift{
		StartingCash: 10000,
		EndingCash:   &ending,
		TotalSales:   &total,
	}

	// Drawer is 500 cents short
	assert.Equal(t, int64(-500), sh.CashDifference())
}

func TestCashDifferenceOverage(t *testing.T) {
	ending := int64(26000)
	total := int64(15000)
	sh := &Shift{
		StartingCash: 10000,
		EndingCash:   &ending,
		TotalSales:   &total,
	}

	assert.Equal(t, int64(1000), sh.CashDifference())
}

// TestCashDifferenceOpenShift verifies the difference is zero while the
// closing counts are still missing
func TestCashDifferenceOpenShift(t *testing.T) {
	sh := &Shift{
		StartingCash: 10000,
		StartedAt:    time.Now().UTC(),
		Status:       ShiftStatusOpen,
	}

	assert.Equal(t, int64(0), sh.CashDifference())
}

func TestSumSalesInWindowBoundsAreInclusive(t *testing.T) {
	start := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	sales := []sale.Sale{
		{CashierID: 3, Status: sale.SaleStatusCompleted, TotalAmount: 1000, CreatedAt: start},
		{CashierID: 3, Status: sale.SaleStatusCompleted, TotalAmount: 2000, CreatedAt: start.Add(2 * time.Hour)},
		{CashierID: 3, Status: sale.SaleStatusCompleted, TotalAmount: 4000, CreatedAt: end},
	}

	// Sales stamped exactly at the open and close instants both count
	assert.Equal(t, int64(7000), SumSalesInWindow(sales, 3, start, end))
}

func TestSumSalesInWindowExcludesSalesOutsideWindow(t *testing.T) {
	start := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	sales := []sale.Sale{
		{CashierID: 3, Status: sale.SaleStatusCompleted, TotalAmount: 800, CreatedAt: start.Add(-time.Second)},
		{CashierID: 3, Status: sale.SaleStatusCompleted, TotalAmount: 2000, CreatedAt: start.Add(time.Hour)},
		{CashierID: 3, Status: sale.SaleStatusCompleted, TotalAmount: 1600, CreatedAt: end.Add(time.Second)},
	}

	assert.Equal(t, int64(2000), SumSalesInWindow(sales, 3, start, end))
}

func TestSumSalesInWindowSkipsOtherCashiersAndVoidedSales(t *testing.T) {
	start := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	sales := []sale.Sale{
		{CashierID: 3, Status: sale.SaleStatusCompleted, TotalAmount: 2000, CreatedAt: start.Add(time.Hour)},
		{CashierID: 7, Status: sale.SaleStatusCompleted, TotalAmount: 3200, CreatedAt: start.Add(time.Hour)},
		{CashierID: 3, Status: sale.SaleStatusVoided, TotalAmount: 6400, CreatedAt: start.Add(2 * time.Hour)},
	}

	assert.Equal(t, int64(2000), SumSalesInWindow(sales, 3, start, end))
}

func mockShiftDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestStartRejectsSecondOpenShift(t *testing.T) {
	db, mock := mockShiftDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "shifts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cashier_id", "status"}).AddRow(1, 3, "open"))

	svc := NewService(db, &config.Config{}, nil)

	_, err := svc.Start(3, &StartShiftRequest{StartingCash: 10000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartSurfacesLookupFailure(t *testing.T) {
	db, mock := mockShiftDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "shifts"`).
		WillReturnError(fmt.Errorf("connection refused"))

	svc := NewService(db, &config.Config{}, nil)

	// A broken connection must never read as "no open shift"
	_, err := svc.Start(3, &StartShiftRequest{StartingCash: 10000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check for open shift")
	assert.NoError(t, mock.ExpectationsWereMet())
}
