// internal/domain/sale/service.go
package sale

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/cart"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/product"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Service handles checkout and sales history business logic
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	cartService *cart.Service
}

// NewService creates a new sale service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		cartService: cart.NewService(db, redisClient, cfg),
	}
}

// CheckoutRequest represents the checkout commit request
type CheckoutRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// StockDecrement is one product-level stock change a checkout must apply
type StockDecrement struct {
	ProductID uint
	Quantity  int
}

// SaleListRequest represents sales history query parameters
type SaleListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	CashierID uint   `form:"cashier_id"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
	SortOrder string `form:"sort_order,default=desc"`
}

// normalize clamps pagination to usable bounds. Form defaults only apply when
// the parameter is absent, so an explicit page=0 or limit=0 still reaches here.
func (r *SaleListRequest) normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}

// SaleListResponse represents sales history with pagination
type SaleListResponse struct {
	Sales      []Sale     `json:"sales"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// BuildSale converts a cart snapshot into an unsaved Sale, its line items,
// and the per-product stock decrements the commit must apply. Pure; the
// caller owns persistence.
func BuildSale(c *cart.Cart, cashierID uint, paymentMethod PaymentMethod) (*Sale, []StockDecrement) {
	s := &Sale{
		CashierID:     cashierID,
		TotalAmount:   c.Total(),
		PaymentMethod: paymentMethod,
		Status:        SaleStatusCompleted,
	}

	decrements := make([]StockDecrement, 0, len(c.Items))
	for _, item := range c.Items {
		s.Items = append(s.Items, SaleItem{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
		decrements = append(decrements, StockDecrement{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return s, decrements
}

// Checkout commits the cashier's cart as a sale: the sale row, its line
// items, and every stock decrement succeed or fail together in one
// transaction. The idempotency key makes a retried commit return the
// original sale instead of creating a duplicate.
func (s *Service) Checkout(ctx context.Context, cashierID uint, idempotencyKey string, req *CheckoutRequest) (*Sale, error) {
	snapshot, err := s.cartService.Snapshot(ctx, cashierID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	// Empty cart performs no writes
	if snapshot.IsEmpty() {
		return nil, fmt.Errorf("cart is empty")
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = PaymentMethod(s.config.Checkout.DefaultPaymentMethod)
	}

	// Claim the idempotency key before touching the database
	if idempotencyKey != "" {
		claimed, err := s.claimIdempotencyKey(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return s.resolveIdempotentReplay(ctx, idempotencyKey)
		}
	}

	newSale, decrements := BuildSale(snapshot, cashierID, paymentMethod)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(newSale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		newSale.ReceiptNumber = newSale.GenerateReceiptNumber()
		if err := tx.Model(newSale).Update("receipt_number", newSale.ReceiptNumber).Error; err != nil {
			return fmt.Errorf("failed to update receipt number: %w", err)
		}

		for _, dec := range decrements {
			if err := s.decrementStock(tx, newSale, dec, cashierID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if idempotencyKey != "" {
			s.releaseIdempotencyKey(ctx, idempotencyKey)
		}
		return nil, err
	}

	if idempotencyKey != "" {
		s.storeIdempotentResult(ctx, idempotencyKey, newSale.ID)
	}

	// Cart clearing is best-effort; the sale is already committed
	if err := s.cartService.ClearCart(ctx, cashierID); err != nil {
		return nil, fmt.Errorf("sale %s committed but cart could not be cleared: %w", newSale.ReceiptNumber, err)
	}

	return newSale, nil
}

// GetSales retrieves sales history with filtering and pagination
func (s *Service) GetSales(req *SaleListRequest) (*SaleListResponse, error) {
	req.normalize()

	var sales []Sale
	var total int64

	query := s.db.Model(&Sale{}).Preload("Items")

	if req.CashierID > 0 {
		query = query.Where("cashier_id = ?", req.CashierID)
	}
	if req.DateFrom != "" {
		query = query.Where("created_at >= ?", req.DateFrom)
	}
	if req.DateTo != "" {
		query = query.Where("created_at <= ?", req.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	sortOrder := req.SortOrder
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at " + sortOrder).Offset(offset).Limit(req.Limit).Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &SaleListResponse{
		Sales: sales,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetSale retrieves a single sale by ID
func (s *Service) GetSale(id uint) (*Sale, error) {
	var sl Sale
	result := s.db.Preload("Items").Where("id = ?", id).First(&sl)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("sale not found")
		}
		return nil, fmt.Errorf("failed to retrieve sale: %w", result.Error)
	}
	return &sl, nil
}

// GetSaleByReceiptNumber retrieves a single sale by receipt number
func (s *Service) GetSaleByReceiptNumber(receiptNumber string) (*Sale, error) {
	var sl Sale
	result := s.db.Preload("Items").Where("receipt_number = ?", receiptNumber).First(&sl)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("sale not found")
		}
		return nil, fmt.Errorf("failed to retrieve sale: %w", result.Error)
	}
	return &sl, nil
}

// DeleteSale removes a sale and all its line items together, so no orphaned
// items remain
func (s *Service) DeleteSale(id uint) error {
	var sl Sale
	if err := s.db.First(&sl, id).Error; err != nil {
		return fmt.Errorf("sale not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&SaleItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete sale items: %w", err)
		}
		if err := tx.Delete(&sl).Error; err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}
		return nil
	})
}

// SumForWindow returns the total of completed sales for a cashier whose
// timestamp falls inside [from, to], both bounds inclusive
func (s *Service) SumForWindow(cashierID uint, from, to time.Time) (int64, error) {
	var total int64
	err := s.db.Model(&Sale{}).
		Where("cashier_id = ? AND status = ? AND created_at BETWEEN ? AND ?",
			cashierID, SaleStatusCompleted, from, to).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum sales: %w", err)
	}
	return total, nil
}

// Private helpers

// decrementStock applies one conditional stock decrement. The guard in the
// WHERE clause is what prevents two registers selling the same stale stock:
// if another checkout got there first, zero rows match and the whole
// transaction rolls back.
func (s *Service) decrementStock(tx *gorm.DB, sl *Sale, dec StockDecrement, cashierID uint) error {
	var prod product.Product
	if err := tx.Where("id = ?", dec.ProductID).First(&prod).Error; err != nil {
		return fmt.Errorf("product %d not found", dec.ProductID)
	}

	result := tx.Model(&product.Product{}).
		Where("id = ? AND stock_quantity >= ?", dec.ProductID, dec.Quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", dec.Quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to update stock for '%s': %w", prod.Name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("insufficient stock for '%s'. Available: %d, Requested: %d",
			prod.Name, prod.StockQuantity, dec.Quantity)
	}

	movement := product.StockMovement{
		ProductID:        dec.ProductID,
		Reason:           product.ReasonSale,
		Quantity:         -dec.Quantity,
		PreviousQuantity: prod.StockQuantity,
		NewQuantity:      prod.StockQuantity - dec.Quantity,
		ReferenceID:      sl.ID,
		CreatedBy:        cashierID,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}

	return nil
}

const idempotencyPending = "pending"

func (s *Service) idempotencyRedisKey(key string) string {
	return fmt.Sprintf("checkout:idempotency:%s", key)
}

func (s *Service) claimIdempotencyKey(ctx context.Context, key string) (bool, error) {
	claimed, err := s.redisClient.SetNX(ctx, s.idempotencyRedisKey(key), idempotencyPending, s.config.Checkout.IdempotencyKeyTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	return claimed, nil
}

func (s *Service) resolveIdempotentReplay(ctx context.Context, key string) (*Sale, error) {
	value, err := s.redisClient.Get(ctx, s.idempotencyRedisKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve idempotency key: %w", err)
	}
	if value == idempotencyPending {
		return nil, fmt.Errorf("checkout already in progress for this key")
	}

	saleID, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid idempotency record")
	}
	return s.GetSale(uint(saleID))
}

func (s *Service) storeIdempotentResult(ctx context.Context, key string, saleID uint) {
	s.redisClient.Set(ctx, s.idempotencyRedisKey(key), strconv.FormatUint(uint64(saleID), 10), s.config.Checkout.IdempotencyKeyTTL)
}

func (s *Service) releaseIdempotencyKey(ctx context.Context, key string) {
	s.redisClient.Del(ctx, s.idempotencyRedisKey(key))
}
