// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/product"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Service handles cart business logic. Carts are keyed per cashier and kept
// in Redis with a TTL; the catalog in Postgres stays the source of truth for
// products and stock.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AdjustQuantityRequest represents a +/- quantity adjustment
type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CartResponse represents a cart with its computed totals
type CartResponse struct {
	Cart      *Cart `json:"cart"`
	Total     int64 `json:"total"`
	ItemCount int   `json:"item_count"`
}

// GetCart retrieves the cashier's current cart, creating an empty one if
// none exists
func (s *Service) GetCart(ctx context.Context, cashierID uint) (*CartResponse, error) {
	c, err := s.load(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	return s.respond(c), nil
}

// AddToCart adds one unit of a product to the cashier's cart
func (s *Service) AddToCart(ctx context.Context, cashierID uint, req *AddToCartRequest) (*CartResponse, error) {
	var prod product.Product
	result := s.db.Where("id = ?", req.ProductID).First(&prod)
	if result.Error != nil {
		return nil, fmt.Errorf("product not found")
	}

	c, err := s.load(ctx, cashierID)
	if err != nil {
		return nil, err
	}

	// Stock is only advisory here; the checkout transaction is what
	// actually enforces it.
	currentQuantity := 0
	for _, item := range c.Items {
		if item.ProductID == prod.ID {
			currentQuantity = item.Quantity
		}
	}
	if currentQuantity+1 > prod.StockQuantity {
		return nil, fmt.Errorf("insufficient stock for '%s'. Available: %d", prod.Name, prod.StockQuantity)
	}

	c.Add(&prod)

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(c), nil
}

// AdjustQuantity changes a cart line's quantity by a signed delta, clamped
// to a minimum of one
func (s *Service) AdjustQuantity(ctx context.Context, cashierID, productID uint, req *AdjustQuantityRequest) (*CartResponse, error) {
	c, err := s.load(ctx, cashierID)
	if err != nil {
		return nil, err
	}

	if err := c.AdjustQuantity(productID, req.Delta); err != nil {
		return nil, err
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(c), nil
}

// RemoveFromCart deletes a line from the cashier's cart
func (s *Service) RemoveFromCart(ctx context.Context, cashierID, productID uint) (*CartResponse, error) {
	c, err := s.load(ctx, cashierID)
	if err != nil {
		return nil, err
	}

	if err := c.Remove(productID); err != nil {
		return nil, err
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(c), nil
}

// ClearCart removes the cashier's cart entirely
func (s *Service) ClearCart(ctx context.Context, cashierID uint) error {
	return s.redisClient.Del(ctx, s.cartKey(cashierID)).Err()
}

// Snapshot returns the cashier's cart for checkout without mutating it
func (s *Service) Snapshot(ctx context.Context, cashierID uint) (*Cart, error) {
	return s.load(ctx, cashierID)
}

// Private helpers

func (s *Service) cartKey(cashierID uint) string {
	return fmt.Sprintf("cart:cashier:%d", cashierID)
}

func (s *Service) load(ctx context.Context, cashierID uint) (*Cart, error) {
	data, err := s.redisClient.Get(ctx, s.cartKey(cashierID)).Result()
	if err == redis.Nil {
		return NewCart(cashierID), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &c, nil
}

func (s *Service) save(ctx context.Context, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.redisClient.Set(ctx, s.cartKey(c.CashierID), data, s.config.Checkout.CartTTL).Err()
}

func (s *Service) respond(c *Cart) *CartResponse {
	return &CartResponse{
		Cart:      c,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}
