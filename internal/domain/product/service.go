// internal/domain/product/service.go
package product

import (
	"fmt"
	"strings"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents the inventory add form
type CreateProductRequest struct {
	SKU           string `json:"sku" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Price         int64  `json:"price" binding:"required,min=0"`
	StockQuantity int    `json:"stock_quantity" binding:"min=0"`
	Category      string `json:"category"`
}

// UpdateStockRequest represents a manual stock adjustment
type UpdateStockRequest struct {
	Quantity int            `json:"quantity" binding:"required"`
	Reason   MovementReason `json:"reason"`
}

// CatalogFilter holds the three independent catalog predicates
type CatalogFilter struct {
	Query       string      `form:"q"`
	Category    string      `form:"category,default=all"`
	StockBucket StockBucket `form:"stock,default=all"`
}

// CatalogResponse represents the catalog view: full product list plus
// the derived category set
type CatalogResponse struct {
	Products   []Product `json:"products"`
	Categories []string  `json:"categories"`
	Total      int       `json:"total"`
}

// List loads the full catalog ordered by name. The catalog is small enough
// that pagination is deliberately absent; filtering happens over the
// in-memory snapshot.
func (s *Service) List(filter *CatalogFilter) (*CatalogResponse, error) {
	var products []Product
	if err := s.db.Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	categories := Categories(products)
	filtered := Filter(products, filter)

	return &CatalogResponse{
		Products:   filtered,
		Categories: categories,
		Total:      len(filtered),
	}, nil
}

// Get retrieves a single product by ID
func (s *Service) Get(id uint) (*Product, error) {
	var prod Product
	result := s.db.Where("id = ?", id).First(&prod)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &prod, nil
}

// GetBySKU retrieves a single product by SKU
func (s *Service) GetBySKU(sku string) (*Product, error) {
	var prod Product
	result := s.db.Where("sku = ?", sku).First(&prod)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &prod, nil
}

// Create adds a new product to the catalog
func (s *Service) Create(req *CreateProductRequest, createdBy uint) (*Product, error) {
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("stock quantity cannot be negative")
	}

	// Reject duplicate SKUs before writing anything
	var existing Product
	if err := s.db.Where("sku = ?", req.SKU).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("product with SKU '%s' already exists", req.SKU)
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check for existing SKU: %w", err)
	}

	prod := Product{
		SKU:           strings.TrimSpace(req.SKU),
		Name:          strings.TrimSpace(req.Name),
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      strings.TrimSpace(req.Category),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prod).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		if prod.StockQuantity > 0 {
			movement := StockMovement{
				ProductID:        prod.ID,
				Reason:           ReasonRestock,
				Quantity:         prod.StockQuantity,
				PreviousQuantity: 0,
				NewQuantity:      prod.StockQuantity,
				CreatedBy:        createdBy,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return fmt.Errorf("failed to record stock movement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &prod, nil
}

// UpdateStock adjusts a product's stock by a signed quantity. The resulting
// level can never go below zero.
func (s *Service) UpdateStock(productID uint, req *UpdateStockRequest, updatedBy uint) (*Product, error) {
	reason := req.Reason
	if reason == "" {
		reason = ReasonAdjustment
	}

	var prod Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", productID).First(&prod).Error; err != nil {
			return fmt.Errorf("product not found")
		}

		newQuantity := prod.StockQuantity + req.Quantity
		if newQuantity < 0 {
			return fmt.Errorf("stock cannot go below zero. Current: %d", prod.StockQuantity)
		}

		movement := StockMovement{
			ProductID:        prod.ID,
			Reason:           reason,
			Quantity:         req.Quantity,
			PreviousQuantity: prod.StockQuantity,
			NewQuantity:      newQuantity,
			CreatedBy:        updatedBy,
		}

		if err := tx.Model(&prod).Update("stock_quantity", newQuantity).Error; err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}

		prod.StockQuantity = newQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &prod, nil
}

// GetMovements returns the stock movement history for a product
func (s *Service) GetMovements(productID uint) ([]StockMovement, error) {
	var movements []StockMovement
	err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stock movements: %w", err)
	}
	return movements, nil
}

// Pure catalog derivations. These operate on an immutable snapshot of the
// loaded catalog rather than hidden caches.

// Categories returns the distinct non-empty category values in order of
// first appearance
func Categories(products []Product) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// Filter applies the three catalog predicates conjunctively
func Filter(products []Product, filter *CatalogFilter) []Product {
	if filter == nil {
		return products
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	filtered := make([]Product, 0, len(products))

	for _, p := range products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.SKU), query) {
			continue
		}

		if filter.Category != "" && filter.Category != "all" && p.Category != filter.Category {
			continue
		}

		if !matchesStockBucket(&p, filter.StockBucket) {
			continue
		}

		filtered = append(filtered, p)
	}

	return filtered
}

func matchesStockBucket(p *Product, bucket StockBucket) bool {
	switch bucket {
	case StockBucketLow:
		return p.IsLowStock()
	case StockBucketOut:
		return p.IsOutOfStock()
	default:
		return true
	}
}
