// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/product"
)

// CartItem represents one product-and-quantity line in a cart
type CartItem struct {
	ProductID uint      `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"` // Price in cents at time of adding
	Quantity  int       `json:"quantity"`
	Subtotal  int64     `json:"subtotal"` // Always Quantity * UnitPrice
	AddedAt   time.Time `json:"added_at"`
}

// Cart represents a cashier's in-progress sale. It lives in Redis only;
// nothing here is a source of truth.
type Cart struct {
	CashierID uint       `json:"cashier_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for a cashier
func NewCart(cashierID uint) *Cart {
	now := time.Now().UTC()
	return &Cart{
		CashierID: cashierID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Add puts one unit of a product into the cart. If the product is already
// present its quantity goes up by one; the line subtotal is recomputed
// either way.
func (c *Cart) Add(p *product.Product) {
	now := time.Now().UTC()
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity++
			c.Items[i].Subtotal = int64(c.Items[i].Quantity) * c.Items[i].UnitPrice
			c.UpdatedAt = now
			return
		}
	}

	c.Items = append(c.Items, CartItem{
		ProductID: p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		Subtotal:  p.Price,
		AddedAt:   now,
	})
	c.UpdatedAt = now
}

// AdjustQuantity changes a line's quantity by delta, clamped so the quantity
// never drops below one. Removal is a separate operation.
func (c *Cart) AdjustQuantity(productID uint, delta int) error {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}

		newQuantity := c.Items[i].Quantity + delta
		if newQuantity < 1 {
			newQuantity = 1
		}

		c.Items[i].Quantity = newQuantity
		c.Items[i].Subtotal = int64(newQuantity) * c.Items[i].UnitPrice
		c.UpdatedAt = time.Now().UTC()
		return nil
	}
	return fmt.Errorf("item not found in cart")
}

// Remove deletes a line from the cart
func (c *Cart) Remove(productID uint) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("item not found in cart")
}

// Total returns the sum of all line subtotals in cents
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal
	}
	return total
}

// ItemCount returns the total number of units across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
