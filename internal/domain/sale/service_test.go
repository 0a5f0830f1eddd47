package sale

import (
	"testing"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/cart"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutCart(t *testing.T) *cart.Cart {
	t.Helper()

	coffee := &product.Product{ID: 10, SKU: "GROC-004", Name: "Ground Coffee 250g", Price: 899, StockQuantity: 8}
	bananas := &product.Product{ID: 11, SKU: "GROC-003", Name: "Bananas 1kg", Price: 189, StockQuantity: 60}

	c := cart.NewCart(3)
	c.Add(coffee)
	c.Add(coffee)
	c.Add(bananas)
	return c
}

func TestBuildSaleCopiesCartLines(t *testing.T) {
	c := checkoutCart(t)

	sl, decrements := BuildSale(c, 3, PaymentMethodCash)

	require.Len(t, sl.Items, 2)
	assert.Equal(t, uint(3), sl.CashierID)
	assert.Equal(t, PaymentMethodCash, sl.PaymentMethod)
	assert.Equal(t, SaleStatusCompleted, sl.Status)

	assert.Equal(t, uint(10), sl.Items[0].ProductID)
	assert.Equal(t, "GROC-004", sl.Items[0].SKU)
	assert.Equal(t, 2, sl.Items[0].Quantity)
	assert.Equal(t, int64(899), sl.Items[0].UnitPrice)
	assert.Equal(t, int64(1798), sl.Items[0].Subtotal)

	assert.Equal(t, uint(11), sl.Items[1].ProductID)
	assert.Equal(t, 1, sl.Items[1].Quantity)
	assert.Equal(t, int64(189), sl.Items[1].Subtotal)

	require.Len(t, decrements, 2)
	assert.Equal(t, StockDecrement{ProductID: 10, Quantity: 2}, decrements[0])
	assert.Equal(t, StockDecrement{ProductID: 11, Quantity: 1}, decrements[1])
}

// TestBuildSaleTotalMatchesCartTotal verifies the committed total is exactly
// the cart total at commit time
func TestBuildSaleTotalMatchesCartTotal(t *testing.T) {
	c := checkoutCart(t)

	sl, _ := BuildSale(c, 3, PaymentMethodCard)

	assert.Equal(t, c.Total(), sl.TotalAmount)
	assert.Equal(t, int64(2*899+189), sl.TotalAmount)

	var sum int64
	for _, item := range sl.Items {
		sum += item.Subtotal
	}
	assert.Equal(t, sum, sl.TotalAmount)
}

// TestBuildSalePricesAreFrozen verifies that a catalog price change after
// the cart was built does not leak into the sale record
func TestBuildSalePricesAreFrozen(t *testing.T) {
	coffee := &product.Product{ID: 10, SKU: "GROC-004", Name: "Ground Coffee 250g", Price: 899}

	c := cart.NewCart(3)
	c.Add(coffee)

	coffee.Price = 1299

	sl, _ := BuildSale(c, 3, PaymentMethodCash)
	assert.Equal(t, int64(899), sl.Items[0].UnitPrice)
	assert.Equal(t, int64(899), sl.TotalAmount)
}

func TestGenerateReceiptNumberFormat(t *testing.T) {
	sl := &Sale{ID: 42}
	got := sl.GenerateReceiptNumber()

	assert.Regexp(t, `^RCP-\d{8}-00042$`, got)
}

func TestSaleListRequestNormalizeClampsPagination(t *testing.T) {
	// Form defaults only kick in when the parameter is missing; an
	// explicit limit=0 would otherwise divide by zero in the page math
	req := &SaleListRequest{Page: 0, Limit: 0}
	req.normalize()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	req = &SaleListRequest{Page: -2, Limit: -50}
	req.normalize()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	req = &SaleListRequest{Page: 4, Limit: 500}
	req.normalize()
	assert.Equal(t, 4, req.Page)
	assert.Equal(t, 100, req.Limit)
}

func TestSaleListRequestNormalizeKeepsValidValues(t *testing.T) {
	req := &SaleListRequest{Page: 3, Limit: 25}
	req.normalize()

	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 25, req.Limit)
}
