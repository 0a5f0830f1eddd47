package cart

import (
	"testing"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milk() *product.Product {
	return &product.Product{ID: 1, SKU: "GROC-001", Name: "Whole Milk 1L", Price: 349, StockQuantity: 48}
}

func bread() *product.Product {
	return &product.Product{ID: 2, SKU: "GROC-002", Name: "Sourdough Bread", Price: 499, StockQuantity: 20}
}

func TestNewCartIsEmpty(t *testing.T) {
	c := NewCart(7)

	assert.Equal(t, uint(7), c.CashierID)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Total())
	assert.Equal(t, 0, c.ItemCount())
}

// TestAddIncrementsExistingLine verifies that adding the same product twice
// produces one line with quantity two, not two lines
func TestAddIncrementsExistingLine(t *testing.T) {
	c := NewCart(1)
	p := milk()

	c.Add(p)
	c.Add(p)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, int64(698), c.Items[0].Subtotal)
	assert.Equal(t, int64(698), c.Total())
	assert.Equal(t, 2, c.ItemCount())
}

func TestAddCapturesUnitPriceAtAddTime(t *testing.T) {
	c := NewCart(1)
	p := milk()
	c.Add(p)

	// A later catalog price change does not touch existing lines
	p.Price = 999
	c.Add(bread())

	assert.Equal(t, int64(349), c.Items[0].UnitPrice)
	assert.Equal(t, int64(349+499), c.Total())
}

func TestAdjustQuantityAppliesDelta(t *testing.T) {
	c := NewCart(1)
	c.Add(milk())

	err := c.AdjustQuantity(1, 3)
	require.NoError(t, err)

	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, int64(4*349), c.Items[0].Subtotal)
}

// TestAdjustQuantityClampsAtOne verifies that a delta that would drop the
// quantity to zero or below leaves the line at quantity one
func TestAdjustQuantityClampsAtOne(t *testing.T) {
	c := NewCart(1)
	c.Add(milk())
	require.NoError(t, c.AdjustQuantity(1, 2)) // quantity 3

	err := c.AdjustQuantity(1, -10)
	require.NoError(t, err)

	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, int64(349), c.Items[0].Subtotal)
}

func TestAdjustQuantityUnknownProduct(t *testing.T) {
	c := NewCart(1)
	c.Add(milk())

	err := c.AdjustQuantity(99, 1)
	assert.Error(t, err)
}

func TestRemoveDeletesLineRegardlessOfQuantity(t *testing.T) {
	c := NewCart(1)
	c.Add(milk())
	c.Add(milk())
	c.Add(bread())

	err := c.Remove(1)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, uint(2), c.Items[0].ProductID)
	assert.Equal(t, int64(499), c.Total())
}

func TestRemoveUnknownProduct(t *testing.T) {
	c := NewCart(1)

	err := c.Remove(42)
	assert.Error(t, err)
}

// TestTotalEqualsSumOfSubtotals verifies the cart invariant: the total is
// always the sum of quantity times unit price across every line
func TestTotalEqualsSumOfSubtotals(t *testing.T) {
	c := NewCart(1)
	c.Add(milk())
	c.Add(bread())
	require.NoError(t, c.AdjustQuantity(1, 4)) // 5 x 349
	require.NoError(t, c.AdjustQuantity(2, 1)) // 2 x 499

	var want int64
	for _, item := range c.Items {
		assert.Equal(t, int64(item.Quantity)*item.UnitPrice, item.Subtotal)
		want += item.Subtotal
	}
	assert.Equal(t, want, c.Total())
	assert.Equal(t, int64(5*349+2*499), c.Total())
}
