package receipt

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/sale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() *Data {
	return &Data{
		StoreName:     "Corner Grocery",
		StoreAddress:  "12 Main Street",
		StorePhone:    "+1 555 0100",
		ReceiptNumber: "RCP-20260829-00042",
		CashierName:   "Test Cashier",
		Timestamp:     time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC),
		Items: []sale.SaleItem{
			{Name: "Ground Coffee 250g", Quantity: 2, UnitPrice: 899, Subtotal: 1798},
			{Name: "Bananas 1kg", Quantity: 1, UnitPrice: 189, Subtotal: 189},
		},
		Total:         1987,
		PaymentMethod: "cash",
		Footer:        "Thank you for shopping with us",
	}
}

func TestRenderTextContainsEveryLine(t *testing.T) {
	got := RenderText(sampleData())

	assert.Contains(t, got, "Corner Grocery")
	assert.Contains(t, got, "RCP-20260829-00042")
	assert.Contains(t, got, "Test Cashier")
	assert.Contains(t, got, "2026-08-29 14:30:00")
	assert.Contains(t, got, "Ground Coffee 250g")
	assert.Contains(t, got, "Bananas 1kg")
	assert.Contains(t, got, "$19.87")
	assert.Contains(t, got, "CASH")
	assert.Contains(t, got, "Thank you for shopping with us")
}

// TestRenderTextIsDeterministic verifies the same sale always renders the
// same document
func TestRenderTextIsDeterministic(t *testing.T) {
	data := sampleData()

	first := RenderText(data)
	second := RenderText(data)

	assert.Equal(t, first, second)
}

func TestRenderTextLineItemFormat(t *testing.T) {
	got := RenderText(sampleData())

	assert.Contains(t, got, "Ground Coffee 250g       2x     $17.98")
	assert.Contains(t, got, "Bananas 1kg              1x      $1.89")
}

// TestRenderTextTruncatesLongNames keeps every line within the 40-column
// printer width
func TestRenderTextTruncatesLongNames(t *testing.T) {
	data := sampleData()
	data.Items = []sale.SaleItem{
		{Name: "Extraordinarily Long Product Name That Overflows", Quantity: 1, UnitPrice: 100, Subtotal: 100},
	}
	data.Total = 100

	got := RenderText(data)
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 40, "line exceeds printer width: %q", line)
	}
}

func TestRenderHTMLEscapesAndFormats(t *testing.T) {
	data := sampleData()
	data.Items[0].Name = "Coffee <Dark & Bold>"

	html, err := renderHTML(data)
	require.NoError(t, err)

	assert.Contains(t, html, "Coffee &lt;Dark &amp; Bold&gt;")
	assert.Contains(t, html, "$19.87")
	assert.Contains(t, html, "RCP-20260829-00042")
	assert.NotContains(t, html, "<Dark")
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$0.00", formatCents(0))
	assert.Equal(t, "$0.05", formatCents(5))
	assert.Equal(t, "$3.49", formatCents(349))
	assert.Equal(t, "$1999.99", formatCents(199999))
}

func TestRenderTextTruncatesMultiByteNamesByRune(t *testing.T) {
	data := sampleData()
	data.Items = []sale.SaleItem{
		{Name: "Jalapeño Stuffed Olives 250g", Quantity: 1, UnitPrice: 499, Subtotal: 499},
	}

	got := RenderText(data)

	// A byte-based cut could split the "ñ" and emit invalid UTF-8
	require.True(t, utf8.ValidString(got))
	assert.Contains(t, got, "Jalapeño Stuffed Olive")
	assert.NotContains(t, got, "Olives")

	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), lineWidth)
	}
}

func TestRenderTextCentersMultiByteHeaderByRune(t *testing.T) {
	data := sampleData()
	data.StoreName = "Café São Jorge"

	got := RenderText(data)

	// 14 printed columns centered on a 40-column line leaves 13 leading spaces
	assert.Contains(t, got, strings.Repeat(" ", 13)+"Café São Jorge\n")
}
