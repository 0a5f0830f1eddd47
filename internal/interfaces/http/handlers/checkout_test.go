// internal/interfaces/http/handlers/checkout_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/sale"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutContext(t *testing.T, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if body == "" {
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/checkout", http.NoBody)
	} else {
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	}
	return c
}

// An empty body is a valid checkout; payment method then defaults inside
// the sale service.
func TestBindCheckoutRequestEmptyBody(t *testing.T) {
	c := checkoutContext(t, "")

	req, err := bindCheckoutRequest(c)
	require.NoError(t, err)
	assert.Empty(t, req.PaymentMethod)
}

func TestBindCheckoutRequestEmptyObject(t *testing.T) {
	c := checkoutContext(t, "{}")

	req, err := bindCheckoutRequest(c)
	require.NoError(t, err)
	assert.Empty(t, req.PaymentMethod)
}

func TestBindCheckoutRequestWithPaymentMethod(t *testing.T) {
	c := checkoutContext(t, `{"payment_method":"card"}`)

	req, err := bindCheckoutRequest(c)
	require.NoError(t, err)
	assert.Equal(t, sale.PaymentMethodCard, req.PaymentMethod)
}

func TestBindCheckoutRequestMalformedJSON(t *testing.T) {
	c := checkoutContext(t, `{"payment_method":`)

	_, err := bindCheckoutRequest(c)
	assert.Error(t, err)
}
