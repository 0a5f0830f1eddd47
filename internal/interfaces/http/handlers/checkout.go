// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/sale"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CheckoutHandler handles the checkout commit endpoint
type CheckoutHandler struct {
	saleService *sale.Service
	config      *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		saleService: sale.NewService(db, redisClient, cfg),
		config:      cfg,
	}
}

// Checkout commits the cashier's cart as a sale. The whole commit is a
// single transaction: sale row, line items, and stock decrements all land
// or none do. Clients retry safely by sending the same Idempotency-Key
// header; a replay returns the already-committed sale instead of writing
// a duplicate.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	cashierID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	req, err := bindCheckoutRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	idempotencyKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if idempotencyKey == "" {
		// Without a client key each request is its own attempt
		idempotencyKey = uuid.New().String()
	}

	committed, err := h.saleService.Checkout(c.Request.Context(), cashierID, idempotencyKey, req)
	if err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "insufficient stock") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Checkout completed successfully",
		"data":    committed,
	})
}

// bindCheckoutRequest parses the optional checkout body. An empty body is
// valid and means "all defaults"; payment method then falls back to cash
// inside the sale service.
func bindCheckoutRequest(c *gin.Context) (*sale.CheckoutRequest, error) {
	var req sale.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return &sale.CheckoutRequest{}, nil
		}
		return nil, err
	}
	return &req, nil
}
