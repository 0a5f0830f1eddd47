// internal/interfaces/http/handlers/sale.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/sale"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/user"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/pkg/receipt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SaleHandler handles sales history and receipt endpoints
type SaleHandler struct {
	saleService    *sale.Service
	userService    *user.Service
	receiptService *receipt.Service
	config         *config.Config
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *SaleHandler {
	return &SaleHandler{
		saleService:    sale.NewService(db, redisClient, cfg),
		userService:    user.NewService(db, cfg),
		receiptService: receipt.NewService(cfg),
		config:         cfg,
	}
}

// GetSales returns the sales history, newest first, with optional
// cashier and date-range filters
func (h *SaleHandler) GetSales(c *gin.Context) {
	var req sale.SaleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	response, err := h.saleService.GetSales(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve sales",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sales retrieved successfully",
		"data":    response,
	})
}

// GetSale returns a single sale with its line items
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sale ID",
		})
		return
	}

	sl, err := h.saleService.GetSale(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale retrieved successfully",
		"data":    sl,
	})
}

// GetSaleByReceipt returns a sale looked up by its printed receipt number
func (h *SaleHandler) GetSaleByReceipt(c *gin.Context) {
	receiptNumber := c.Param("receiptNumber")
	if receiptNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Receipt number is required",
		})
		return
	}

	sl, err := h.saleService.GetSaleByReceiptNumber(receiptNumber)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale retrieved successfully",
		"data":    sl,
	})
}

// DeleteSale removes a sale record from the history (admin only).
// Stock is not restored; use a stock adjustment for that.
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sale ID",
		})
		return
	}

	if err := h.saleService.DeleteSale(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale deleted successfully",
	})
}

// GetReceipt returns the plain-text line-printer rendering of a receipt
func (h *SaleHandler) GetReceipt(c *gin.Context) {
	data, ok := h.buildReceiptData(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, receipt.RenderText(data))
}

// DownloadReceiptPDF streams the PDF rendering of a receipt
func (h *SaleHandler) DownloadReceiptPDF(c *gin.Context) {
	data, ok := h.buildReceiptData(c)
	if !ok {
		return
	}

	pdfBuffer, err := h.receiptService.RenderPDF(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt PDF",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", data.ReceiptNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}

// buildReceiptData loads the sale and cashier for a receipt request,
// writing the error response itself on failure
func (h *SaleHandler) buildReceiptData(c *gin.Context) (*receipt.Data, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sale ID",
		})
		return nil, false
	}

	sl, err := h.saleService.GetSale(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return nil, false
	}

	cashierName := "Cashier"
	if cashier, err := h.userService.GetProfile(sl.CashierID); err == nil {
		cashierName = cashier.GetDisplayName()
	}

	return h.receiptService.Build(sl, cashierName), true
}
