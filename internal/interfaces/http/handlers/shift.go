// internal/interfaces/http/handlers/shift.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/sale"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/shift"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ShiftHandler handles shift and cash-drawer endpoints
type ShiftHandler struct {
	shiftService *shift.Service
	config       *config.Config
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *ShiftHandler {
	saleService := sale.NewService(db, redisClient, cfg)
	return &ShiftHandler{
		shiftService: shift.NewService(db, cfg, saleService),
		config:       cfg,
	}
}

// StartShift opens a shift with a counted starting cash amount.
// A cashier can hold at most one open shift.
func (h *ShiftHandler) StartShift(c *gin.Context) {
	cashierID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req shift.StartShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sh, err := h.shiftService.Start(cashierID, &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Shift started successfully",
		"data":    sh,
	})
}

// EndShift closes the cashier's open shift, recording the counted ending
// cash and the total of sales committed during the shift window
func (h *ShiftHandler) EndShift(c *gin.Context) {
	cashierID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req shift.EndShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sh, err := h.shiftService.End(cashierID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shift ended successfully",
		"data":    sh,
	})
}

// GetActiveShift returns the cashier's open shift, if any
func (h *ShiftHandler) GetActiveShift(c *gin.Context) {
	cashierID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	sh, err := h.shiftService.Active(cashierID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Active shift retrieved successfully",
		"data":    sh,
	})
}

// GetShift returns a single shift record
func (h *ShiftHandler) GetShift(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid shift ID",
		})
		return
	}

	sh, err := h.shiftService.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shift retrieved successfully",
		"data":    sh,
	})
}

// GetShifts returns the shift history with optional cashier and status
// filters
func (h *ShiftHandler) GetShifts(c *gin.Context) {
	var req shift.ShiftListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	shifts, err := h.shiftService.List(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve shifts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shifts retrieved successfully",
		"data":    shifts,
	})
}

// DeleteShift removes a closed shift record (admin only). Open shifts
// cannot be deleted; they must be ended first.
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid shift ID",
		})
		return
	}

	if err := h.shiftService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shift deleted successfully",
	})
}
