package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/medsupply/backend/internal/application/inventory"
)

// parseDateTime parses a datetime string, accepting RFC3339 and bare dates
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// StockHandler handles stock ledger endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// recordedBy resolves the authenticated operator, nil for unattributed calls
func recordedBy(c *gin.Context) *uuid.UUID {
	userID, err := getUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}

// RecordMovement appends one movement to the ledger and applies its stock delta
func (h *StockHandler) RecordMovement(c *gin.Context) {
	var req inventoryapp.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.stockService.RecordMovement(c.Request.Context(), req, recordedBy(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, movement)
}

// RecordBulkMovements applies a batch of movements sequentially and reports
// the per-movement outcome. Succeeded movements stay applied when later ones
// fail.
func (h *StockHandler) RecordBulkMovements(c *gin.Context) {
	var req inventoryapp.BulkMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.stockService.RecordBulkMovements(c.Request.Context(), req, recordedBy(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetProductHistory retrieves the most recent movements for a product
func (h *StockHandler) GetProductHistory(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			h.BadRequest(c, "limit must be an integer between 1 and 500")
			return
		}
		limit = parsed
	}

	movements, err := h.stockService.GetProductHistory(c.Request.Context(), productID, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, movements)
}

// GetMovementReport aggregates movements per product over a date range
func (h *StockHandler) GetMovementReport(c *gin.Context) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		h.BadRequest(c, "start and end are required")
		return
	}

	start, err := parseDateTime(startStr)
	if err != nil {
		h.BadRequest(c, "Invalid start date format")
		return
	}
	end, err := parseDateTime(endStr)
	if err != nil {
		h.BadRequest(c, "Invalid end date format")
		return
	}
	if end.Before(start) {
		h.BadRequest(c, "end must not be before start")
		return
	}

	report, err := h.stockService.GetMovementReport(c.Request.Context(), start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// ListBelowReorderLevel lists active products at or below their reorder level
func (h *StockHandler) ListBelowReorderLevel(c *gin.Context) {
	products, err := h.stockService.ListBelowReorderLevel(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}
