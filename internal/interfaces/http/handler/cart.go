package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartapp "github.com/medsupply/backend/internal/application/cart"
)

// CartHandler handles shopping cart endpoints. All operations are keyed by
// the X-Session-ID header; no authentication is required.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// requireSessionID extracts the session ID or writes a 400 response
func (h *CartHandler) requireSessionID(c *gin.Context) (string, bool) {
	sessionID := getSessionID(c)
	if sessionID == "" {
		h.BadRequest(c, "X-Session-ID header is required")
		return "", false
	}
	return sessionID, true
}

// Get retrieves the session's cart, returning an empty cart for new sessions
func (h *CartHandler) Get(c *gin.Context) {
	sessionID, ok := h.requireSessionID(c)
	if !ok {
		return
	}

	current, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, current)
}

// AddItem adds a product with one or more size lines to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := h.requireSessionID(c)
	if !ok {
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	current, err := h.cartService.AddItem(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, current)
}

// UpdateQuantity sets the quantity of one size line in the cart
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sessionID, ok := h.requireSessionID(c)
	if !ok {
		return
	}

	var req cartapp.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	current, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, current)
}

// RemoveItem removes a product and all its size lines from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := h.requireSessionID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	current, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, current)
}

// Clear empties the session's cart
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID, ok := h.requireSessionID(c)
	if !ok {
		return
	}

	current, err := h.cartService.ClearCart(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, current)
}
