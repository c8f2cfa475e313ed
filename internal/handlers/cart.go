// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazaarhq/bazaar-backend/internal/services"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

type CartHandler struct {
	cartService    *services.CartService
	paymentService *services.PaymentService
}

func NewCartHandler(cartService *services.CartService, paymentService *services.PaymentService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		paymentService: paymentService,
	}
}

type cartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// GET /cart
func (h *CartHandler) List(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	view, err := h.cartService.List(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, view)
}

// POST /cart/items
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	item, err := h.cartService.Add(userID, productID, req.Quantity)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"item": item})
}

// PUT /cart/items/:id
func (h *CartHandler) Update(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	item, err := h.cartService.UpdateQuantity(userID, productID, req.Quantity)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"item": item})
}

// DELETE /cart/items/:id
func (h *CartHandler) Remove(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.cartService.Remove(userID, productID); err != nil {
		utils.NotFoundResponse(c, "Cart item")
		return
	}

	utils.SuccessResponse(c, gin.H{"removed": true})
}

// POST /cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	checkout, err := h.paymentService.CheckoutCart(userID)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"checkout": checkout})
}
