// internal/handlers/admin.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazaarhq/bazaar-backend/internal/services"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

type AdminHandler struct {
	ownershipService *services.OwnershipService
}

func NewAdminHandler(ownershipService *services.OwnershipService) *AdminHandler {
	return &AdminHandler{ownershipService: ownershipService}
}

// POST /admin/ownership/reconcile
func (h *AdminHandler) Reconcile(c *gin.Context) {
	result, err := h.ownershipService.Reconcile()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"result": result})
}

type assignOwnershipRequest struct {
	SellerID  string `json:"seller_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
}

// POST /admin/ownership/assign
func (h *AdminHandler) AssignOwnership(c *gin.Context) {
	var req assignOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid seller ID", nil)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	mapping, err := h.ownershipService.Assign(sellerID, productID)
	if err != nil {
		if errors.Is(err, services.ErrMappingExists) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"mapping": mapping})
}
