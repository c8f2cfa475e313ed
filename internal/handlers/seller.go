// internal/handlers/seller.go
package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/bazaar-backend/internal/middleware"
	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/services"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

type SellerHandler struct {
	ownershipService *services.OwnershipService
	reportService    *services.ReportService
}

func NewSellerHandler(ownershipService *services.OwnershipService, reportService *services.ReportService) *SellerHandler {
	return &SellerHandler{
		ownershipService: ownershipService,
		reportService:    reportService,
	}
}

// GET /sellers/me/products
func (h *SellerHandler) MyProducts(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	products, err := h.ownershipService.SellerProducts(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	sortByNewest(products)
	utils.SuccessResponse(c, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// The ownership union carries no order guarantee across its two sources.
func sortByNewest(products []models.Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}

// GET /sellers/me/reports/overview
func (h *SellerHandler) Overview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	overview, err := h.reportService.Overview(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"overview": overview})
}

// GET /sellers/me/reports/performance
func (h *SellerHandler) Performance(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	performance, err := h.reportService.Performance(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"performance": performance})
}

// GET /sellers/:id/products
func (h *SellerHandler) ProductsBySeller(c *gin.Context) {
	sellerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	products, err := h.ownershipService.SellerProducts(sellerID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	sortByNewest(products)
	utils.SuccessResponse(c, gin.H{
		"products": products,
		"count":    len(products),
	})
}
