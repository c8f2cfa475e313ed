// internal/handlers/promotion.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazaarhq/bazaar-backend/internal/middleware"
	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/services"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

type PromotionHandler struct {
	promotionService *services.PromotionService
	storageService   *services.StorageService
}

func NewPromotionHandler(promotionService *services.PromotionService, storageService *services.StorageService) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
		storageService:   storageService,
	}
}

// GET /promotions (public; active_only=true for storefront banners)
func (h *PromotionHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	promotions, total, err := h.promotionService.ListPromotions(params, activeOnly)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(promotions, total, params))
}

// GET /promotions/:id
func (h *PromotionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	promotion, err := h.promotionService.GetPromotion(id)
	if err != nil {
		utils.NotFoundResponse(c, "Promotion")
		return
	}

	utils.SuccessResponse(c, gin.H{"promotion": promotion})
}

// POST /promotions
func (h *PromotionHandler) Create(c *gin.Context) {
	var req services.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	promotion, err := h.promotionService.CreatePromotion(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"promotion": promotion})
}

// PUT /promotions/:id
func (h *PromotionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	promotion, err := h.promotionService.UpdatePromotion(id, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"promotion": promotion})
}

// DELETE /promotions/:id
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.promotionService.DeletePromotion(id); err != nil {
		utils.NotFoundResponse(c, "Promotion")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /seller-items — multipart form: name, price, category, image
func (h *PromotionHandler) SubmitSellerItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid price", nil)
		return
	}

	req := services.SubmitSellerItemRequest{
		Name:     c.PostForm("name"),
		Price:    price,
		Category: models.ProductCategory(c.PostForm("category")),
	}

	var imageURL string
	if header, err := c.FormFile("image"); err == nil {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read uploaded file", err.Error())
			return
		}
		result, err := h.storageService.UploadFile(file, header, services.ImageUploadOptions("seller-items"))
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		imageURL = result.URL
	}

	item, err := h.promotionService.SubmitSellerItem(user.ID, &req, imageURL)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"item": item})
}

// GET /seller-items
func (h *PromotionHandler) ListSellerItems(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	status := models.SellerItemStatus(c.Query("status"))

	// Sellers only see their own submissions.
	var sellerScope *uuid.UUID
	if user.Role == models.RoleSeller {
		sellerScope = &user.ID
	}

	items, total, err := h.promotionService.ListSellerItems(params, sellerScope, status)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(items, total, params))
}

// PUT /seller-items/:id/review
func (h *PromotionHandler) ReviewSellerItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Approve bool   `json:"approve"`
		Note    string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	item, err := h.promotionService.ReviewSellerItem(id, req.Approve, req.Note)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"item": item})
}
