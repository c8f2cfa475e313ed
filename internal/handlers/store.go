// internal/handlers/store.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/bazaar-backend/internal/middleware"
	"github.com/bazaarhq/bazaar-backend/internal/services"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

type StoreHandler struct {
	storeService *services.StoreService
}

func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// GET /stores/:id
func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	store, err := h.storeService.GetByID(id)
	if err != nil {
		utils.NotFoundResponse(c, "Store")
		return
	}

	utils.SuccessResponse(c, gin.H{"store": store})
}

// GET /sellers/me/store
func (h *StoreHandler) GetMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	store, err := h.storeService.GetOrCreate(user.ID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"store": store})
}

// PUT /sellers/me/store
func (h *StoreHandler) UpdateMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpsertStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	store, err := h.storeService.Upsert(user.ID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"store": store})
}
