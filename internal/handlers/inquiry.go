// internal/handlers/inquiry.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/services"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

type InquiryHandler struct {
	inquiryService *services.InquiryService
}

func NewInquiryHandler(inquiryService *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// POST /inquiries (public)
func (h *InquiryHandler) Create(c *gin.Context) {
	var req services.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	inquiry, err := h.inquiryService.Create(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"inquiry": inquiry})
}

// GET /inquiries
func (h *InquiryHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.InquiryStatus(c.Query("status"))

	inquiries, total, err := h.inquiryService.List(params, status)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(inquiries, total, params))
}

// GET /inquiries/:id
func (h *InquiryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	inquiry, err := h.inquiryService.Get(id)
	if err != nil {
		utils.NotFoundResponse(c, "Inquiry")
		return
	}

	utils.SuccessResponse(c, gin.H{"inquiry": inquiry})
}

// PUT /inquiries/:id/status
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	inquiry, err := h.inquiryService.UpdateStatus(id, models.InquiryStatus(req.Status))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"inquiry": inquiry})
}

// POST /inquiries/:id/replies
func (h *InquiryHandler) Reply(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	inquiry, err := h.inquiryService.Reply(id, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"inquiry": inquiry})
}

// POST /inquiries/:id/forward
func (h *InquiryHandler) Forward(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	inquiry, err := h.inquiryService.Forward(id, req.Role)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"inquiry": inquiry})
}

// DELETE /inquiries/:id
func (h *InquiryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.inquiryService.Delete(id); err != nil {
		utils.NotFoundResponse(c, "Inquiry")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /role-requests
func (h *InquiryHandler) ListRoleRequests(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.RoleRequestStatus(c.Query("status"))

	requests, total, err := h.inquiryService.ListRoleRequests(params, status)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(requests, total, params))
}

// PUT /role-requests/:id
func (h *InquiryHandler) UpdateRoleRequest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	request, err := h.inquiryService.UpdateRoleRequest(id, models.RoleRequestStatus(req.Status))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"role_request": request})
}
