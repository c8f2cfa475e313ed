// internal/services/promotion_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

// PromotionService covers marketing promotions and the seller-item review
// queue (seller-submitted items approved or rejected by a content manager).
type PromotionService struct {
	db *gorm.DB
}

type PromotionRequest struct {
	Title           string     `json:"title" validate:"required,max=255"`
	Description     string     `json:"description"`
	ImageURL        string     `json:"image_url"`
	DiscountPercent float64    `json:"discount_percent" validate:"min=0,max=100"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	Active          *bool      `json:"active"`
}

type SubmitSellerItemRequest struct {
	Name     string                 `json:"name" validate:"required,max=255"`
	Price    float64                `json:"price"`
	Category models.ProductCategory `json:"category" validate:"required"`
}

func NewPromotionService(db *gorm.DB) *PromotionService {
	return &PromotionService{db: db}
}

func (s *PromotionService) CreatePromotion(req *PromotionRequest) (*models.Promotion, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	promo := &models.Promotion{
		Title:           req.Title,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		Active:          true,
	}
	if req.Active != nil {
		promo.Active = *req.Active
	}

	if err := s.db.Create(promo).Error; err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	return promo, nil
}

func (s *PromotionService) GetPromotion(id uuid.UUID) (*models.Promotion, error) {
	var promo models.Promotion
	if err := s.db.First(&promo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("promotion not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &promo, nil
}

func (s *PromotionService) ListPromotions(params utils.PaginationParams, activeOnly bool) ([]models.Promotion, int64, error) {
	query := s.db.Model(&models.Promotion{})

	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count promotions: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "updated_at", "title", "starts_at"})
	query = utils.ApplyPagination(query, params)

	var promos []models.Promotion
	if err := query.Find(&promos).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch promotions: %w", err)
	}

	return promos, total, nil
}

func (s *PromotionService) UpdatePromotion(id uuid.UUID, req *PromotionRequest) (*models.Promotion, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	promo, err := s.GetPromotion(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":            req.Title,
		"description":      req.Description,
		"discount_percent": req.DiscountPercent,
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.StartsAt != nil {
		updates["starts_at"] = req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = req.EndsAt
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := s.db.Model(promo).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}

	return s.GetPromotion(id)
}

func (s *PromotionService) DeletePromotion(id uuid.UUID) error {
	res := s.db.Delete(&models.Promotion{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete promotion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("promotion not found")
	}
	return nil
}

// SubmitSellerItem files a seller item into the pending review queue.
func (s *PromotionService) SubmitSellerItem(sellerID uuid.UUID, req *SubmitSellerItemRequest, imageURL string) (*models.SellerItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Price <= 0 {
		return nil, errors.New("Price must be greater than 0")
	}
	if !req.Category.IsValid() {
		return nil, errors.New("Unknown product category")
	}

	item := &models.SellerItem{
		SellerID: sellerID,
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		ImageURL: imageURL,
		Status:   models.SellerItemStatusPending,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to submit seller item: %w", err)
	}

	return item, nil
}

func (s *PromotionService) ListSellerItems(params utils.PaginationParams, sellerID *uuid.UUID, status models.SellerItemStatus) ([]models.SellerItem, int64, error) {
	query := s.db.Model(&models.SellerItem{})

	if sellerID != nil {
		query = query.Where("seller_id = ?", *sellerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count seller items: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "updated_at", "name", "status"})
	query = utils.ApplyPagination(query, params)

	var items []models.SellerItem
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch seller items: %w", err)
	}

	return items, total, nil
}

// ReviewSellerItem resolves a pending submission.
func (s *PromotionService) ReviewSellerItem(id uuid.UUID, approve bool, note string) (*models.SellerItem, error) {
	var item models.SellerItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("seller item not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if item.Status != models.SellerItemStatusPending {
		return nil, errors.New("seller item already reviewed")
	}

	status := models.SellerItemStatusApproved
	if !approve {
		status = models.SellerItemStatusRejected
	}

	if err := s.db.Model(&item).Updates(map[string]interface{}{
		"status":      status,
		"review_note": note,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to review seller item: %w", err)
	}

	item.Status = status
	item.ReviewNote = note
	return &item, nil
}
