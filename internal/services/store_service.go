// internal/services/store_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

// StoreService manages the one-store-per-seller registry. Stores are created
// lazily the first time a seller's store is accessed.
type StoreService struct {
	db *gorm.DB
}

type UpsertStoreRequest struct {
	Name        string `json:"name" validate:"omitempty,max=255"`
	Description string `json:"description"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,phone_local"`
	Address     string `json:"address" validate:"omitempty,max=512"`
	LogoURL     string `json:"logo_url"`
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

// GetOrCreate returns the seller's store, creating it with defaults when it
// does not exist yet.
func (s *StoreService) GetOrCreate(sellerID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := s.db.First(&store, "seller_id = ?", sellerID).Error
	if err == nil {
		return &store, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	store = models.Store{
		SellerID:    sellerID,
		Name:        "My Store",
		Description: "Welcome to my store",
	}

	if err := s.db.Create(&store).Error; err != nil {
		// A concurrent first access can win the insert; re-read in that case.
		var existing models.Store
		if readErr := s.db.First(&existing, "seller_id = ?", sellerID).Error; readErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return &store, nil
}

// Upsert applies the request onto the seller's store, creating it first when
// needed. Empty fields keep their current (or default) values.
func (s *StoreService) Upsert(sellerID uuid.UUID, req *UpsertStoreRequest) (*models.Store, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	store, err := s.GetOrCreate(sellerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.LogoURL != "" {
		updates["logo_url"] = req.LogoURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(store).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update store: %w", err)
		}
	}

	return store, nil
}

func (s *StoreService) GetByID(id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("store not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &store, nil
}
