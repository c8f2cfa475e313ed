// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/internal/metrics"
	"github.com/bazaarhq/bazaar-backend/internal/models"
)

// CartService maintains at most one quantity row per (user, product) pair.
// Rows expire a fixed two hours after creation; reads filter expired rows and
// the janitor deletes them. There is no cross-write transaction: the unique
// pair index is the only guard against concurrent inserts.
type CartService struct {
	db *gorm.DB
}

type CartView struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

func (s *CartService) loadProduct(productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *CartService) liveItem(userID string, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ? AND expires_at > ?",
		userID, productID, time.Now()).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &item, nil
}

// Add inserts a new row at the requested quantity or increments an existing
// one, rejecting either when the resulting quantity would exceed stock.
func (s *CartService) Add(userID string, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, errors.New("Quantity must be at least 1")
	}

	product, err := s.loadProduct(productID)
	if err != nil {
		return nil, err
	}

	existing, err := s.liveItem(userID, productID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.Quantity+quantity > product.Stock {
			return nil, errors.New("Requested quantity exceeds available stock")
		}
		if err := s.db.Model(existing).Update("quantity", existing.Quantity+quantity).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		existing.Quantity += quantity
		return existing, nil
	}

	if quantity > product.Stock {
		return nil, errors.New("Requested quantity exceeds available stock")
	}

	// An expired row for the pair may still hold the unique slot until the
	// janitor runs; clear it before the fresh insert.
	if err := s.db.Where("user_id = ? AND product_id = ? AND expires_at <= ?",
		userID, productID, time.Now()).Delete(&models.CartItem{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear expired cart item: %w", err)
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		ExpiresAt: time.Now().Add(models.CartTTL),
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

// UpdateQuantity sets the quantity directly (minimum 1) and re-validates it
// against current stock.
func (s *CartService) UpdateQuantity(userID string, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, errors.New("Quantity must be at least 1")
	}

	item, err := s.liveItem(userID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("cart item not found")
	}

	product, err := s.loadProduct(productID)
	if err != nil {
		return nil, err
	}

	if quantity > product.Stock {
		return nil, errors.New("Requested quantity exceeds available stock")
	}

	// Fixed-window expiry: the update does not slide ExpiresAt.
	if err := s.db.Model(item).Update("quantity", quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	item.Quantity = quantity
	return item, nil
}

// Remove deletes the row scoped to the exact (user, product) pair.
func (s *CartService) Remove(userID string, productID uuid.UUID) error {
	res := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("cart item not found")
	}
	return nil
}

// List returns the user's live cart rows with their products and the
// computed total.
func (s *CartService) List(userID string) (*CartView, error) {
	var items []models.CartItem
	if err := s.db.Preload("Product").
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	view := &CartView{Items: items}
	for _, item := range items {
		if item.Product != nil {
			view.Total += item.Product.Price * float64(item.Quantity)
		}
	}

	return view, nil
}

// sweepExpired deletes rows past their expiry window.
func (s *CartService) sweepExpired() {
	res := s.db.Where("expires_at <= ?", time.Now()).Delete(&models.CartItem{})
	if res.Error != nil {
		logrus.WithError(res.Error).Warn("Cart expiry sweep failed")
		return
	}
	if res.RowsAffected > 0 {
		metrics.CartItemsExpiredTotal.Add(float64(res.RowsAffected))
		logrus.WithField("deleted", res.RowsAffected).Info("Expired cart rows removed")
	}
}

// StartJanitor runs the expiry sweep on a fixed interval until ctx is done.
func (s *CartService) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweepExpired()
			}
		}
	}()
}
