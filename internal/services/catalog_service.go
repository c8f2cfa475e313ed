// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/internal/cache"
	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

// CatalogService owns product records. Seller attribution across the legacy
// ownership mapping lives in OwnershipService.
type CatalogService struct {
	db           *gorm.DB
	cache        *cache.Cache
	storeService *StoreService
}

type CreateProductRequest struct {
	Name        string                 `json:"name" validate:"required,min=2,max=255"`
	Description string                 `json:"description"`
	Price       float64                `json:"price"`
	Category    models.ProductCategory `json:"category" validate:"required"`
	Stock       int                    `json:"stock"`
	Images      []string               `json:"images"`
}

type UpdateProductRequest struct {
	Name        string                  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string                 `json:"description,omitempty"`
	Price       *float64                `json:"price,omitempty"`
	Category    *models.ProductCategory `json:"category,omitempty"`
	Stock       *int                    `json:"stock,omitempty"`
	Images      []string                `json:"images,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	SellerID *uuid.UUID `json:"seller_id,omitempty"`
	StoreID  *uuid.UUID `json:"store_id,omitempty"`
	PriceMin *float64   `json:"price_min,omitempty"`
	PriceMax *float64   `json:"price_max,omitempty"`
	InStock  *bool      `json:"in_stock,omitempty"`
}

func NewCatalogService(db *gorm.DB, c *cache.Cache, storeService *StoreService) *CatalogService {
	return &CatalogService{
		db:           db,
		cache:        c,
		storeService: storeService,
	}
}

func validateProductFields(price float64, stock int, category models.ProductCategory, images []string) error {
	if price <= 0 {
		return errors.New("Price must be greater than 0")
	}
	if stock < 0 {
		return errors.New("Stock cannot be negative")
	}
	if !category.IsValid() {
		return errors.New("Unknown product category")
	}
	if len(images) == 0 {
		return errors.New("At least one product image is required")
	}
	return nil
}

// CreateProduct creates a product under the seller's store, creating the
// store lazily on first access.
func (s *CatalogService) CreateProduct(sellerID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := validateProductFields(req.Price, req.Stock, req.Category, req.Images); err != nil {
		return nil, err
	}

	store, err := s.storeService.GetOrCreate(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve seller store: %w", err)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Images:      models.StringList(req.Images),
		StoreID:     store.ID,
		SellerID:    &sellerID,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidate(product.ID)
	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product

	key := "product:" + id.String()
	if s.cache.Get(ctx, key, &product) {
		return &product, nil
	}

	if err := s.db.Preload("Store").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.cache.Set(ctx, key, &product)
	return &product, nil
}

func (s *CatalogService) UpdateProduct(id uuid.UUID, sellerID *uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// sellerID nil means the caller is a catalog admin.
	if sellerID != nil && (product.SellerID == nil || *product.SellerID != *sellerID) {
		return nil, errors.New("unauthorized to update this product")
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, errors.New("Price must be greater than 0")
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, errors.New("Unknown product category")
		}
		updates["category"] = *req.Category
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, errors.New("Stock cannot be negative")
		}
		updates["stock"] = *req.Stock
	}
	if req.Images != nil {
		if len(req.Images) == 0 {
			return nil, errors.New("At least one product image is required")
		}
		updates["images"] = models.StringList(req.Images)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	s.invalidate(id)

	// Re-read so the caller sees the stored row, not the pre-update copy. A
	// concurrent delete makes the reload fail; surfacing that beats returning
	// stale data as success.
	if err := s.db.Preload("Store").First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) DeleteProduct(id uuid.UUID, sellerID *uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if sellerID != nil && (product.SellerID == nil || *product.SellerID != *sellerID) {
		return errors.New("unauthorized to delete this product")
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.invalidate(id)
	return nil
}

func (s *CatalogService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Store")

	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}

	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if params.InStock != nil && *params.InStock {
		query = query.Where("stock > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "rating", "stock"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// popularLimit is the cached window; callers asking for fewer get a slice.
const popularLimit = 12

func (s *CatalogService) GetPopularProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit < 1 || limit > popularLimit {
		limit = popularLimit
	}

	var products []models.Product
	if !s.cache.Get(ctx, "products:popular", &products) {
		if err := s.db.Where("stock > 0").
			Order("rating DESC, review_count DESC").
			Limit(popularLimit).
			Find(&products).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch popular products: %w", err)
		}
		s.cache.Set(ctx, "products:popular", products)
	}

	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (s *CatalogService) invalidate(id uuid.UUID) {
	s.cache.Delete(context.Background(), "product:"+id.String(), "products:popular")
}
