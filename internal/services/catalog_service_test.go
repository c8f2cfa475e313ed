// internal/services/catalog_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

func TestCreateProductValidatesPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil, NewStoreService(db))

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)

	req := &CreateProductRequest{
		Name:     "Keyboard",
		Price:    0,
		Category: models.CategoryElectronics,
		Stock:    3,
		Images:   []string{"https://cdn.example.com/kb.jpg"},
	}

	_, err := svc.CreateProduct(seller.ID, req)
	require.EqualError(t, err, "Price must be greater than 0")

	req.Price = -1
	_, err = svc.CreateProduct(seller.ID, req)
	require.EqualError(t, err, "Price must be greater than 0")

	// Fractional prices are fine.
	req.Price = 10.5
	product, err := svc.CreateProduct(seller.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 10.5, product.Price)
	require.NotNil(t, product.SellerID)
	assert.Equal(t, seller.ID, *product.SellerID)
}

func TestCreateProductRejectsBadFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil, NewStoreService(db))

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)

	base := func() *CreateProductRequest {
		return &CreateProductRequest{
			Name:     "Keyboard",
			Price:    49.99,
			Category: models.CategoryElectronics,
			Stock:    3,
			Images:   []string{"https://cdn.example.com/kb.jpg"},
		}
	}

	req := base()
	req.Stock = -1
	_, err := svc.CreateProduct(seller.ID, req)
	require.EqualError(t, err, "Stock cannot be negative")

	req = base()
	req.Category = "gadgets"
	_, err = svc.CreateProduct(seller.ID, req)
	require.EqualError(t, err, "Unknown product category")

	req = base()
	req.Images = nil
	_, err = svc.CreateProduct(seller.ID, req)
	require.EqualError(t, err, "At least one product image is required")
}

func TestCreateProductCreatesStoreLazily(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil, NewStoreService(db))

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)

	var count int64
	require.NoError(t, db.Model(&models.Store{}).Count(&count).Error)
	assert.Zero(t, count)

	product, err := svc.CreateProduct(seller.ID, &CreateProductRequest{
		Name:     "Keyboard",
		Price:    49.99,
		Category: models.CategoryElectronics,
		Stock:    3,
		Images:   []string{"https://cdn.example.com/kb.jpg"},
	})
	require.NoError(t, err)

	var store models.Store
	require.NoError(t, db.First(&store, "seller_id = ?", seller.ID).Error)
	assert.Equal(t, store.ID, product.StoreID)
	assert.Equal(t, "My Store", store.Name)

	// A second product reuses the store.
	second, err := svc.CreateProduct(seller.ID, &CreateProductRequest{
		Name:     "Mouse",
		Price:    19.99,
		Category: models.CategoryElectronics,
		Stock:    5,
		Images:   []string{"https://cdn.example.com/m.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, store.ID, second.StoreID)
}

func TestUpdateProductScopedToSeller(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil, NewStoreService(db))

	owner := createTestUser(t, db, "owner@example.com", models.RoleSeller)
	intruder := createTestUser(t, db, "intruder@example.com", models.RoleSeller)
	store := createTestStore(t, db, owner.ID)
	product := createTestProduct(t, db, store.ID, &owner.ID, 5)

	newPrice := 0.0
	_, err := svc.UpdateProduct(product.ID, &owner.ID, &UpdateProductRequest{Price: &newPrice})
	require.EqualError(t, err, "Price must be greater than 0")

	newPrice = 25.00
	_, err = svc.UpdateProduct(product.ID, &intruder.ID, &UpdateProductRequest{Price: &newPrice})
	require.Error(t, err)

	updated, err := svc.UpdateProduct(product.ID, &owner.ID, &UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 25.00, updated.Price)
	// The returned row is the stored one, reloaded with its store attached.
	require.NotNil(t, updated.Store)
	assert.Equal(t, store.ID, updated.Store.ID)

	// Admin scope (nil seller) can edit anything.
	stock := 9
	updated, err = svc.UpdateProduct(product.ID, nil, &UpdateProductRequest{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Stock)
}

func TestSearchProductsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil, NewStoreService(db))

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)

	cheap := createTestProduct(t, db, store.ID, &seller.ID, 5)
	require.NoError(t, db.Model(cheap).Updates(map[string]interface{}{"name": "Budget Mouse", "price": 9.99}).Error)
	dear := createTestProduct(t, db, store.ID, &seller.ID, 0)
	require.NoError(t, db.Model(dear).Updates(map[string]interface{}{"name": "Pro Keyboard", "price": 129.99}).Error)

	params := ProductSearchParams{PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}}
	all, total, err := svc.SearchProducts(params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	min := 50.0
	params.PriceMin = &min
	expensive, total, err := svc.SearchProducts(params)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Pro Keyboard", expensive[0].Name)

	params.PriceMin = nil
	inStock := true
	params.InStock = &inStock
	available, total, err := svc.SearchProducts(params)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Budget Mouse", available[0].Name)

	params.InStock = nil
	params.Search = "keyboard"
	matched, total, err := svc.SearchProducts(params)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Pro Keyboard", matched[0].Name)
}

func TestGetProductNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil, NewStoreService(db))

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)
	product := createTestProduct(t, db, store.ID, &seller.ID, 5)

	got, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)

	require.NoError(t, svc.DeleteProduct(product.ID, nil))

	_, err = svc.GetProduct(context.Background(), product.ID)
	require.EqualError(t, err, "product not found")
}
