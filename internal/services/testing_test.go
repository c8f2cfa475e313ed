// internal/services/testing_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bazaarhq/bazaar-backend/internal/database"
	"github.com/bazaarhq/bazaar-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Name:   "Test User",
		Email:  email,
		Role:   role,
		Status: models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestStore(t *testing.T, db *gorm.DB, sellerID uuid.UUID) *models.Store {
	t.Helper()

	store := &models.Store{
		SellerID: sellerID,
		Name:     "Test Store",
	}
	require.NoError(t, db.Create(store).Error)
	return store
}

func createTestProduct(t *testing.T, db *gorm.DB, storeID uuid.UUID, sellerID *uuid.UUID, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:     "Test Product",
		Price:    19.99,
		Category: models.CategoryElectronics,
		Stock:    stock,
		Images:   models.StringList{"https://cdn.example.com/p.jpg"},
		StoreID:  storeID,
		SellerID: sellerID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
