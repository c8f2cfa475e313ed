// internal/services/cart_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarhq/bazaar-backend/internal/models"
)

func TestCartAddRespectsStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)
	product := createTestProduct(t, db, store.ID, &seller.ID, 5)

	userID := uuid.NewString()

	item, err := svc.Add(userID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	// Incrementing past the stock ceiling is rejected; the row is untouched.
	_, err = svc.Add(userID, product.ID, 3)
	require.EqualError(t, err, "Requested quantity exceeds available stock")

	view, err := svc.List(userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)

	// Topping up within stock merges into the same row.
	item, err = svc.Add(userID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	view, err = svc.List(userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
}

func TestCartAddRejectsOverstockAndBadQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)
	product := createTestProduct(t, db, store.ID, &seller.ID, 2)

	userID := uuid.NewString()

	_, err := svc.Add(userID, product.ID, 3)
	require.EqualError(t, err, "Requested quantity exceeds available stock")

	_, err = svc.Add(userID, product.ID, 0)
	require.EqualError(t, err, "Quantity must be at least 1")

	_, err = svc.Add(userID, uuid.New(), 1)
	require.EqualError(t, err, "product not found")
}

func TestCartUpdateQuantityRevalidatesStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)
	product := createTestProduct(t, db, store.ID, &seller.ID, 4)

	userID := uuid.NewString()

	_, err := svc.Add(userID, product.ID, 2)
	require.NoError(t, err)

	item, err := svc.UpdateQuantity(userID, product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	_, err = svc.UpdateQuantity(userID, product.ID, 5)
	require.EqualError(t, err, "Requested quantity exceeds available stock")

	_, err = svc.UpdateQuantity(userID, product.ID, 0)
	require.EqualError(t, err, "Quantity must be at least 1")

	_, err = svc.UpdateQuantity(userID, uuid.New(), 1)
	require.EqualError(t, err, "cart item not found")
}

func TestCartUpdateDoesNotSlideExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)
	product := createTestProduct(t, db, store.ID, &seller.ID, 10)

	userID := uuid.NewString()

	created, err := svc.Add(userID, product.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(userID, product.ID, 2)
	require.NoError(t, err)

	var stored models.CartItem
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.WithinDuration(t, created.ExpiresAt, stored.ExpiresAt, time.Second)
}

func TestCartRemoveScopedToPair(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)
	productA := createTestProduct(t, db, store.ID, &seller.ID, 10)
	productB := createTestProduct(t, db, store.ID, &seller.ID, 10)

	alice := uuid.NewString()
	bob := uuid.NewString()

	_, err := svc.Add(alice, productA.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add(alice, productB.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add(bob, productA.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(alice, productA.ID))

	aliceView, err := svc.List(alice)
	require.NoError(t, err)
	require.Len(t, aliceView.Items, 1)
	assert.Equal(t, productB.ID, aliceView.Items[0].ProductID)

	bobView, err := svc.List(bob)
	require.NoError(t, err)
	assert.Len(t, bobView.Items, 1)

	require.EqualError(t, svc.Remove(alice, productA.ID), "cart item not found")
}

func TestCartExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)
	product := createTestProduct(t, db, store.ID, &seller.ID, 10)

	userID := uuid.NewString()

	item, err := svc.Add(userID, product.ID, 1)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(models.CartTTL), item.ExpiresAt, 5*time.Second)

	// Age the row past its window.
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("id = ?", item.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	view, err := svc.List(userID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)

	_, err = svc.UpdateQuantity(userID, product.ID, 2)
	require.EqualError(t, err, "cart item not found")

	// Adding again after expiry starts a fresh row rather than reviving the
	// stale one.
	fresh, err := svc.Add(userID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Quantity)

	svc.sweepExpired()

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCartListComputesTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)

	cheap := createTestProduct(t, db, store.ID, &seller.ID, 10)
	require.NoError(t, db.Model(cheap).Update("price", 2.50).Error)
	dear := createTestProduct(t, db, store.ID, &seller.ID, 10)
	require.NoError(t, db.Model(dear).Update("price", 10.00).Error)

	userID := uuid.NewString()
	_, err := svc.Add(userID, cheap.ID, 3)
	require.NoError(t, err)
	_, err = svc.Add(userID, dear.ID, 1)
	require.NoError(t, err)

	view, err := svc.List(userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.InDelta(t, 17.50, view.Total, 0.001)
}
