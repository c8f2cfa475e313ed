// internal/services/promotion_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

func TestSubmitSellerItemValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromotionService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)

	_, err := svc.SubmitSellerItem(seller.ID, &SubmitSellerItemRequest{
		Name:     "Handmade Mug",
		Price:    0,
		Category: models.CategoryHome,
	}, "")
	require.EqualError(t, err, "Price must be greater than 0")

	_, err = svc.SubmitSellerItem(seller.ID, &SubmitSellerItemRequest{
		Name:     "Handmade Mug",
		Price:    12.50,
		Category: "pottery",
	}, "")
	require.EqualError(t, err, "Unknown product category")

	item, err := svc.SubmitSellerItem(seller.ID, &SubmitSellerItemRequest{
		Name:     "Handmade Mug",
		Price:    12.50,
		Category: models.CategoryHome,
	}, "https://cdn.example.com/mug.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.SellerItemStatusPending, item.Status)
	assert.Equal(t, seller.ID, item.SellerID)
}

func TestReviewSellerItemOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromotionService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)

	item, err := svc.SubmitSellerItem(seller.ID, &SubmitSellerItemRequest{
		Name:     "Handmade Mug",
		Price:    12.50,
		Category: models.CategoryHome,
	}, "")
	require.NoError(t, err)

	reviewed, err := svc.ReviewSellerItem(item.ID, false, "blurry photo")
	require.NoError(t, err)
	assert.Equal(t, models.SellerItemStatusRejected, reviewed.Status)
	assert.Equal(t, "blurry photo", reviewed.ReviewNote)

	// A settled submission cannot be re-reviewed.
	_, err = svc.ReviewSellerItem(item.ID, true, "")
	require.Error(t, err)
}

func TestListSellerItemsScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromotionService(db)

	alice := createTestUser(t, db, "alice@example.com", models.RoleSeller)
	bob := createTestUser(t, db, "bob@example.com", models.RoleSeller)

	_, err := svc.SubmitSellerItem(alice.ID, &SubmitSellerItemRequest{
		Name: "Mug", Price: 10, Category: models.CategoryHome,
	}, "")
	require.NoError(t, err)
	_, err = svc.SubmitSellerItem(bob.ID, &SubmitSellerItemRequest{
		Name: "Plate", Price: 15, Category: models.CategoryHome,
	}, "")
	require.NoError(t, err)

	params := utils.PaginationParams{Page: 1, Limit: 20}

	mine, total, err := svc.ListSellerItems(params, &alice.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mug", mine[0].Name)

	all, total, err := svc.ListSellerItems(params, nil, models.SellerItemStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestPromotionCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromotionService(db)

	promo, err := svc.CreatePromotion(&PromotionRequest{
		Title:           "Summer Sale",
		DiscountPercent: 20,
	})
	require.NoError(t, err)
	assert.True(t, promo.Active)

	inactive := false
	updated, err := svc.UpdatePromotion(promo.ID, &PromotionRequest{
		Title:  "Summer Sale",
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	params := utils.PaginationParams{Page: 1, Limit: 20}
	_, total, err := svc.ListPromotions(params, true)
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, svc.DeletePromotion(promo.ID))
	_, err = svc.GetPromotion(promo.ID)
	require.Error(t, err)
}
