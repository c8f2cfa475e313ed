// internal/services/ownership_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarhq/bazaar-backend/internal/models"
)

func TestReconcileBackfillsFromMappings(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnershipService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)

	orphan := createTestProduct(t, db, store.ID, nil, 5)
	owned := createTestProduct(t, db, store.ID, &seller.ID, 5)

	_, err := svc.Assign(seller.ID, orphan.ID)
	require.NoError(t, err)

	result, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Mapped)
	assert.Zero(t, result.Fallback)
	assert.Zero(t, result.Unassigned)
	assert.Zero(t, result.Failed)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", orphan.ID).Error)
	require.NotNil(t, reloaded.SellerID)
	assert.Equal(t, seller.ID, *reloaded.SellerID)

	// The already-owned row is untouched. A fresh destination keeps GORM from
	// folding the previous row's primary key into the query.
	var untouched models.Product
	require.NoError(t, db.First(&untouched, "id = ?", owned.ID).Error)
	require.NotNil(t, untouched.SellerID)
	assert.Equal(t, seller.ID, *untouched.SellerID)
}

func TestReconcileDuplicateMappingLastWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnershipService(db)

	early := createTestUser(t, db, "early@example.com", models.RoleSeller)
	late := createTestUser(t, db, "late@example.com", models.RoleSeller)
	store := createTestStore(t, db, early.ID)
	orphan := createTestProduct(t, db, store.ID, nil, 5)

	_, err := svc.Assign(early.ID, orphan.ID)
	require.NoError(t, err)
	_, err = svc.Assign(late.ID, orphan.ID)
	require.NoError(t, err)

	// Pin the ordering so the test is immune to timestamp ties.
	require.NoError(t, db.Model(&models.OwnershipMapping{}).
		Where("seller_id = ?", early.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	result, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Mapped)
	assert.Zero(t, result.Fallback)

	// The most recent mapping wins when a product appears twice.
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", orphan.ID).Error)
	require.NotNil(t, reloaded.SellerID)
	assert.Equal(t, late.ID, *reloaded.SellerID)
}

func TestReconcileIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnershipService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)
	orphan := createTestProduct(t, db, store.ID, nil, 5)

	_, err := svc.Assign(seller.ID, orphan.ID)
	require.NoError(t, err)

	first, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Mapped)

	// A second run finds nothing left to touch.
	second, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Zero(t, second.Mapped)
	assert.Zero(t, second.Fallback)
	assert.Zero(t, second.Unassigned)
	assert.Zero(t, second.Failed)
}

func TestReconcileFallbackSeller(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnershipService(db)

	// Earliest-created seller wins the fallback role.
	first := createTestUser(t, db, "first@example.com", models.RoleSeller)
	createTestUser(t, db, "second@example.com", models.RoleSeller)
	createTestUser(t, db, "buyer@example.com", models.RoleBuyer)

	store := createTestStore(t, db, first.ID)
	unmapped := createTestProduct(t, db, store.ID, nil, 5)

	result, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Zero(t, result.Mapped)
	assert.Equal(t, 1, result.Fallback)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", unmapped.ID).Error)
	require.NotNil(t, reloaded.SellerID)
	assert.Equal(t, first.ID, *reloaded.SellerID)
}

func TestReconcileNoFallbackLeavesUnassigned(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnershipService(db)

	buyer := createTestUser(t, db, "buyer@example.com", models.RoleBuyer)
	store := createTestStore(t, db, buyer.ID)
	createTestProduct(t, db, store.ID, nil, 5)
	createTestProduct(t, db, store.ID, nil, 5)

	result, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Unassigned)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Where("seller_id IS NULL").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSellerProductsUnionsBothSources(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnershipService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	other := createTestUser(t, db, "other@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)

	direct := createTestProduct(t, db, store.ID, &seller.ID, 5)
	mappedOnly := createTestProduct(t, db, store.ID, nil, 5)
	both := createTestProduct(t, db, store.ID, &seller.ID, 5)
	foreign := createTestProduct(t, db, store.ID, &other.ID, 5)

	_, err := svc.Assign(seller.ID, mappedOnly.ID)
	require.NoError(t, err)
	// A product reachable through both sources must appear once.
	_, err = svc.Assign(seller.ID, both.ID)
	require.NoError(t, err)

	products, err := svc.SellerProducts(seller.ID)
	require.NoError(t, err)
	require.Len(t, products, 3)

	ids := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		ids[p.ID] = true
	}
	assert.True(t, ids[direct.ID])
	assert.True(t, ids[mappedOnly.ID])
	assert.True(t, ids[both.ID])
	assert.False(t, ids[foreign.ID])
}

func TestAssignRequiresExistingProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnershipService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)

	_, err := svc.Assign(seller.ID, uuid.New())
	require.EqualError(t, err, "product not found")
}

func TestAssignDuplicatePairConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnershipService(db)

	seller := createTestUser(t, db, "seller@example.com", models.RoleSeller)
	store := createTestStore(t, db, seller.ID)
	product := createTestProduct(t, db, store.ID, nil, 5)

	_, err := svc.Assign(seller.ID, product.ID)
	require.NoError(t, err)

	_, err = svc.Assign(seller.ID, product.ID)
	require.ErrorIs(t, err, ErrMappingExists)

	// The same product under a different seller is still a valid pair.
	other := createTestUser(t, db, "other@example.com", models.RoleSeller)
	_, err = svc.Assign(other.ID, product.ID)
	require.NoError(t, err)
}
