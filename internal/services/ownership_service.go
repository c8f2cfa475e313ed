// internal/services/ownership_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/internal/metrics"
	"github.com/bazaarhq/bazaar-backend/internal/models"
)

// OwnershipService reconciles the two historical sources of seller/product
// ownership: the legacy mapping table and the direct seller reference on the
// product row.
type OwnershipService struct {
	db *gorm.DB
}

// ErrMappingExists reports a duplicate (seller, product) pair so the handler
// can answer 409 instead of leaking the driver's constraint text.
var ErrMappingExists = errors.New("ownership mapping already exists")

// ReconcileResult summarizes one reconciliation run.
type ReconcileResult struct {
	Mapped     int `json:"mapped"`     // back-filled from the mapping table
	Fallback   int `json:"fallback"`   // assigned to the fallback seller
	Unassigned int `json:"unassigned"` // left without a seller (no fallback found)
	Failed     int `json:"failed"`     // individual update failures, not retried
}

func NewOwnershipService(db *gorm.DB) *OwnershipService {
	return &OwnershipService{db: db}
}

// Assign records a legacy (seller, product) ownership pair. Duplicate pairs
// are rejected with ErrMappingExists; the unique pair index backstops races.
func (s *OwnershipService) Assign(sellerID, productID uuid.UUID) (*models.OwnershipMapping, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing models.OwnershipMapping
	err := s.db.Where("seller_id = ? AND product_id = ?", sellerID, productID).First(&existing).Error
	if err == nil {
		return nil, ErrMappingExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	mapping := &models.OwnershipMapping{
		SellerID:  sellerID,
		ProductID: productID,
	}

	if err := s.db.Create(mapping).Error; err != nil {
		return nil, fmt.Errorf("failed to create ownership mapping: %w", err)
	}

	return mapping, nil
}

// Reconcile back-fills Product.SellerID from the mapping table, then assigns
// any still-unowned products to the first user with the seller role.
//
// The routine is idempotent: it only touches rows whose seller reference is
// unset, so a second run after a complete first run performs no writes, and
// a crash mid-run is safe to resume. There is no atomicity across the batch;
// individual update failures are logged and skipped, never retried.
func (s *OwnershipService) Reconcile() (*ReconcileResult, error) {
	result := &ReconcileResult{}

	// Step 1: product id -> seller id from the mapping records. Iteration is
	// in creation order, so a duplicate product entry resolves last-write-wins.
	var mappings []models.OwnershipMapping
	if err := s.db.Order("created_at asc").Find(&mappings).Error; err != nil {
		return nil, fmt.Errorf("failed to load ownership mappings: %w", err)
	}

	bySeller := make(map[uuid.UUID]uuid.UUID, len(mappings))
	for _, m := range mappings {
		bySeller[m.ProductID] = m.SellerID
	}

	// Step 2: back-fill unset seller references from the mapping.
	var orphans []models.Product
	if err := s.db.Where("seller_id IS NULL").Find(&orphans).Error; err != nil {
		return nil, fmt.Errorf("failed to load unowned products: %w", err)
	}

	for i := range orphans {
		p := &orphans[i]
		sellerID, ok := bySeller[p.ID]
		if !ok {
			continue
		}

		if err := s.db.Model(p).Update("seller_id", sellerID).Error; err != nil {
			logrus.WithError(err).WithField("product_id", p.ID).Warn("Failed to back-fill seller reference")
			result.Failed++
			continue
		}
		result.Mapped++
		metrics.ProductsReconciledTotal.Inc()
	}

	logrus.WithField("mapped", result.Mapped).Info("Ownership back-fill from mapping table complete")

	// Step 3: re-scan and hand the remainder to the fallback seller.
	var remaining []models.Product
	if err := s.db.Where("seller_id IS NULL").Find(&remaining).Error; err != nil {
		return nil, fmt.Errorf("failed to re-scan unowned products: %w", err)
	}

	if len(remaining) == 0 {
		return result, nil
	}

	var fallback models.User
	err := s.db.Where("role = ?", models.RoleSeller).Order("created_at asc").First(&fallback).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result.Unassigned = len(remaining)
		logrus.WithField("unassigned", result.Unassigned).Warn("No fallback seller found; products left unassigned")
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up fallback seller: %w", err)
	}

	for i := range remaining {
		p := &remaining[i]
		if err := s.db.Model(p).Update("seller_id", fallback.ID).Error; err != nil {
			logrus.WithError(err).WithField("product_id", p.ID).Warn("Failed to assign fallback seller")
			result.Failed++
			continue
		}
		result.Fallback++
		metrics.ProductsReconciledTotal.Inc()
	}

	logrus.WithFields(logrus.Fields{
		"fallback_seller": fallback.ID,
		"assigned":        result.Fallback,
		"failed":          result.Failed,
	}).Info("Fallback ownership assignment complete")

	return result, nil
}

// SellerProducts returns the union of products attributable to the seller:
// rows carrying the direct seller reference plus rows reachable only through
// the legacy mapping table, deduplicated by product id. Order across the
// merge is not guaranteed; callers needing a stable order re-sort.
func (s *OwnershipService) SellerProducts(sellerID uuid.UUID) ([]models.Product, error) {
	var direct []models.Product
	if err := s.db.Where("seller_id = ?", sellerID).Find(&direct).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch direct-owned products: %w", err)
	}

	var mappedIDs []uuid.UUID
	if err := s.db.Model(&models.OwnershipMapping{}).
		Where("seller_id = ?", sellerID).
		Pluck("product_id", &mappedIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch ownership mappings: %w", err)
	}

	var mapped []models.Product
	if len(mappedIDs) > 0 {
		if err := s.db.Where("id IN ?", mappedIDs).Find(&mapped).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch mapping-owned products: %w", err)
		}
	}

	seen := make(map[uuid.UUID]bool, len(direct)+len(mapped))
	merged := make([]models.Product, 0, len(direct)+len(mapped))
	for _, p := range direct {
		if !seen[p.ID] {
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}
	for _, p := range mapped {
		if !seen[p.ID] {
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}

	return merged, nil
}
