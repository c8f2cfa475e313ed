// internal/services/report_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/internal/models"
)

// ReportService produces the seller-facing aggregate reports. Product
// attribution goes through the ownership union so products reachable only
// via the legacy mapping are counted too.
type ReportService struct {
	db        *gorm.DB
	ownership *OwnershipService
}

type SellerOverview struct {
	ProductCount   int     `json:"product_count"`
	TotalStock     int     `json:"total_stock"`
	InventoryValue float64 `json:"inventory_value"`
	AverageRating  float64 `json:"average_rating"`
}

type SellerPerformance struct {
	ByCategory    map[string]int   `json:"by_category"`
	LowStockCount int              `json:"low_stock_count"`
	OutOfStock    int              `json:"out_of_stock"`
	TopRated      []models.Product `json:"top_rated"`
}

// lowStockThreshold marks products that need restocking attention.
const lowStockThreshold = 5

func NewReportService(db *gorm.DB, ownership *OwnershipService) *ReportService {
	return &ReportService{db: db, ownership: ownership}
}

func (s *ReportService) Overview(sellerID uuid.UUID) (*SellerOverview, error) {
	products, err := s.ownership.SellerProducts(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect seller products: %w", err)
	}

	overview := &SellerOverview{ProductCount: len(products)}

	var ratingSum float64
	var rated int
	for _, p := range products {
		overview.TotalStock += p.Stock
		overview.InventoryValue += p.Price * float64(p.Stock)
		if p.Rating > 0 {
			ratingSum += p.Rating
			rated++
		}
	}

	if rated > 0 {
		overview.AverageRating = ratingSum / float64(rated)
	}

	return overview, nil
}

func (s *ReportService) Performance(sellerID uuid.UUID) (*SellerPerformance, error) {
	products, err := s.ownership.SellerProducts(sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect seller products: %w", err)
	}

	perf := &SellerPerformance{ByCategory: make(map[string]int)}

	for i := range products {
		p := &products[i]
		perf.ByCategory[string(p.Category)]++
		if p.Stock == 0 {
			perf.OutOfStock++
		} else if p.Stock < lowStockThreshold {
			perf.LowStockCount++
		}
	}

	// Top rated is a small fixed window; enough for the dashboard widget.
	perf.TopRated = topRated(products, 3)

	return perf, nil
}

func topRated(products []models.Product, n int) []models.Product {
	out := make([]models.Product, 0, n)
	used := make(map[uuid.UUID]bool, n)

	for len(out) < n {
		var best *models.Product
		for i := range products {
			p := &products[i]
			if used[p.ID] {
				continue
			}
			if best == nil || p.Rating > best.Rating {
				best = p
			}
		}
		if best == nil {
			break
		}
		used[best.ID] = true
		out = append(out, *best)
	}

	return out
}
