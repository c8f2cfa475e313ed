// internal/models/promotion.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Promotion struct {
	BaseModel
	Title           string     `json:"title" gorm:"size:255;not null"`
	Description     string     `json:"description" gorm:"type:text"`
	ImageURL        string     `json:"image_url" gorm:"size:512"`
	DiscountPercent float64    `json:"discount_percent"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	Active          bool       `json:"active" gorm:"default:true;index"`
}

// SellerItem is a seller-submitted product proposal that goes through a
// content-manager review before it can be promoted into the catalog.
type SellerItem struct {
	BaseModel
	SellerID   uuid.UUID        `json:"seller_id" gorm:"type:uuid;not null;index"`
	Name       string           `json:"name" gorm:"size:255;not null"`
	Price      float64          `json:"price"`
	Category   ProductCategory  `json:"category" gorm:"type:varchar(30)"`
	ImageURL   string           `json:"image_url" gorm:"size:512"`
	Status     SellerItemStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ReviewNote string           `json:"review_note,omitempty" gorm:"size:512"`
}
