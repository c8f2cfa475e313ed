// internal/models/product.go
package models

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       float64         `json:"price" gorm:"not null"`
	Category    ProductCategory `json:"category" gorm:"type:varchar(30);index"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	Images      StringList      `json:"images" gorm:"type:text"`
	Rating      float64         `json:"rating" gorm:"default:0"`
	ReviewCount int             `json:"review_count" gorm:"default:0"`
	StoreID     uuid.UUID       `json:"store_id" gorm:"type:uuid;not null;index"`
	// SellerID is optional; unset rows are back-filled from the legacy
	// ownership mapping by the reconciliation routine.
	SellerID *uuid.UUID `json:"seller_id,omitempty" gorm:"type:uuid;index"`

	Store  *Store `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Seller *User  `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
}

type Store struct {
	BaseModel
	SellerID    uuid.UUID `json:"seller_id" gorm:"type:uuid;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Email       string    `json:"email" gorm:"size:255"`
	Phone       string    `json:"phone" gorm:"size:20"`
	Address     string    `json:"address" gorm:"size:512"`
	LogoURL     string    `json:"logo_url,omitempty" gorm:"size:512"`
}

// OwnershipMapping is the legacy seller-to-product join table, superseded by
// Product.SellerID. Kept for the dual-read seller query and as the input to
// the reconciliation routine.
type OwnershipMapping struct {
	BaseModel
	SellerID  uuid.UUID `json:"seller_id" gorm:"type:uuid;not null;uniqueIndex:idx_ownership_pair;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_ownership_pair"`
}
