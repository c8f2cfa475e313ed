// internal/models/cart.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartTTL is the fixed expiry window counted from row creation. Reads and
// updates do not slide it.
const CartTTL = 2 * time.Hour

// CartItem deliberately skips soft deletes: removed or swept rows must free
// the unique (user, product) slot immediately.
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id" gorm:"size:64;not null;uniqueIndex:idx_cart_user_product;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

func (ci *CartItem) Expired(now time.Time) bool {
	return !ci.ExpiresAt.After(now)
}
