// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// IDs are generated application-side so the same models work on both
// postgres and the sqlite test driver.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// StringList is stored as a JSON-encoded text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Enums
type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleBuyer          UserRole = "buyer"
	RoleSeller         UserRole = "seller"
	RoleContentManager UserRole = "content-manager"
	RoleInquiryManager UserRole = "inquiry-manager"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleBuyer, RoleSeller, RoleContentManager, RoleInquiryManager:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

type ProductCategory string

const (
	CategoryElectronics ProductCategory = "electronics"
	CategoryFashion     ProductCategory = "fashion"
	CategoryHome        ProductCategory = "home"
	CategoryBeauty      ProductCategory = "beauty"
	CategorySports      ProductCategory = "sports"
	CategoryBooks       ProductCategory = "books"
	CategoryToys        ProductCategory = "toys"
	CategoryGrocery     ProductCategory = "grocery"
)

func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryElectronics, CategoryFashion, CategoryHome, CategoryBeauty,
		CategorySports, CategoryBooks, CategoryToys, CategoryGrocery:
		return true
	}
	return false
}

type InquiryStatus string

const (
	InquiryStatusPending    InquiryStatus = "Pending"
	InquiryStatusInProgress InquiryStatus = "In Progress"
	InquiryStatusResolved   InquiryStatus = "Resolved"
	InquiryStatusRejected   InquiryStatus = "Rejected"
)

type RoleRequestStatus string

const (
	RoleRequestStatusPending  RoleRequestStatus = "Pending"
	RoleRequestStatusApproved RoleRequestStatus = "Approved"
	RoleRequestStatusRejected RoleRequestStatus = "Rejected"
)

type SellerItemStatus string

const (
	SellerItemStatusPending  SellerItemStatus = "pending"
	SellerItemStatusApproved SellerItemStatus = "approved"
	SellerItemStatusRejected SellerItemStatus = "rejected"
)
