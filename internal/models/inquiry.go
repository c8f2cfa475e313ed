// internal/models/inquiry.go
package models

import "github.com/google/uuid"

type Inquiry struct {
	BaseModel
	Name    string        `json:"name" gorm:"size:100;not null"`
	Email   string        `json:"email" gorm:"size:255;not null"`
	Phone   string        `json:"phone" gorm:"size:20;not null"`
	Message string        `json:"message" gorm:"type:text;not null"`
	Status  InquiryStatus `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
	// ForwardedTo records every role this inquiry was forwarded to, in order.
	ForwardedTo StringList `json:"forwarded_to" gorm:"type:text"`

	Replies []InquiryReply `json:"replies,omitempty" gorm:"foreignKey:InquiryID"`
}

// Terminal reports whether the inquiry's primary status can no longer change.
func (i *Inquiry) Terminal() bool {
	return i.Status == InquiryStatusResolved || i.Status == InquiryStatusRejected
}

type InquiryReply struct {
	BaseModel
	InquiryID uuid.UUID `json:"inquiry_id" gorm:"type:uuid;not null;index"`
	Responder string    `json:"responder" gorm:"size:100"`
	Message   string    `json:"message" gorm:"type:text;not null"`
}

// RoleRequest snapshots an inquiry's fields at the moment it is forwarded to
// the admin role. Its own status lifecycle is independent of the inquiry's,
// except that approve/reject back-propagate a status change.
type RoleRequest struct {
	BaseModel
	InquiryID uuid.UUID         `json:"inquiry_id" gorm:"type:uuid;not null;index"`
	Name      string            `json:"name" gorm:"size:100"`
	Email     string            `json:"email" gorm:"size:255"`
	Phone     string            `json:"phone" gorm:"size:20"`
	Message   string            `json:"message" gorm:"type:text"`
	Status    RoleRequestStatus `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
}
