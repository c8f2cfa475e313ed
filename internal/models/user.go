// internal/models/user.go
package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"size:100"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);default:'buyer'"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	AvatarURL    string     `json:"avatar_url,omitempty" gorm:"size:512"`
	GoogleSub    string     `json:"-" gorm:"size:255;index"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

// Roles are normalized to lowercase on every write.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Role = UserRole(strings.ToLower(string(u.Role)))
	return nil
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword runs the constant-time bcrypt comparison.
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
