// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

func TestUserCreateDefaultsAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Create(&CreateUserRequest{
		Name:     "Jess Doe",
		Email:    "jess@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)

	_, err = svc.Create(&CreateUserRequest{
		Name:     "Jess Clone",
		Email:    "jess@example.com",
		Password: "secret123",
	})
	require.EqualError(t, err, "user with this email already exists")

	_, err = svc.Create(&CreateUserRequest{
		Name:     "Odd Role",
		Email:    "odd@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	require.Error(t, err)
}

func TestUserRoleNormalizedLowercase(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user := createTestUser(t, db, "cm@example.com", models.RoleBuyer)

	updated, err := svc.UpdateRole(user.ID, "Content-Manager")
	require.NoError(t, err)
	assert.Equal(t, models.RoleContentManager, updated.Role)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, models.RoleContentManager, stored.Role)
}

func TestUserChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user := createTestUser(t, db, "jess@example.com", models.RoleBuyer)

	err := svc.ChangePassword(user.ID, &ChangePasswordRequest{
		CurrentPassword: "wrong-pass",
		NewPassword:     "brand-new-pass",
	})
	require.EqualError(t, err, "current password is incorrect")

	err = svc.ChangePassword(user.ID, &ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "brand-new-pass",
	})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.NoError(t, stored.CheckPassword("brand-new-pass"))
	assert.Error(t, stored.CheckPassword("secret123"))
}

func TestUserCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	createTestUser(t, db, "b1@example.com", models.RoleBuyer)
	createTestUser(t, db, "b2@example.com", models.RoleBuyer)
	createTestUser(t, db, "s1@example.com", models.RoleSeller)
	createTestUser(t, db, "a1@example.com", models.RoleAdmin)

	counts, err := svc.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Total)
	assert.Equal(t, int64(2), counts.ByRole["buyer"])
	assert.Equal(t, int64(1), counts.ByRole["seller"])
	assert.Equal(t, int64(1), counts.ByRole["admin"])
}

func TestUserListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	createTestUser(t, db, "b1@example.com", models.RoleBuyer)
	seller := createTestUser(t, db, "s1@example.com", models.RoleSeller)
	require.NoError(t, db.Model(seller).Update("status", models.UserStatusInactive).Error)

	params := utils.PaginationParams{Page: 1, Limit: 20}

	sellers, total, err := svc.List(params, models.RoleSeller, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, sellers, 1)
	assert.Equal(t, "s1@example.com", sellers[0].Email)

	inactive, total, err := svc.List(params, "", models.UserStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, inactive, 1)
}
