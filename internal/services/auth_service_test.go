// internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"github.com/bazaarhq/bazaar-backend/internal/config"
	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&RegisterRequest{
		Name:     "Jess Doe",
		Email:    "jess@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	// The stored hash never echoes the password back.
	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "jess@example.com").Error)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, stored.CheckPassword("secret123"))

	_, err = svc.Register(&RegisterRequest{
		Name:     "Jess Again",
		Email:    "jess@example.com",
		Password: "secret123",
	})
	require.EqualError(t, err, "user with this email already exists")

	login, err := svc.Login(&LoginRequest{Email: "jess@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotNil(t, login.User.LastLoginAt)

	claims, err := utils.ValidateJWT(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID.String(), claims.UserID)
	assert.Equal(t, "buyer", claims.Role)

	_, err = svc.Login(&LoginRequest{Email: "jess@example.com", Password: "wrong-pass"})
	require.EqualError(t, err, "invalid email or password")

	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.EqualError(t, err, "invalid email or password")
}

func TestRegisterRoleRestrictions(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&RegisterRequest{
		Name:     "Sam Seller",
		Email:    "sam@example.com",
		Password: "secret123",
		Role:     "Seller",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, resp.User.Role)

	_, err = svc.Register(&RegisterRequest{
		Name:     "Eve Admin",
		Email:    "eve@example.com",
		Password: "secret123",
		Role:     models.RoleAdmin,
	})
	require.EqualError(t, err, "invalid role for registration")
}

func TestLoginInactiveAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user := createTestUser(t, db, "frozen@example.com", models.RoleBuyer)
	require.NoError(t, db.Model(user).Update("status", models.UserStatusInactive).Error)

	_, err := svc.Login(&LoginRequest{Email: "frozen@example.com", Password: "secret123"})
	require.EqualError(t, err, "account is inactive")
}

func TestGoogleSignInCreatesBuyer(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	svc.verifyGoogleToken = func(ctx context.Context, credential, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Subject: "google-sub-1",
			Claims: map[string]interface{}{
				"email": "g@example.com",
				"name":  "G User",
			},
		}, nil
	}

	resp, err := svc.GoogleSignIn(context.Background(), &GoogleSignInRequest{Credential: "fake"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleBuyer, resp.User.Role)
	assert.Equal(t, "g@example.com", resp.User.Email)

	// Second sign-in finds the same account rather than creating another.
	again, err := svc.GoogleSignIn(context.Background(), &GoogleSignInRequest{Credential: "fake"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGoogleSignInBackfillsSub(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	existing := createTestUser(t, db, "linked@example.com", models.RoleBuyer)

	svc.verifyGoogleToken = func(ctx context.Context, credential, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Subject: "google-sub-2",
			Claims:  map[string]interface{}{"email": "linked@example.com"},
		}, nil
	}

	resp, err := svc.GoogleSignIn(context.Background(), &GoogleSignInRequest{Credential: "fake"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.User.ID)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", existing.ID).Error)
	assert.Equal(t, "google-sub-2", stored.GoogleSub)
}
