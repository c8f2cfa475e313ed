// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarhq/bazaar-backend/internal/models"
	"github.com/bazaarhq/bazaar-backend/internal/utils"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired decodes the bearer token and loads the user record, so role
// and status checks always reflect the database rather than stale claims.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			utils.UnauthorizedResponse(c, "Account no longer exists")
			c.Abort()
			return
		}

		if user.Status != models.UserStatusActive {
			utils.ForbiddenResponse(c, "Account is inactive")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("user_email", user.Email)
		c.Set("user_role", string(user.Role))
		c.Set("user", &user)
		c.Next()
	}
}

// RolesRequired allow-lists roles on top of AuthRequired.
func RolesRequired(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, exists := utils.GetUserRoleFromContext(c)
		if !exists || !allowed[models.UserRole(role)] {
			utils.ForbiddenResponse(c, "Access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth populates the user context when a valid token is present but
// never rejects the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.Next()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.Next()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("user_email", user.Email)
		c.Set("user_role", string(user.Role))
		c.Set("user", &user)
		c.Next()
	}
}

// CurrentUser returns the user record loaded by AuthRequired/OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
