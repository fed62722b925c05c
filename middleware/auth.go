package middleware

import (
	"net/http"
	"strings"
	"time"

	"dishdash-backend/models"
	"dishdash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the bearer token and loads the current user. The
// user must still exist, be active, and not have changed their password after
// the token was issued.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User belonging to this token no longer exists"})
			c.Abort()
			return
		}

		if !user.Active && c.FullPath() != "/api/v1/profile/reactivate" {
			c.JSON(http.StatusForbidden, gin.H{"error": "User account inactive"})
			c.Abort()
			return
		}

		// Tokens issued before the last password change are no longer valid.
		// The token iat only carries second precision, so the stored stamp is
		// truncated before comparing; a token issued in the same second as the
		// change stays valid.
		if user.PasswordChangedAt != nil && claims.IssuedAt != nil &&
			claims.IssuedAt.Time.Before(user.PasswordChangedAt.Truncate(time.Second)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Password changed recently, please login again"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Set("user", user)
		c.Next()
	}
}

// AllowedTo restricts a route to the given roles.
func AllowedTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to access this resource"})
			c.Abort()
			return
		}

		roleStr, _ := role.(string)
		for _, allowed := range roles {
			if roleStr == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to access this resource"})
		c.Abort()
	}
}
