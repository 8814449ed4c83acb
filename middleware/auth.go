package middleware

import (
	"errors"
	"net/http"
	"strings"

	userRepo "sevahub/database/repository/user"
	"sevahub/models"
	"sevahub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userContextKey = "user"
	roleContextKey = "role"
)

// JWTAuthMiddleware validates the bearer token and loads the account into the context.
// Disabled accounts are rejected even while their token is still valid.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		account, err := users.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			if !errors.Is(err, userRepo.ErrNotFound) {
				zap.L().Error("Failed to load account for token", zap.String("id", claims.Subject), zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}
		if !account.Active() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account has been disabled"})
			return
		}

		c.Set(userContextKey, account)
		c.Set(roleContextKey, account.Role)
		c.Next()
	}
}

// bearerToken reads the token from the Authorization header, or from the
// access_token query parameter for EventSource clients that cannot set headers.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("access_token")
}

// RequireRole lets through only accounts with one of the given roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		for _, r := range roles {
			if account.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// CurrentUser returns the account loaded by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) (*models.UserProfile, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(*models.UserProfile)
	return account, ok && account != nil
}
