package handler

import (
	"net/http"
	"strings"

	"attendance-tracker/internal/repository"
	"attendance-tracker/pkg/token"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// RequireAuth verifies the bearer token and attaches its claims to the
// request context.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireActiveUser re-fetches the caller's account. A deleted account is
// reported as gone, an inactive one as forbidden. The token alone is not
// proof the account still exists.
func RequireActiveUser(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			c.Next()
			return
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		if user == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message": "Your account has been deleted. Please contact administrator.",
			})
			return
		}

		if !user.IsActive() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Your account is inactive. Please contact administrator for add you again.",
			})
			return
		}

		c.Next()
	}
}

// ClaimsFrom returns the verified token claims set by RequireAuth
func ClaimsFrom(c *gin.Context) *token.Claims {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}

	claims, ok := value.(*token.Claims)
	if !ok {
		return nil
	}

	return claims
}
