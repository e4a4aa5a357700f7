package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token. A nil provider lets every
// request through, which is how the app runs without a paired device.
func AuthMiddleware(provider Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if provider == nil {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if err := provider.ValidateToken(token); err == nil {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}
