package middleware

import (
	"net/http"

	"organizely/organizer/services"
	"organizely/organizer/utils/token"

	"github.com/gin-gonic/gin"
)

// WebSocketAuthMiddleware authenticates websocket handshakes, accepting the
// token from a query parameter since browsers cannot set headers on
// websocket connections.
func WebSocketAuthMiddleware(authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}
