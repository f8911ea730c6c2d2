package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect4-minimax/pkg/auth"
	"github.com/iamasit07/connect4-minimax/pkg/httputil"
	"github.com/iamasit07/connect4-minimax/pkg/uid"
)

// GuestIDKey is the gin context key holding the authenticated guest ID.
const GuestIDKey = "guest_id"

// GuestAuth requires a valid guest token from the cookie or Authorization header.
func GuestAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := tokens.ValidateGuestToken(tokenString)
		if err != nil || !uid.IsGuestID(claims.GuestID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(GuestIDKey, claims.GuestID)
		c.Next()
	}
}
