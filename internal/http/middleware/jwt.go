package middleware

import (
	"net/http"
	"strings"

	"todo_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWT for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxClaims = "claims"
)

// JWT protects API routes with a bearer token. The denylist check is
// fail-open and may be nil-backed; expiry and tampering are indistinguishable
// to the client.
func JWT(creds *service.Credentials, denylist *service.Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		claims, err := creds.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if denylist != nil && denylist.Revoked(c.Request.Context(), claims.JTI) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}
