package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextOrgKey is the gin context key holding the authenticated organization ID
const ContextOrgKey = "organization_id"

// Middleware validates the Bearer token and stores the organization ID in the
// request context. Requests without a valid token are rejected with 401.
func Middleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		orgID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		c.Set(ContextOrgKey, orgID)
		c.Next()
	}
}

// OrgID returns the authenticated organization ID set by Middleware
func OrgID(c *gin.Context) int64 {
	id, _ := c.Get(ContextOrgKey)
	orgID, _ := id.(int64)
	return orgID
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
