package middleware

import (
	"errors"
	"net/http"
	"strings"

	"servitech/session"

	"github.com/gin-gonic/gin"
)

// SessionAuth resolves the caller's session token and enforces the expected
// role. The principal id is stored in the gin context under "principalID".
func SessionAuth(resolver session.Resolver, role session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		principal, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrInvalidSession) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Session is invalid or has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Authentication error",
			})
			return
		}
		if principal.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This operation is not available for your role",
			})
			return
		}

		c.Set("principalID", principal.ID)
		c.Next()
	}
}
