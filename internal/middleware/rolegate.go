package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/akademika/sekolahku-api/internal/models"
	"github.com/akademika/sekolahku-api/pkg/response"
)

// RequireRole gates a route group to exactly one role. A missing session or
// a role mismatch sends the caller back to the public entry point rather
// than returning an error payload.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok || sess.Role != role {
			response.RedirectHome(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles gates a route to any of the given roles, redirecting home on
// mismatch.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			response.RedirectHome(c)
			c.Abort()
			return
		}
		if _, permitted := allowed[sess.Role]; !permitted {
			response.RedirectHome(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
