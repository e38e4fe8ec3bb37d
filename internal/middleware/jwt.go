package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akademika/sekolahku-api/internal/models"
	"github.com/akademika/sekolahku-api/internal/service"
	"github.com/akademika/sekolahku-api/pkg/response"
)

// ContextSessionKey is the gin context key storing the resolved session.
const ContextSessionKey = "currentSession"

// JWT protects routes by requiring a valid access token. The validated
// claims are converted to a session value so handlers pass identity
// explicitly instead of re-reading framework state. A missing or invalid
// token is an empty session and redirects home, the same answer a role
// mismatch gets, so probing a route never reveals whether it exists.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.RedirectHome(c)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.RedirectHome(c)
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.RedirectHome(c)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, models.SessionFromClaims(claims))
		c.Next()
	}
}

// SessionFrom extracts the session attached by JWT. The second return is
// false when the middleware did not run or rejected the request.
func SessionFrom(c *gin.Context) (*models.Session, bool) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*models.Session)
	if !ok || sess == nil {
		return nil, false
	}
	return sess, true
}
