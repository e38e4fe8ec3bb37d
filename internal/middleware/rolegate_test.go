package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/akademika/sekolahku-api/internal/models"
)

func newGateRouter(role models.UserRole, sess *models.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", func(c *gin.Context) {
		if sess != nil {
			c.Set(ContextSessionKey, sess)
		}
		c.Next()
	}, RequireRole(role), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireRoleAllowsExactMatch(t *testing.T) {
	r := newGateRouter(models.RoleStudent, &models.Session{UserID: "u1", Role: models.RoleStudent})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secure", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRedirectsOnMismatch(t *testing.T) {
	r := newGateRouter(models.RoleStudent, &models.Session{UserID: "u1", Role: models.RoleTeacher})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secure", nil))

	// Denials bounce to the public entry point, not an error payload.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireRoleRedirectsWithoutSession(t *testing.T) {
	r := newGateRouter(models.RoleAdmin, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secure", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireRolesAnyOf(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/reports", func(c *gin.Context) {
		c.Set(ContextSessionKey, &models.Session{UserID: "u1", Role: models.RoleAdmin})
	}, RequireRoles(models.RoleTeacher, models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
