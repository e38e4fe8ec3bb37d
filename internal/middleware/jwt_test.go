package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akademika/sekolahku-api/internal/models"
	"github.com/akademika/sekolahku-api/internal/service"
)

type stubUserRepo struct {
	user *models.User
}

func (r *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, sql.ErrNoRows
}

func (r *stubUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, sql.ErrNoRows
}

func newJWTRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &stubUserRepo{user: &models.User{
		ID:           "u1",
		Name:         "Budi",
		Username:     "budi",
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
	}}
	authSvc := service.NewAuthService(repo, nil, nil, service.AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
	})

	res, err := authSvc.Login(context.Background(), models.LoginRequest{Username: "budi", Password: "rahasia"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/secure", JWT(authSvc), func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": sess.UserID})
	})
	return r, res.AccessToken
}

func TestJWTAllowsValidToken(t *testing.T) {
	r, token := newJWTRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTRedirectsWithoutToken(t *testing.T) {
	r, _ := newJWTRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secure", nil))

	// An empty session bounces home, same as a role mismatch.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestJWTRedirectsOnMalformedHeader(t *testing.T) {
	r, token := newJWTRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestJWTRedirectsOnInvalidToken(t *testing.T) {
	r, _ := newJWTRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
