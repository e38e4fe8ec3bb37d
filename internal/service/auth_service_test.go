package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
)

type fakeUserRepo struct {
	user *models.User
	err  error
}

func (f *fakeUserRepo) FindByUsername(context.Context, string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserRepo) FindByID(context.Context, string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func newAuthService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "sekolahku",
	})
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginSuccessRoundTrips(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		ID:           "u1",
		Name:         "Budi",
		Username:     "budi",
		PasswordHash: hashOf(t, "rahasia"),
		Role:         models.RoleStudent,
	}}
	svc := newAuthService(repo)

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "budi", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, res.User.Role)
	assert.NotEmpty(t, res.AccessToken)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		Username:     "budi",
		PasswordHash: hashOf(t, "rahasia"),
		Role:         models.RoleStudent,
	}}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "budi", Password: "salah"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthService(&fakeUserRepo{err: sql.ErrNoRows})

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "x"})
	// Same failure as a wrong password, so usernames cannot be probed.
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginValidation(t *testing.T) {
	svc := newAuthService(&fakeUserRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "budi"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestValidateTokenRejectsForgedToken(t *testing.T) {
	issuer := newAuthService(&fakeUserRepo{})
	other := NewAuthService(&fakeUserRepo{}, nil, nil, AuthConfig{TokenSecret: "other-secret", TokenExpiry: time.Hour})

	repo := &fakeUserRepo{user: &models.User{
		ID:           "u1",
		Username:     "budi",
		PasswordHash: hashOf(t, "rahasia"),
		Role:         models.RoleStudent,
	}}
	res, err := newAuthService(repo).Login(context.Background(), models.LoginRequest{Username: "budi", Password: "rahasia"})
	require.NoError(t, err)

	_, err = other.ValidateToken(res.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	_, err = issuer.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
