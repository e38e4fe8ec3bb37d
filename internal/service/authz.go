package service

import (
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
)

// Authorize is the single access-control gate. It allows a session only when
// it exists and carries exactly the required role; roles are mutually
// exclusive, so there is no partial access. Every protected view runs this
// before fetching any data.
func Authorize(sess *models.Session, required models.UserRole) error {
	if sess == nil || sess.UserID == "" {
		return appErrors.ErrUnauthorized
	}
	if sess.Role != required {
		return appErrors.ErrForbidden
	}
	return nil
}
