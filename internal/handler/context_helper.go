package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/akademika/sekolahku-api/internal/middleware"
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
	"github.com/akademika/sekolahku-api/pkg/response"
)

func sessionFromContext(c *gin.Context) *models.Session {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil
	}
	return sess
}

// respondError translates service failures. Denied and profile-less sessions
// bounce to the public entry point with no error payload; everything else is
// an enveloped error.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, appErrors.ErrForbidden) || errors.Is(err, appErrors.ErrProfileMissing) {
		response.RedirectHome(c)
		return
	}
	response.Error(c, err)
}
