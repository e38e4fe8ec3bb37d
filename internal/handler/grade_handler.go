package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika/sekolahku-api/internal/service"
	"github.com/akademika/sekolahku-api/pkg/response"
)

// GradeHandler exposes the student grade view.
type GradeHandler struct {
	service *service.GradeService
}

// NewGradeHandler creates a new handler.
func NewGradeHandler(svc *service.GradeService) *GradeHandler {
	return &GradeHandler{service: svc}
}

// StudentGrades godoc
// @Summary Student grades
// @Description The caller's grades grouped per enrolled subject
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /student/grades [get]
func (h *GradeHandler) StudentGrades(c *gin.Context) {
	res, err := h.service.StudentGrades(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
