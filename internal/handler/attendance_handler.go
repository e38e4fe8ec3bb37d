package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika/sekolahku-api/internal/service"
	"github.com/akademika/sekolahku-api/pkg/response"
)

// AttendanceHandler exposes the student attendance view.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler creates a new handler.
func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// StudentAttendance godoc
// @Summary Student attendance
// @Description The caller's attendance summary and per-month history
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /student/attendance [get]
func (h *AttendanceHandler) StudentAttendance(c *gin.Context) {
	res, err := h.service.StudentAttendance(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
