package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika/sekolahku-api/internal/service"
	"github.com/akademika/sekolahku-api/pkg/response"
)

// DashboardHandler exposes the per-role landing views.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Admin godoc
// @Summary Admin dashboard
// @Description System-wide counts and recent activity
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	res, err := h.service.Admin(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Teacher godoc
// @Summary Teacher dashboard
// @Description Teaching activity scoped to the caller's teacher profile
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /dashboard/teacher [get]
func (h *DashboardHandler) Teacher(c *gin.Context) {
	res, err := h.service.Teacher(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Student godoc
// @Summary Student dashboard
// @Description The caller's own grades, attendance, todos and news
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /dashboard/student [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	res, err := h.service.Student(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Parent godoc
// @Summary Parent dashboard
// @Description Records across the caller's linked children
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /dashboard/parent [get]
func (h *DashboardHandler) Parent(c *gin.Context) {
	res, err := h.service.Parent(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
