package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/models"
	"github.com/akademika/sekolahku-api/internal/service"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
	"github.com/akademika/sekolahku-api/pkg/response"
)

// ReportHandler exposes the asynchronous grade-report pipeline.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler creates a new handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Create godoc
// @Summary Request grade report
// @Description Queue a grade report export for a class
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateReportRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}
	res, err := h.service.CreateJob(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, res)
}

// Status godoc
// @Summary Report status
// @Description Fetch the state of a report job; finished jobs include a signed download link
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/{id} [get]
func (h *ReportHandler) Status(c *gin.Context) {
	res, err := h.service.Status(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Download godoc
// @Summary Download report
// @Description Stream a rendered report file using a signed token
// @Tags Reports
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/download [get]
func (h *ReportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	file, job, err := h.service.Download(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to stat report file"))
		return
	}

	contentType := "text/csv"
	if job.Format == models.ReportFormatPDF {
		contentType = "application/pdf"
	}
	disposition := fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("grade-report-%s.%s", job.ID, job.Format))
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, map[string]string{
		"Content-Disposition": disposition,
	})
}
