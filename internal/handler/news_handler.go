package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/service"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
	"github.com/akademika/sekolahku-api/pkg/response"
)

// NewsHandler exposes announcement listing and publishing.
type NewsHandler struct {
	service *service.NewsService
}

// NewNewsHandler creates a new handler.
func NewNewsHandler(svc *service.NewsService) *NewsHandler {
	return &NewsHandler{service: svc}
}

// List godoc
// @Summary List news
// @Description Page through announcements, newest first
// @Tags News
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /news [get]
func (h *NewsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, pagination, err := h.service.List(c.Request.Context(), sessionFromContext(c), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Create godoc
// @Summary Publish news
// @Description Publish an announcement and notify all users
// @Tags News
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateNewsRequest true "News payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /news [post]
func (h *NewsHandler) Create(c *gin.Context) {
	var req dto.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid news payload"))
		return
	}
	res, err := h.service.Create(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, res)
}
