package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/service"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
	"github.com/akademika/sekolahku-api/pkg/response"
)

// TodoHandler exposes the student to-do surface.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new handler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// List godoc
// @Summary List todos
// @Description The caller's todos split into pending and completed
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /student/todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Create godoc
// @Summary Create todo
// @Description Add a pending todo for the caller
// @Tags Todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTodoRequest true "Todo payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 302 {string} string "redirect to /"
// @Router /student/todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid todo payload"))
		return
	}
	res, err := h.service.Create(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, res)
}

// Update godoc
// @Summary Update todo
// @Description Rewrite a todo the caller owns
// @Tags Todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Param payload body dto.UpdateTodoRequest true "Todo payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid todo payload"))
		return
	}
	res, err := h.service.Update(c.Request.Context(), sessionFromContext(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Toggle godoc
// @Summary Toggle todo completion
// @Description Flip the completion flag of a todo the caller owns
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/todos/{id}/toggle [patch]
func (h *TodoHandler) Toggle(c *gin.Context) {
	res, err := h.service.Toggle(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Delete godoc
// @Summary Delete todo
// @Description Remove a todo the caller owns
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), sessionFromContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}
