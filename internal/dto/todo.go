package dto

import "github.com/akademika/sekolahku-api/internal/models"

// TodoItem decorates a todo with render-time urgency flags. Overdue and
// DueToday are computed from the UTC calendar date, never stored.
type TodoItem struct {
	models.Todo
	Overdue  bool `json:"overdue"`
	DueToday bool `json:"due_today"`
}

// TodoListResponse splits a student's todos by completion status. Ordering is
// pending before completed, each group soonest due date first.
type TodoListResponse struct {
	Pending   []TodoItem `json:"pending"`
	Completed []TodoItem `json:"completed"`
}

// CreateTodoRequest is the create form payload.
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"required"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high"`
}

// UpdateTodoRequest is the edit form payload. IsCompleted is set explicitly.
type UpdateTodoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"required"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high"`
	IsCompleted bool   `json:"is_completed"`
}
