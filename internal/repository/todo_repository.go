package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akademika/sekolahku-api/internal/models"
)

// TodoRepository manages persistence for student to-do items.
type TodoRepository struct {
	db *sqlx.DB
}

// NewTodoRepository constructs a TodoRepository.
func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// ListByStudent returns a student's todos, pending before completed and each
// group soonest due date first.
func (r *TodoRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Todo, error) {
	const query = `SELECT id, student_id, title, description, due_date, priority, is_completed, created_at
        FROM todos WHERE student_id = $1
        ORDER BY is_completed ASC, due_date ASC`
	var todos []models.Todo
	if err := r.db.SelectContext(ctx, &todos, query, studentID); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// ListPendingByStudent returns a student's incomplete todos, soonest first.
func (r *TodoRepository) ListPendingByStudent(ctx context.Context, studentID string, limit int) ([]models.Todo, error) {
	const query = `SELECT id, student_id, title, description, due_date, priority, is_completed, created_at
        FROM todos WHERE student_id = $1 AND is_completed = false
        ORDER BY due_date ASC LIMIT $2`
	var todos []models.Todo
	if err := r.db.SelectContext(ctx, &todos, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("list pending todos: %w", err)
	}
	return todos, nil
}

// FindOwned fetches a todo filtered by id AND owner in a single read. A todo
// belonging to another student is indistinguishable from a nonexistent one:
// both surface sql.ErrNoRows.
func (r *TodoRepository) FindOwned(ctx context.Context, id, studentID string) (*models.Todo, error) {
	const query = `SELECT id, student_id, title, description, due_date, priority, is_completed, created_at
        FROM todos WHERE id = $1 AND student_id = $2`
	var todo models.Todo
	if err := r.db.GetContext(ctx, &todo, query, id, studentID); err != nil {
		return nil, err
	}
	return &todo, nil
}

// Create inserts a new todo.
func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO todos (id, student_id, title, description, due_date, priority, is_completed, created_at)
        VALUES (:id, :student_id, :title, :description, :due_date, :priority, :is_completed, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, todo); err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// Update rewrites a todo's mutable fields.
func (r *TodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	const query = `UPDATE todos SET title = :title, description = :description, due_date = :due_date,
        priority = :priority, is_completed = :is_completed WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, todo); err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return nil
}

// SetCompleted flips only the completion flag.
func (r *TodoRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	const query = `UPDATE todos SET is_completed = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, completed); err != nil {
		return fmt.Errorf("toggle todo: %w", err)
	}
	return nil
}

// Delete removes a todo.
func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM todos WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}
