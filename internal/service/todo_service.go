package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
)

type todoRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Todo, error)
	FindOwned(ctx context.Context, id, studentID string) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	Update(ctx context.Context, todo *models.Todo) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

// dueDateLayout is the calendar date format accepted from to-do forms.
const dueDateLayout = "2006-01-02"

// TodoService implements the student to-do surface. Every mutation resolves
// the acting student first and fetches the target filtered by both id and
// owner, so a foreign todo fails closed as not-found.
type TodoService struct {
	students  studentResolver
	todos     todoRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cacheTTL  time.Duration
}

// NewTodoService constructs a TodoService.
func NewTodoService(students studentResolver, todos todoRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *TodoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &TodoService{
		students:  students,
		todos:     todos,
		cache:     cache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		cacheTTL:  cacheTTL,
	}
}

func todoCacheKey(studentID string) string {
	return fmt.Sprintf("todos:%s", studentID)
}

// invalidate drops the cached listing and the student dashboard, which also
// shows pending todos.
func (s *TodoService) invalidate(ctx context.Context, studentID, userID string) {
	_ = s.cache.Invalidate(ctx, todoCacheKey(studentID))
	_ = s.cache.Invalidate(ctx, dashboardCacheKey(models.RoleStudent, userID))
}

func (s *TodoService) resolveStudent(ctx context.Context, sess *models.Session) (*models.StudentDetail, error) {
	if err := Authorize(sess, models.RoleStudent); err != nil {
		return nil, err
	}
	student, err := s.students.FindByUserID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileMissing
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
	}
	return student, nil
}

// List returns the acting student's todos split by completion status.
// Urgency flags are computed from the clock on every call; only the raw rows
// are cached.
func (s *TodoService) List(ctx context.Context, sess *models.Session) (*dto.TodoListResponse, error) {
	student, err := s.resolveStudent(ctx, sess)
	if err != nil {
		return nil, err
	}

	key := todoCacheKey(student.ID)
	var todos []models.Todo
	hit, err := s.cache.Get(ctx, key, &todos)
	if err != nil || !hit {
		todos, err = s.todos.ListByStudent(ctx, student.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list todos")
		}
		_ = s.cache.Set(ctx, key, todos, s.cacheTTL)
	}

	return splitTodos(todos, s.now().UTC()), nil
}

// splitTodos decorates each todo with urgency flags and partitions by
// completion, preserving the incoming order within each group.
func splitTodos(todos []models.Todo, now time.Time) *dto.TodoListResponse {
	out := &dto.TodoListResponse{
		Pending:   make([]dto.TodoItem, 0, len(todos)),
		Completed: make([]dto.TodoItem, 0, len(todos)),
	}
	for _, todo := range todos {
		item := dto.TodoItem{
			Todo:     todo,
			Overdue:  isOverdue(todo, now),
			DueToday: sameCalendarDay(todo.DueDate, now),
		}
		if todo.IsCompleted {
			out.Completed = append(out.Completed, item)
		} else {
			out.Pending = append(out.Pending, item)
		}
	}
	return out
}

// isOverdue reports whether an incomplete todo's due moment has passed.
func isOverdue(todo models.Todo, now time.Time) bool {
	return !todo.IsCompleted && todo.DueDate.Before(now)
}

// sameCalendarDay compares UTC calendar dates. The portal has no per-user
// timezone, so UTC is the fixed policy.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (s *TodoService) parseForm(title, description, dueDate, priority string) (*models.Todo, error) {
	req := dto.CreateTodoRequest{Title: title, Description: description, DueDate: dueDate, Priority: priority}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	due, err := time.ParseInLocation(dueDateLayout, dueDate, time.UTC)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "due_date must be a valid date (YYYY-MM-DD)")
	}
	return &models.Todo{
		Title:       title,
		Description: description,
		DueDate:     due,
		Priority:    models.TodoPriority(priority),
	}, nil
}

// Create validates the payload and inserts a pending todo for the acting
// student. No write happens on validation failure.
func (s *TodoService) Create(ctx context.Context, sess *models.Session, req dto.CreateTodoRequest) (*models.Todo, error) {
	student, err := s.resolveStudent(ctx, sess)
	if err != nil {
		return nil, err
	}
	todo, err := s.parseForm(req.Title, req.Description, req.DueDate, req.Priority)
	if err != nil {
		return nil, err
	}
	todo.StudentID = student.ID
	todo.IsCompleted = false
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create todo")
	}
	s.invalidate(ctx, student.ID, sess.UserID)
	return todo, nil
}

// Update rewrites a todo the acting student owns. IsCompleted is set to the
// submitted value.
func (s *TodoService) Update(ctx context.Context, sess *models.Session, id string, req dto.UpdateTodoRequest) (*models.Todo, error) {
	student, err := s.resolveStudent(ctx, sess)
	if err != nil {
		return nil, err
	}
	existing, err := s.todos.FindOwned(ctx, id, student.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "todo not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch todo")
	}
	parsed, err := s.parseForm(req.Title, req.Description, req.DueDate, req.Priority)
	if err != nil {
		return nil, err
	}
	existing.Title = parsed.Title
	existing.Description = parsed.Description
	existing.DueDate = parsed.DueDate
	existing.Priority = parsed.Priority
	existing.IsCompleted = req.IsCompleted
	if err := s.todos.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update todo")
	}
	s.invalidate(ctx, student.ID, sess.UserID)
	return existing, nil
}

// Toggle flips the completion flag and changes nothing else.
func (s *TodoService) Toggle(ctx context.Context, sess *models.Session, id string) (*models.Todo, error) {
	student, err := s.resolveStudent(ctx, sess)
	if err != nil {
		return nil, err
	}
	existing, err := s.todos.FindOwned(ctx, id, student.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "todo not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch todo")
	}
	if err := s.todos.SetCompleted(ctx, existing.ID, !existing.IsCompleted); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle todo")
	}
	existing.IsCompleted = !existing.IsCompleted
	s.invalidate(ctx, student.ID, sess.UserID)
	return existing, nil
}

// Delete removes a todo the acting student owns.
func (s *TodoService) Delete(ctx context.Context, sess *models.Session, id string) error {
	student, err := s.resolveStudent(ctx, sess)
	if err != nil {
		return err
	}
	existing, err := s.todos.FindOwned(ctx, id, student.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "todo not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch todo")
	}
	if err := s.todos.Delete(ctx, existing.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete todo")
	}
	s.invalidate(ctx, student.ID, sess.UserID)
	return nil
}

// validationMessage flattens the first field error into a readable message.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "oneof":
			return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
	return "validation failed"
}
