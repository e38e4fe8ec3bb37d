package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
)

type fakeTodoRepo struct {
	todos map[string]*models.Todo
	list  []models.Todo

	creates   int
	updates   int
	deletes   int
	completed map[string]bool
}

func newFakeTodoRepo(todos ...*models.Todo) *fakeTodoRepo {
	repo := &fakeTodoRepo{todos: make(map[string]*models.Todo), completed: make(map[string]bool)}
	for _, todo := range todos {
		repo.todos[todo.ID] = todo
	}
	return repo
}

func (f *fakeTodoRepo) ListByStudent(context.Context, string) ([]models.Todo, error) {
	return f.list, nil
}

func (f *fakeTodoRepo) FindOwned(_ context.Context, id, studentID string) (*models.Todo, error) {
	todo, ok := f.todos[id]
	if !ok || todo.StudentID != studentID {
		return nil, sql.ErrNoRows
	}
	copied := *todo
	return &copied, nil
}

func (f *fakeTodoRepo) Create(_ context.Context, todo *models.Todo) error {
	f.creates++
	todo.ID = "generated"
	return nil
}

func (f *fakeTodoRepo) Update(_ context.Context, todo *models.Todo) error {
	f.updates++
	f.todos[todo.ID] = todo
	return nil
}

func (f *fakeTodoRepo) SetCompleted(_ context.Context, id string, completed bool) error {
	f.completed[id] = completed
	if todo, ok := f.todos[id]; ok {
		todo.IsCompleted = completed
	}
	return nil
}

func (f *fakeTodoRepo) Delete(_ context.Context, id string) error {
	f.deletes++
	delete(f.todos, id)
	return nil
}

func newTodoService(repo *fakeTodoRepo) *TodoService {
	return NewTodoService(&fakeStudentResolver{student: newStudent()}, repo, nil, nil, nil, time.Minute)
}

func studentSession() *models.Session {
	return &models.Session{UserID: "u1", Role: models.RoleStudent}
}

func TestTodoMutationsRequireStudentRole(t *testing.T) {
	svc := newTodoService(newFakeTodoRepo())
	sess := &models.Session{UserID: "u1", Role: models.RoleAdmin}

	_, err := svc.List(context.Background(), sess)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Create(context.Background(), sess, dto.CreateTodoRequest{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	err = svc.Delete(context.Background(), sess, "t1")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestTodoOwnershipFailsClosed(t *testing.T) {
	foreign := &models.Todo{ID: "t1", StudentID: "someone-else", Title: "x"}
	repo := newFakeTodoRepo(foreign)
	svc := newTodoService(repo)

	// A foreign todo is indistinguishable from a missing one.
	_, err := svc.Toggle(context.Background(), studentSession(), "t1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	err = svc.Delete(context.Background(), studentSession(), "t1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Zero(t, repo.deletes, "no write may happen for a foreign todo")

	_, err = svc.Update(context.Background(), studentSession(), "t1", dto.UpdateTodoRequest{
		Title: "y", DueDate: "2026-01-01", Priority: "low",
	})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Zero(t, repo.updates)
}

func TestTodoCreateValidation(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := newTodoService(repo)

	tests := []struct {
		name string
		req  dto.CreateTodoRequest
	}{
		{"missing title", dto.CreateTodoRequest{DueDate: "2026-01-01", Priority: "low"}},
		{"bad priority", dto.CreateTodoRequest{Title: "x", DueDate: "2026-01-01", Priority: "urgent"}},
		{"bad date", dto.CreateTodoRequest{Title: "x", DueDate: "tomorrow", Priority: "low"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), studentSession(), tt.req)
			assert.ErrorIs(t, err, appErrors.ErrValidation)
		})
	}
	assert.Zero(t, repo.creates, "validation failures must not write")
}

func TestTodoCreate(t *testing.T) {
	repo := newFakeTodoRepo()
	svc := newTodoService(repo)

	todo, err := svc.Create(context.Background(), studentSession(), dto.CreateTodoRequest{
		Title:    "study for exam",
		DueDate:  "2026-09-01",
		Priority: "high",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", todo.StudentID, "owner comes from the session, not the payload")
	assert.False(t, todo.IsCompleted)
	assert.Equal(t, models.TodoPriorityHigh, todo.Priority)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), todo.DueDate)
	assert.Equal(t, 1, repo.creates)
}

func TestTodoToggleTwiceRestores(t *testing.T) {
	todo := &models.Todo{ID: "t1", StudentID: "s1", Title: "x"}
	repo := newFakeTodoRepo(todo)
	svc := newTodoService(repo)

	first, err := svc.Toggle(context.Background(), studentSession(), "t1")
	require.NoError(t, err)
	assert.True(t, first.IsCompleted)

	second, err := svc.Toggle(context.Background(), studentSession(), "t1")
	require.NoError(t, err)
	assert.False(t, second.IsCompleted)
}

func TestTodoListSplitsAndFlags(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeTodoRepo()
	repo.list = []models.Todo{
		{ID: "overdue", DueDate: now.AddDate(0, 0, -2)},
		{ID: "due-today", DueDate: time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "upcoming", DueDate: now.AddDate(0, 0, 3)},
		{ID: "done-late", DueDate: now.AddDate(0, 0, -5), IsCompleted: true},
	}
	svc := newTodoService(repo)
	svc.now = func() time.Time { return now }

	res, err := svc.List(context.Background(), studentSession())
	require.NoError(t, err)
	require.Len(t, res.Pending, 3)
	require.Len(t, res.Completed, 1)

	byID := make(map[string]dto.TodoItem)
	for _, item := range res.Pending {
		byID[item.ID] = item
	}

	assert.True(t, byID["overdue"].Overdue)
	assert.False(t, byID["overdue"].DueToday)

	// Due earlier today: already past, and still due today.
	assert.True(t, byID["due-today"].Overdue)
	assert.True(t, byID["due-today"].DueToday)

	assert.False(t, byID["upcoming"].Overdue)
	assert.False(t, byID["upcoming"].DueToday)

	// Completed todos are never overdue.
	assert.False(t, res.Completed[0].Overdue)
}

func TestTodoUpdate(t *testing.T) {
	todo := &models.Todo{ID: "t1", StudentID: "s1", Title: "old", Priority: models.TodoPriorityLow}
	repo := newFakeTodoRepo(todo)
	svc := newTodoService(repo)

	updated, err := svc.Update(context.Background(), studentSession(), "t1", dto.UpdateTodoRequest{
		Title:       "new title",
		Description: "details",
		DueDate:     "2026-12-31",
		Priority:    "medium",
		IsCompleted: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, models.TodoPriorityMedium, updated.Priority)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, 1, repo.updates)
}
