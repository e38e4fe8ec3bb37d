package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika/sekolahku-api/internal/models"
)

func newTodoRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var todoColumns = []string{"id", "student_id", "title", "description", "due_date", "priority", "is_completed", "created_at"}

func TestTodoRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newTodoRepoMock(t)
	defer cleanup()
	repo := NewTodoRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(todoColumns).
		AddRow("t1", "s1", "homework", "", now.AddDate(0, 0, 1), "high", false, now).
		AddRow("t2", "s1", "read", "", now.AddDate(0, 0, 2), "low", true, now)
	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE student_id = \$1\s+ORDER BY is_completed ASC, due_date ASC`).
		WithArgs("s1").
		WillReturnRows(rows)

	todos, err := repo.ListByStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "t1", todos[0].ID)
	assert.Equal(t, models.TodoPriorityHigh, todos[0].Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepositoryFindOwned(t *testing.T) {
	db, mock, cleanup := newTodoRepoMock(t)
	defer cleanup()
	repo := NewTodoRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE id = \$1 AND student_id = \$2`).
		WithArgs("t1", "s1").
		WillReturnRows(sqlmock.NewRows(todoColumns).
			AddRow("t1", "s1", "homework", "", now, "medium", false, now))

	todo, err := repo.FindOwned(context.Background(), "t1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "t1", todo.ID)

	// The same todo requested by another student surfaces no rows.
	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE id = \$1 AND student_id = \$2`).
		WithArgs("t1", "s2").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindOwned(context.Background(), "t1", "s2")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newTodoRepoMock(t)
	defer cleanup()
	repo := NewTodoRepository(db)

	mock.ExpectExec("INSERT INTO todos").
		WithArgs(sqlmock.AnyArg(), "s1", "homework", "", sqlmock.AnyArg(), "high", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	todo := &models.Todo{
		StudentID: "s1",
		Title:     "homework",
		DueDate:   time.Now().AddDate(0, 0, 1),
		Priority:  models.TodoPriorityHigh,
	}
	require.NoError(t, repo.Create(context.Background(), todo))
	assert.NotEmpty(t, todo.ID, "create assigns an id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepositorySetCompletedAndDelete(t *testing.T) {
	db, mock, cleanup := newTodoRepoMock(t)
	defer cleanup()
	repo := NewTodoRepository(db)

	mock.ExpectExec(`UPDATE todos SET is_completed = \$2 WHERE id = \$1`).
		WithArgs("t1", true).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.SetCompleted(context.Background(), "t1", true))

	mock.ExpectExec(`DELETE FROM todos WHERE id = \$1`).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Delete(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
