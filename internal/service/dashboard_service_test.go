package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
)

type fakeStudentStore struct {
	student    *models.StudentDetail
	children   []models.StudentDetail
	total      int
	classTotal int
	err        error
}

func (f *fakeStudentStore) FindByUserID(context.Context, string) (*models.StudentDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.student, nil
}

func (f *fakeStudentStore) ListByParentID(context.Context, string) ([]models.StudentDetail, error) {
	return f.children, nil
}

func (f *fakeStudentStore) Count(context.Context) (int, error) { return f.total, nil }

func (f *fakeStudentStore) CountByClassIDs(context.Context, []string) (int, error) {
	return f.classTotal, nil
}

type fakeParentStore struct {
	parent *models.ParentDetail
	err    error
}

func (f *fakeParentStore) FindByUserID(context.Context, string) (*models.ParentDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.parent, nil
}

func (f *fakeParentStore) Count(context.Context) (int, error) { return 3, nil }

type fakeClassStore struct {
	classes []models.ClassRoom
}

func (f *fakeClassStore) ListBySubjectID(context.Context, string) ([]models.ClassRoom, error) {
	return f.classes, nil
}

func (f *fakeClassStore) Count(context.Context) (int, error) { return 4, nil }

type fakeGradeStore struct {
	grades []models.GradeDetail
}

func (f *fakeGradeStore) ListRecentByStudent(context.Context, string, int) ([]models.GradeDetail, error) {
	return f.grades, nil
}

func (f *fakeGradeStore) ListRecentByStudents(_ context.Context, ids []string, _ int) ([]models.GradeDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return f.grades, nil
}

func (f *fakeGradeStore) ListRecentByTeacher(context.Context, string, int) ([]models.GradeDetail, error) {
	return f.grades, nil
}

type fakeAttendanceStore struct {
	records []models.AttendanceDetail
}

func (f *fakeAttendanceStore) ListRecentByStudent(context.Context, string, int) ([]models.AttendanceDetail, error) {
	return f.records, nil
}

func (f *fakeAttendanceStore) ListRecentByStudents(_ context.Context, ids []string, _ int) ([]models.AttendanceDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return f.records, nil
}

func (f *fakeAttendanceStore) ListRecentByTeacher(context.Context, string, int) ([]models.AttendanceDetail, error) {
	return f.records, nil
}

type fakeTodoStore struct {
	todos []models.Todo
}

func (f *fakeTodoStore) ListPendingByStudent(context.Context, string, int) ([]models.Todo, error) {
	return f.todos, nil
}

type fakeNewsStore struct {
	news []models.NewsDetail
}

func (f *fakeNewsStore) ListRecent(_ context.Context, limit int) ([]models.NewsDetail, error) {
	if limit < len(f.news) {
		return f.news[:limit], nil
	}
	return f.news, nil
}

type fakeCounters struct {
	messages      int
	notifications int
}

func (f *fakeCounters) CountUnreadByReceiver(context.Context, string) (int, error) {
	return f.messages, nil
}

func (f *fakeCounters) CountUnreadByUser(context.Context, string) (int, error) {
	return f.notifications, nil
}

type fakeTeacherStore struct {
	teacher *models.TeacherDetail
	err     error
}

func (f *fakeTeacherStore) FindByUserID(context.Context, string) (*models.TeacherDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.teacher, nil
}

func (f *fakeTeacherStore) Count(context.Context) (int, error) { return 2, nil }

type fakeUserStore struct {
	users []models.UserSummary
}

func (f *fakeUserStore) ListRecent(_ context.Context, limit int) ([]models.UserSummary, error) {
	if limit < len(f.users) {
		return f.users[:limit], nil
	}
	return f.users, nil
}

func newDashboardDeps() DashboardServiceDeps {
	return DashboardServiceDeps{
		Users:         &fakeUserStore{},
		Students:      &fakeStudentStore{total: 120},
		Teachers:      &fakeTeacherStore{},
		Parents:       &fakeParentStore{},
		Classes:       &fakeClassStore{},
		Grades:        &fakeGradeStore{},
		Attendance:    &fakeAttendanceStore{},
		Todos:         &fakeTodoStore{},
		News:          &fakeNewsStore{},
		Messages:      &fakeCounters{},
		Notifications: &fakeCounters{},
	}
}

func TestAdminDashboard(t *testing.T) {
	deps := newDashboardDeps()
	deps.Users = &fakeUserStore{users: []models.UserSummary{{ID: "u1"}, {ID: "u2"}}}
	svc := NewDashboardService(deps, nil, nil, time.Minute)

	res, err := svc.Admin(context.Background(), &models.Session{UserID: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 120, res.TotalStudents)
	assert.Equal(t, 2, res.TotalTeachers)
	assert.Equal(t, 3, res.TotalParents)
	assert.Equal(t, 4, res.TotalClasses)
	assert.Len(t, res.RecentUsers, 2)
}

func TestAdminDashboardRoleGate(t *testing.T) {
	svc := NewDashboardService(newDashboardDeps(), nil, nil, time.Minute)

	_, err := svc.Admin(context.Background(), &models.Session{UserID: "u1", Role: models.RoleStudent})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestTeacherDashboardProfileMissing(t *testing.T) {
	deps := newDashboardDeps()
	deps.Teachers = &fakeTeacherStore{err: sql.ErrNoRows}
	svc := NewDashboardService(deps, nil, nil, time.Minute)

	_, err := svc.Teacher(context.Background(), &models.Session{UserID: "u1", Role: models.RoleTeacher})
	assert.ErrorIs(t, err, appErrors.ErrProfileMissing)
}

func TestTeacherDashboard(t *testing.T) {
	deps := newDashboardDeps()
	deps.Teachers = &fakeTeacherStore{teacher: &models.TeacherDetail{
		Teacher: models.Teacher{ID: "t1", SubjectID: "math"},
		Name:    "Pak Andi",
	}}
	deps.Classes = &fakeClassStore{classes: []models.ClassRoom{{ID: "c1"}, {ID: "c2"}}}
	deps.Students = &fakeStudentStore{classTotal: 58}
	deps.Messages = &fakeCounters{messages: 3}
	svc := NewDashboardService(deps, nil, nil, time.Minute)

	res, err := svc.Teacher(context.Background(), &models.Session{UserID: "u1", Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.Len(t, res.Classes, 2)
	assert.Equal(t, 58, res.TotalStudents)
	assert.Equal(t, 3, res.UnreadMessages)
}

func TestStudentDashboard(t *testing.T) {
	deps := newDashboardDeps()
	deps.Students = &fakeStudentStore{student: newStudent()}
	deps.Todos = &fakeTodoStore{todos: []models.Todo{{ID: "t1"}}}
	deps.News = &fakeNewsStore{news: []models.NewsDetail{
		{News: models.News{ID: "n1"}}, {News: models.News{ID: "n2"}},
		{News: models.News{ID: "n3"}}, {News: models.News{ID: "n4"}},
	}}
	deps.Notifications = &fakeCounters{notifications: 5}
	svc := NewDashboardService(deps, nil, nil, time.Minute)

	res, err := svc.Student(context.Background(), &models.Session{UserID: "u1", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "s1", res.Student.ID)
	assert.Len(t, res.UpcomingTodos, 1)
	assert.Len(t, res.RecentNews, 3, "student dashboard shows at most 3 news items")
	assert.Equal(t, 5, res.UnreadNotifications)
}

func TestParentDashboardNoChildren(t *testing.T) {
	deps := newDashboardDeps()
	deps.Parents = &fakeParentStore{parent: &models.ParentDetail{
		Parent: models.Parent{ID: "p1", UserID: "u1"},
	}}
	svc := NewDashboardService(deps, nil, nil, time.Minute)

	res, err := svc.Parent(context.Background(), &models.Session{UserID: "u1", Role: models.RoleParent})
	require.NoError(t, err)
	assert.Empty(t, res.Children)
	assert.Empty(t, res.RecentGrades)
	assert.Empty(t, res.RecentAttendance)
}
