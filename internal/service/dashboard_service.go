package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
)

// Recent-activity window sizes. The dashboards show a fixed slice of the
// newest records rather than paginated lists.
const (
	recentUsersLimit      = 5
	recentNewsLimit       = 5
	recentGradesLimit     = 5
	recentAttendanceLimit = 5
	upcomingTodosLimit    = 5
	studentNewsLimit      = 3
)

type dashboardUserRepository interface {
	ListRecent(ctx context.Context, limit int) ([]models.UserSummary, error)
}

type dashboardStudentRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.StudentDetail, error)
	ListByParentID(ctx context.Context, parentID string) ([]models.StudentDetail, error)
	Count(ctx context.Context) (int, error)
	CountByClassIDs(ctx context.Context, classIDs []string) (int, error)
}

type dashboardTeacherRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.TeacherDetail, error)
	Count(ctx context.Context) (int, error)
}

type dashboardParentRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.ParentDetail, error)
	Count(ctx context.Context) (int, error)
}

type dashboardClassRepository interface {
	ListBySubjectID(ctx context.Context, subjectID string) ([]models.ClassRoom, error)
	Count(ctx context.Context) (int, error)
}

type dashboardGradeRepository interface {
	ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]models.GradeDetail, error)
	ListRecentByStudents(ctx context.Context, studentIDs []string, limit int) ([]models.GradeDetail, error)
	ListRecentByTeacher(ctx context.Context, teacherID string, limit int) ([]models.GradeDetail, error)
}

type dashboardAttendanceRepository interface {
	ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]models.AttendanceDetail, error)
	ListRecentByStudents(ctx context.Context, studentIDs []string, limit int) ([]models.AttendanceDetail, error)
	ListRecentByTeacher(ctx context.Context, teacherID string, limit int) ([]models.AttendanceDetail, error)
}

type dashboardTodoRepository interface {
	ListPendingByStudent(ctx context.Context, studentID string, limit int) ([]models.Todo, error)
}

type dashboardNewsRepository interface {
	ListRecent(ctx context.Context, limit int) ([]models.NewsDetail, error)
}

type unreadMessageCounter interface {
	CountUnreadByReceiver(ctx context.Context, userID string) (int, error)
}

type unreadNotificationCounter interface {
	CountUnreadByUser(ctx context.Context, userID string) (int, error)
}

// DashboardService composes the per-role landing views. Each dashboard is
// scoped to the caller's own identity and cached per user.
type DashboardService struct {
	users         dashboardUserRepository
	students      dashboardStudentRepository
	teachers      dashboardTeacherRepository
	parents       dashboardParentRepository
	classes       dashboardClassRepository
	grades        dashboardGradeRepository
	attendance    dashboardAttendanceRepository
	todos         dashboardTodoRepository
	news          dashboardNewsRepository
	messages      unreadMessageCounter
	notifications unreadNotificationCounter
	cache         *CacheService
	logger        *zap.Logger
	cacheTTL      time.Duration
}

// DashboardServiceDeps bundles the repositories the dashboards read from.
type DashboardServiceDeps struct {
	Users         dashboardUserRepository
	Students      dashboardStudentRepository
	Teachers      dashboardTeacherRepository
	Parents       dashboardParentRepository
	Classes       dashboardClassRepository
	Grades        dashboardGradeRepository
	Attendance    dashboardAttendanceRepository
	Todos         dashboardTodoRepository
	News          dashboardNewsRepository
	Messages      unreadMessageCounter
	Notifications unreadNotificationCounter
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(deps DashboardServiceDeps, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &DashboardService{
		users:         deps.Users,
		students:      deps.Students,
		teachers:      deps.Teachers,
		parents:       deps.Parents,
		classes:       deps.Classes,
		grades:        deps.Grades,
		attendance:    deps.Attendance,
		todos:         deps.Todos,
		news:          deps.News,
		messages:      deps.Messages,
		notifications: deps.Notifications,
		cache:         cache,
		logger:        logger,
		cacheTTL:      cacheTTL,
	}
}

func dashboardCacheKey(role models.UserRole, userID string) string {
	return fmt.Sprintf("dashboard:%s:%s", role, userID)
}

func internalErr(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// Admin returns the system-wide counts and recent activity view.
func (s *DashboardService) Admin(ctx context.Context, sess *models.Session) (*dto.AdminDashboardResponse, error) {
	if err := Authorize(sess, models.RoleAdmin); err != nil {
		return nil, err
	}

	key := dashboardCacheKey(models.RoleAdmin, sess.UserID)
	var cached dto.AdminDashboardResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	resp := &dto.AdminDashboardResponse{}
	var err error
	if resp.TotalStudents, err = s.students.Count(ctx); err != nil {
		return nil, internalErr(err, "failed to count students")
	}
	if resp.TotalTeachers, err = s.teachers.Count(ctx); err != nil {
		return nil, internalErr(err, "failed to count teachers")
	}
	if resp.TotalParents, err = s.parents.Count(ctx); err != nil {
		return nil, internalErr(err, "failed to count parents")
	}
	if resp.TotalClasses, err = s.classes.Count(ctx); err != nil {
		return nil, internalErr(err, "failed to count classes")
	}
	if resp.RecentUsers, err = s.users.ListRecent(ctx, recentUsersLimit); err != nil {
		return nil, internalErr(err, "failed to list recent users")
	}
	if resp.RecentNews, err = s.news.ListRecent(ctx, recentNewsLimit); err != nil {
		return nil, internalErr(err, "failed to list recent news")
	}

	_ = s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, nil
}

// Teacher returns the teaching-activity view for the caller's own teacher
// profile. All lists are scoped through that profile, never the whole school.
func (s *DashboardService) Teacher(ctx context.Context, sess *models.Session) (*dto.TeacherDashboardResponse, error) {
	if err := Authorize(sess, models.RoleTeacher); err != nil {
		return nil, err
	}

	key := dashboardCacheKey(models.RoleTeacher, sess.UserID)
	var cached dto.TeacherDashboardResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	teacher, err := s.teachers.FindByUserID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileMissing
		}
		return nil, internalErr(err, "failed to resolve teacher")
	}

	resp := &dto.TeacherDashboardResponse{Teacher: *teacher}
	if resp.Classes, err = s.classes.ListBySubjectID(ctx, teacher.SubjectID); err != nil {
		return nil, internalErr(err, "failed to list classes")
	}
	classIDs := make([]string, 0, len(resp.Classes))
	for _, class := range resp.Classes {
		classIDs = append(classIDs, class.ID)
	}
	if resp.TotalStudents, err = s.students.CountByClassIDs(ctx, classIDs); err != nil {
		return nil, internalErr(err, "failed to count students")
	}
	if resp.RecentAttendance, err = s.attendance.ListRecentByTeacher(ctx, teacher.ID, recentAttendanceLimit); err != nil {
		return nil, internalErr(err, "failed to list recent attendance")
	}
	if resp.RecentGrades, err = s.grades.ListRecentByTeacher(ctx, teacher.ID, recentGradesLimit); err != nil {
		return nil, internalErr(err, "failed to list recent grades")
	}
	if resp.UnreadMessages, err = s.messages.CountUnreadByReceiver(ctx, sess.UserID); err != nil {
		return nil, internalErr(err, "failed to count unread messages")
	}

	_ = s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, nil
}

// Student returns the caller's own record view.
func (s *DashboardService) Student(ctx context.Context, sess *models.Session) (*dto.StudentDashboardResponse, error) {
	if err := Authorize(sess, models.RoleStudent); err != nil {
		return nil, err
	}

	key := dashboardCacheKey(models.RoleStudent, sess.UserID)
	var cached dto.StudentDashboardResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	student, err := s.students.FindByUserID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileMissing
		}
		return nil, internalErr(err, "failed to resolve student")
	}

	resp := &dto.StudentDashboardResponse{Student: *student}
	if resp.UpcomingTodos, err = s.todos.ListPendingByStudent(ctx, student.ID, upcomingTodosLimit); err != nil {
		return nil, internalErr(err, "failed to list pending todos")
	}
	if resp.RecentGrades, err = s.grades.ListRecentByStudent(ctx, student.ID, recentGradesLimit); err != nil {
		return nil, internalErr(err, "failed to list recent grades")
	}
	if resp.RecentAttendance, err = s.attendance.ListRecentByStudent(ctx, student.ID, recentAttendanceLimit); err != nil {
		return nil, internalErr(err, "failed to list recent attendance")
	}
	if resp.RecentNews, err = s.news.ListRecent(ctx, studentNewsLimit); err != nil {
		return nil, internalErr(err, "failed to list recent news")
	}
	if resp.UnreadNotifications, err = s.notifications.CountUnreadByUser(ctx, sess.UserID); err != nil {
		return nil, internalErr(err, "failed to count unread notifications")
	}

	_ = s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, nil
}

// Parent returns the view across the caller's linked children. A parent with
// no linked children still gets a dashboard with empty lists.
func (s *DashboardService) Parent(ctx context.Context, sess *models.Session) (*dto.ParentDashboardResponse, error) {
	if err := Authorize(sess, models.RoleParent); err != nil {
		return nil, err
	}

	key := dashboardCacheKey(models.RoleParent, sess.UserID)
	var cached dto.ParentDashboardResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	parent, err := s.parents.FindByUserID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileMissing
		}
		return nil, internalErr(err, "failed to resolve parent")
	}

	resp := &dto.ParentDashboardResponse{Parent: *parent}
	if resp.Children, err = s.students.ListByParentID(ctx, parent.ID); err != nil {
		return nil, internalErr(err, "failed to list children")
	}
	childIDs := make([]string, 0, len(resp.Children))
	for _, child := range resp.Children {
		childIDs = append(childIDs, child.ID)
	}
	if resp.RecentGrades, err = s.grades.ListRecentByStudents(ctx, childIDs, recentGradesLimit); err != nil {
		return nil, internalErr(err, "failed to list recent grades")
	}
	if resp.RecentAttendance, err = s.attendance.ListRecentByStudents(ctx, childIDs, recentAttendanceLimit); err != nil {
		return nil, internalErr(err, "failed to list recent attendance")
	}
	if resp.UnreadMessages, err = s.messages.CountUnreadByReceiver(ctx, sess.UserID); err != nil {
		return nil, internalErr(err, "failed to count unread messages")
	}
	if resp.UnreadNotifications, err = s.notifications.CountUnreadByUser(ctx, sess.UserID); err != nil {
		return nil, internalErr(err, "failed to count unread notifications")
	}

	_ = s.cache.Set(ctx, key, resp, s.cacheTTL)
	return resp, nil
}
