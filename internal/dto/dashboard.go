package dto

import "github.com/akademika/sekolahku-api/internal/models"

// AdminDashboardResponse aggregates system-wide counts and recent activity.
type AdminDashboardResponse struct {
	TotalStudents int                  `json:"total_students"`
	TotalTeachers int                  `json:"total_teachers"`
	TotalParents  int                  `json:"total_parents"`
	TotalClasses  int                  `json:"total_classes"`
	RecentUsers   []models.UserSummary `json:"recent_users"`
	RecentNews    []models.NewsDetail  `json:"recent_news"`
}

// TeacherDashboardResponse aggregates a teacher's own teaching activity.
type TeacherDashboardResponse struct {
	Teacher          models.TeacherDetail      `json:"teacher"`
	Classes          []models.ClassRoom        `json:"classes"`
	TotalStudents    int                       `json:"total_students"`
	RecentAttendance []models.AttendanceDetail `json:"recent_attendance"`
	RecentGrades     []models.GradeDetail      `json:"recent_grades"`
	UnreadMessages   int                       `json:"unread_messages"`
}

// StudentDashboardResponse aggregates a student's own records.
type StudentDashboardResponse struct {
	Student             models.StudentDetail      `json:"student"`
	UpcomingTodos       []models.Todo             `json:"upcoming_todos"`
	RecentGrades        []models.GradeDetail      `json:"recent_grades"`
	RecentAttendance    []models.AttendanceDetail `json:"recent_attendance"`
	RecentNews          []models.NewsDetail       `json:"recent_news"`
	UnreadNotifications int                       `json:"unread_notifications"`
}

// ParentDashboardResponse aggregates records across a parent's children.
type ParentDashboardResponse struct {
	Parent              models.ParentDetail       `json:"parent"`
	Children            []models.StudentDetail    `json:"children"`
	RecentGrades        []models.GradeDetail      `json:"recent_grades"`
	RecentAttendance    []models.AttendanceDetail `json:"recent_attendance"`
	UnreadMessages      int                       `json:"unread_messages"`
	UnreadNotifications int                       `json:"unread_notifications"`
}
