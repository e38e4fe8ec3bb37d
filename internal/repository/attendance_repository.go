package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/akademika/sekolahku-api/internal/models"
)

// AttendanceRepository handles attendance persistence, always scoped by a
// student or teacher identifier.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceDetailColumns = `a.id, a.student_id, a.subject_id, a.teacher_id, a.date, a.status,
        subj.name AS subject_name, u.name AS student_name, c.name AS class_name`

const attendanceDetailJoins = `FROM attendances a
        JOIN subjects subj ON subj.id = a.subject_id
        JOIN students s ON s.id = a.student_id
        JOIN users u ON u.id = s.user_id
        JOIN class_rooms c ON c.id = s.class_id`

// ListByStudent returns a student's full attendance history, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE a.student_id = $1
        ORDER BY a.date DESC`, attendanceDetailColumns, attendanceDetailJoins)
	var records []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListRecentByStudent returns a student's newest attendance records.
func (r *AttendanceRepository) ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]models.AttendanceDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE a.student_id = $1
        ORDER BY a.date DESC LIMIT $2`, attendanceDetailColumns, attendanceDetailJoins)
	var records []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &records, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("list recent attendance: %w", err)
	}
	return records, nil
}

// ListRecentByStudents returns the newest attendance across a set of students.
func (r *AttendanceRepository) ListRecentByStudents(ctx context.Context, studentIDs []string, limit int) ([]models.AttendanceDetail, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(studentIDs))
	args := make([]interface{}, len(studentIDs)+1)
	for i, id := range studentIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	args[len(args)-1] = limit
	query := fmt.Sprintf(`SELECT %s %s
        WHERE a.student_id IN (%s)
        ORDER BY a.date DESC LIMIT $%d`, attendanceDetailColumns, attendanceDetailJoins, strings.Join(placeholders, ","), len(args))
	var records []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list recent attendance by students: %w", err)
	}
	return records, nil
}

// ListRecentByTeacher returns the newest attendance taken by a teacher.
func (r *AttendanceRepository) ListRecentByTeacher(ctx context.Context, teacherID string, limit int) ([]models.AttendanceDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE a.teacher_id = $1
        ORDER BY a.date DESC LIMIT $2`, attendanceDetailColumns, attendanceDetailJoins)
	var records []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &records, query, teacherID, limit); err != nil {
		return nil, fmt.Errorf("list recent attendance by teacher: %w", err)
	}
	return records, nil
}
