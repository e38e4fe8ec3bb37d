package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/akademika/sekolahku-api/internal/models"
)

// GradeRepository handles grade persistence. Every list method is scoped by
// a student, teacher or class filter; callers supply the already-authorized
// identifier.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

const gradeDetailColumns = `g.id, g.student_id, g.subject_id, g.teacher_id, g.value, g.type, g.description, g.created_at,
        subj.name AS subject_name, u.name AS student_name, c.name AS class_name`

const gradeDetailJoins = `FROM grades g
        JOIN subjects subj ON subj.id = g.subject_id
        JOIN students s ON s.id = g.student_id
        JOIN users u ON u.id = s.user_id
        JOIN class_rooms c ON c.id = s.class_id`

// ListByStudentAndSubject returns a student's grades in one subject, newest
// first.
func (r *GradeRepository) ListByStudentAndSubject(ctx context.Context, studentID, subjectID string) ([]models.GradeDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE g.student_id = $1 AND g.subject_id = $2
        ORDER BY g.created_at DESC`, gradeDetailColumns, gradeDetailJoins)
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query, studentID, subjectID); err != nil {
		return nil, fmt.Errorf("list grades by student and subject: %w", err)
	}
	return grades, nil
}

// ListRecentByStudent returns a student's newest grades.
func (r *GradeRepository) ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]models.GradeDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE g.student_id = $1
        ORDER BY g.created_at DESC LIMIT $2`, gradeDetailColumns, gradeDetailJoins)
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("list recent grades: %w", err)
	}
	return grades, nil
}

// ListRecentByStudents returns the newest grades across a set of students.
func (r *GradeRepository) ListRecentByStudents(ctx context.Context, studentIDs []string, limit int) ([]models.GradeDetail, error) {
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
        WHERE g.student_id IN (%s)
        ORDER BY g.created_at DESC LIMIT $%d`, gradeDetailColumns, gradeDetailJoins, strings.Join(placeholders, ","), len(args))
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query, args...); err != nil {
		return nil, fmt.Errorf("list recent grades by students: %w", err)
	}
	return grades, nil
}

// ListRecentByTeacher returns the newest grades given by a teacher.
func (r *GradeRepository) ListRecentByTeacher(ctx context.Context, teacherID string, limit int) ([]models.GradeDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE g.teacher_id = $1
        ORDER BY g.created_at DESC LIMIT $2`, gradeDetailColumns, gradeDetailJoins)
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query, teacherID, limit); err != nil {
		return nil, fmt.Errorf("list recent grades by teacher: %w", err)
	}
	return grades, nil
}

// ListByClassID returns every grade of every student in a class. Used by the
// report exporter.
func (r *GradeRepository) ListByClassID(ctx context.Context, classID string) ([]models.GradeDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s
        WHERE s.class_id = $1
        ORDER BY u.name ASC, subj.name ASC, g.created_at DESC`, gradeDetailColumns, gradeDetailJoins)
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query, classID); err != nil {
		return nil, fmt.Errorf("list grades by class: %w", err)
	}
	return grades, nil
}
