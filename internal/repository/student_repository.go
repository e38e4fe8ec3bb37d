package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/akademika/sekolahku-api/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentDetailColumns = `s.id, s.user_id, s.nis, s.birth_date, s.gender, s.religion, s.address, s.class_id,
        u.name AS name, c.name AS class_name`

// FindByUserID resolves the student profile backing a user account. Returns
// sql.ErrNoRows when the profile row is missing.
func (r *StudentRepository) FindByUserID(ctx context.Context, userID string) (*models.StudentDetail, error) {
	query := fmt.Sprintf(`SELECT %s
        FROM students s
        JOIN users u ON u.id = s.user_id
        JOIN class_rooms c ON c.id = s.class_id
        WHERE s.user_id = $1`, studentDetailColumns)
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, userID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListByParentID returns the children linked to a parent via parent_students.
func (r *StudentRepository) ListByParentID(ctx context.Context, parentID string) ([]models.StudentDetail, error) {
	query := fmt.Sprintf(`SELECT %s
        FROM parent_students ps
        JOIN students s ON s.id = ps.student_id
        JOIN users u ON u.id = s.user_id
        JOIN class_rooms c ON c.id = s.class_id
        WHERE ps.parent_id = $1
        ORDER BY u.name ASC`, studentDetailColumns)
	var children []models.StudentDetail
	if err := r.db.SelectContext(ctx, &children, query, parentID); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return children, nil
}

// Count returns the total number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM students"); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// CountByClassIDs returns how many students belong to the given classes.
func (r *StudentRepository) CountByClassIDs(ctx context.Context, classIDs []string) (int, error) {
	if len(classIDs) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(classIDs))
	args := make([]interface{}, len(classIDs))
	for i, id := range classIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM students WHERE class_id IN (%s)", strings.Join(placeholders, ","))
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count students by class: %w", err)
	}
	return count, nil
}
