package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/akademika/sekolahku-api/internal/models"
)

// TeacherRepository manages persistence for teacher records.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByUserID resolves the teacher profile backing a user account. Returns
// sql.ErrNoRows when the profile row is missing.
func (r *TeacherRepository) FindByUserID(ctx context.Context, userID string) (*models.TeacherDetail, error) {
	const query = `SELECT t.id, t.user_id, t.nip, t.nik, t.subject_id, t.teaching_hours,
        u.name AS name, subj.name AS subject_name, subj.code AS subject_code
        FROM teachers t
        JOIN users u ON u.id = t.user_id
        JOIN subjects subj ON subj.id = t.subject_id
        WHERE t.user_id = $1`
	var detail models.TeacherDetail
	if err := r.db.GetContext(ctx, &detail, query, userID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByID fetches a teacher profile by its own ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.TeacherDetail, error) {
	const query = `SELECT t.id, t.user_id, t.nip, t.nik, t.subject_id, t.teaching_hours,
        u.name AS name, subj.name AS subject_name, subj.code AS subject_code
        FROM teachers t
        JOIN users u ON u.id = t.user_id
        JOIN subjects subj ON subj.id = t.subject_id
        WHERE t.id = $1`
	var detail models.TeacherDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Count returns the total number of teachers.
func (r *TeacherRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM teachers"); err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return count, nil
}
