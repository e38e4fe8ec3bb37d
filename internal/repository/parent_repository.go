package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/akademika/sekolahku-api/internal/models"
)

// ParentRepository manages persistence for parent records.
type ParentRepository struct {
	db *sqlx.DB
}

// NewParentRepository constructs a ParentRepository.
func NewParentRepository(db *sqlx.DB) *ParentRepository {
	return &ParentRepository{db: db}
}

// FindByUserID resolves the parent profile backing a user account. Returns
// sql.ErrNoRows when the profile row is missing.
func (r *ParentRepository) FindByUserID(ctx context.Context, userID string) (*models.ParentDetail, error) {
	const query = `SELECT p.id, p.user_id, p.nik, p.address, u.name AS name
        FROM parents p
        JOIN users u ON u.id = p.user_id
        WHERE p.user_id = $1`
	var detail models.ParentDetail
	if err := r.db.GetContext(ctx, &detail, query, userID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Count returns the total number of parents.
func (r *ParentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM parents"); err != nil {
		return 0, fmt.Errorf("count parents: %w", err)
	}
	return count, nil
}
