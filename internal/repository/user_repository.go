package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/akademika/sekolahku-api/internal/models"
)

// UserRepository manages persistence for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername fetches a user by its unique username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT id, name, username, email, password_hash, role, phone, created_at
        FROM users WHERE username = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID fetches a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, name, username, email, password_hash, role, phone, created_at
        FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListRecent returns the most recently created users, newest first.
func (r *UserRepository) ListRecent(ctx context.Context, limit int) ([]models.UserSummary, error) {
	const query = `SELECT id, name, username, role, created_at
        FROM users ORDER BY created_at DESC LIMIT $1`
	var users []models.UserSummary
	if err := r.db.SelectContext(ctx, &users, query, limit); err != nil {
		return nil, fmt.Errorf("list recent users: %w", err)
	}
	return users, nil
}

// ListIDs returns every user ID. Used by the notification fan-out.
func (r *UserRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, "SELECT id FROM users"); err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	return ids, nil
}
