package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akademika/sekolahku-api/internal/models"
)

// NotificationRepository manages persistence for user notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CountUnreadByUser returns how many unread notifications a user has.
func (r *NotificationRepository) CountUnreadByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// CreateForUsers inserts one unread notification per user in a single
// transaction. Used by the announcement fan-out worker.
func (r *NotificationRepository) CreateForUsers(ctx context.Context, userIDs []string, title, content string) error {
	if len(userIDs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	const query = `INSERT INTO notifications (id, user_id, title, content, is_read, created_at)
        VALUES (:id, :user_id, :title, :content, :is_read, :created_at)`
	for _, userID := range userIDs {
		notification := models.Notification{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     title,
			Content:   content,
			IsRead:    false,
			CreatedAt: now,
		}
		if _, err := tx.NamedExecContext(ctx, query, notification); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("create notification: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit notifications: %w", err)
	}
	return nil
}
