package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// MessageRepository answers unread-count queries over direct messages.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository constructs a MessageRepository.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// CountUnreadByReceiver returns how many unread messages a user has.
func (r *MessageRepository) CountUnreadByReceiver(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = false`
	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return count, nil
}
