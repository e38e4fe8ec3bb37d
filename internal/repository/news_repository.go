package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akademika/sekolahku-api/internal/models"
)

// NewsRepository manages persistence for announcements.
type NewsRepository struct {
	db *sqlx.DB
}

// NewNewsRepository constructs a NewsRepository.
func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

const newsDetailQuery = `SELECT n.id, n.title, n.content, n.user_id, n.created_at, u.name AS author_name
        FROM news n
        JOIN users u ON u.id = n.user_id`

// ListRecent returns the newest announcements.
func (r *NewsRepository) ListRecent(ctx context.Context, limit int) ([]models.NewsDetail, error) {
	query := newsDetailQuery + " ORDER BY n.created_at DESC LIMIT $1"
	var news []models.NewsDetail
	if err := r.db.SelectContext(ctx, &news, query, limit); err != nil {
		return nil, fmt.Errorf("list recent news: %w", err)
	}
	return news, nil
}

// List returns a page of announcements, newest first, with the total count.
func (r *NewsRepository) List(ctx context.Context, page, pageSize int) ([]models.NewsDetail, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	query := fmt.Sprintf("%s ORDER BY n.created_at DESC LIMIT %d OFFSET %d", newsDetailQuery, pageSize, (page-1)*pageSize)
	var news []models.NewsDetail
	if err := r.db.SelectContext(ctx, &news, query); err != nil {
		return nil, 0, fmt.Errorf("list news: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM news"); err != nil {
		return nil, 0, fmt.Errorf("count news: %w", err)
	}
	return news, total, nil
}

// Create inserts a new announcement.
func (r *NewsRepository) Create(ctx context.Context, news *models.News) error {
	if news.ID == "" {
		news.ID = uuid.NewString()
	}
	if news.CreatedAt.IsZero() {
		news.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO news (id, title, content, user_id, created_at)
        VALUES (:id, :title, :content, :user_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, news); err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}
