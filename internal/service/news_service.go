package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
	"github.com/akademika/sekolahku-api/pkg/jobs"
)

type newsRepository interface {
	List(ctx context.Context, page, pageSize int) ([]models.NewsDetail, int, error)
	Create(ctx context.Context, news *models.News) error
}

type userIDLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type notificationWriter interface {
	CreateForUsers(ctx context.Context, userIDs []string, title, content string) error
}

type notificationEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// NewsFanoutPayload carries a published announcement to the notification
// workers.
type NewsFanoutPayload struct {
	NewsID  string
	Title   string
	Content string
}

// NewsService lists announcements and lets admins publish new ones. A publish
// fans out a notification to every user asynchronously, so a slow fan-out
// never delays the publish response.
type NewsService struct {
	news          newsRepository
	users         userIDLister
	notifications notificationWriter
	queue         notificationEnqueuer
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewNewsService constructs a NewsService.
func NewNewsService(news newsRepository, users userIDLister, notifications notificationWriter, queue notificationEnqueuer, validate *validator.Validate, logger *zap.Logger) *NewsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsService{
		news:          news,
		users:         users,
		notifications: notifications,
		queue:         queue,
		validator:     validate,
		logger:        logger,
	}
}

// SetQueue attaches the fan-out queue. The queue's handler is a method on
// this service, so the queue is built after the service and attached here.
func (s *NewsService) SetQueue(queue notificationEnqueuer) {
	s.queue = queue
}

// List returns a page of announcements, newest first, for any signed-in role.
func (s *NewsService) List(ctx context.Context, sess *models.Session, page, pageSize int) ([]models.NewsDetail, *models.Pagination, error) {
	if sess == nil || sess.UserID == "" {
		return nil, nil, appErrors.ErrUnauthorized
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	items, total, err := s.news.List(ctx, page, pageSize)
	if err != nil {
		return nil, nil, internalErr(err, "failed to list news")
	}
	pagination := &models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}
	return items, pagination, nil
}

// Create publishes an announcement and enqueues the notification fan-out.
// Admin only.
func (s *NewsService) Create(ctx context.Context, sess *models.Session, req dto.CreateNewsRequest) (*models.News, error) {
	if err := Authorize(sess, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	news := &models.News{
		Title:   req.Title,
		Content: req.Content,
		UserID:  sess.UserID,
	}
	if err := s.news.Create(ctx, news); err != nil {
		return nil, internalErr(err, "failed to create news")
	}

	if s.queue == nil {
		s.logger.Warn("notification queue not attached, skipping fanout",
			zap.String("news_id", news.ID))
		return news, nil
	}
	if err := s.queue.Enqueue(jobs.Job{
		ID:   news.ID,
		Type: "news_fanout",
		Payload: NewsFanoutPayload{
			NewsID:  news.ID,
			Title:   news.Title,
			Content: news.Content,
		},
	}); err != nil {
		// Publish already succeeded, so only log the fan-out failure.
		s.logger.Warn("failed to enqueue notification fanout",
			zap.String("news_id", news.ID), zap.Error(err))
	}
	return news, nil
}

// HandleFanout is the queue handler that writes one notification per user for
// a published announcement.
func (s *NewsService) HandleFanout(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(NewsFanoutPayload)
	if !ok {
		s.logger.Error("unexpected fanout payload", zap.String("job_id", job.ID))
		return nil
	}
	userIDs, err := s.users.ListIDs(ctx)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	if err := s.notifications.CreateForUsers(ctx, userIDs, payload.Title, payload.Content); err != nil {
		return err
	}
	s.logger.Info("news fanout complete",
		zap.String("news_id", payload.NewsID), zap.Int("recipients", len(userIDs)))
	return nil
}
