package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
	"github.com/akademika/sekolahku-api/pkg/jobs"
)

type fakeNewsRepo struct {
	items   []models.NewsDetail
	total   int
	created []*models.News
}

func (f *fakeNewsRepo) List(_ context.Context, page, pageSize int) ([]models.NewsDetail, int, error) {
	return f.items, f.total, nil
}

func (f *fakeNewsRepo) Create(_ context.Context, news *models.News) error {
	news.ID = "n1"
	f.created = append(f.created, news)
	return nil
}

type fakeUserIDs struct {
	ids []string
}

func (f *fakeUserIDs) ListIDs(context.Context) ([]string, error) { return f.ids, nil }

type fakeNotificationWriter struct {
	userIDs []string
	title   string
}

func (f *fakeNotificationWriter) CreateForUsers(_ context.Context, userIDs []string, title, content string) error {
	f.userIDs = userIDs
	f.title = title
	return nil
}

type fakeQueue struct {
	enqueued []jobs.Job
}

func (f *fakeQueue) Enqueue(job jobs.Job) error {
	f.enqueued = append(f.enqueued, job)
	return nil
}

func TestNewsCreateRequiresAdmin(t *testing.T) {
	svc := NewNewsService(&fakeNewsRepo{}, &fakeUserIDs{}, &fakeNotificationWriter{}, &fakeQueue{}, nil, nil)

	_, err := svc.Create(context.Background(), &models.Session{UserID: "u1", Role: models.RoleTeacher}, dto.CreateNewsRequest{
		Title: "x", Content: "y",
	})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestNewsCreateEnqueuesFanout(t *testing.T) {
	repo := &fakeNewsRepo{}
	queue := &fakeQueue{}
	svc := NewNewsService(repo, &fakeUserIDs{}, &fakeNotificationWriter{}, queue, nil, nil)

	news, err := svc.Create(context.Background(), &models.Session{UserID: "admin", Role: models.RoleAdmin}, dto.CreateNewsRequest{
		Title:   "Exam week",
		Content: "Final exams start Monday.",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", news.UserID)
	require.Len(t, repo.created, 1)
	require.Len(t, queue.enqueued, 1)

	payload, ok := queue.enqueued[0].Payload.(NewsFanoutPayload)
	require.True(t, ok)
	assert.Equal(t, "n1", payload.NewsID)
	assert.Equal(t, "Exam week", payload.Title)
}

func TestNewsCreateValidation(t *testing.T) {
	repo := &fakeNewsRepo{}
	svc := NewNewsService(repo, &fakeUserIDs{}, &fakeNotificationWriter{}, &fakeQueue{}, nil, nil)

	_, err := svc.Create(context.Background(), &models.Session{UserID: "admin", Role: models.RoleAdmin}, dto.CreateNewsRequest{
		Title: "missing content",
	})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Empty(t, repo.created)
}

func TestNewsFanoutNotifiesAllUsers(t *testing.T) {
	writer := &fakeNotificationWriter{}
	svc := NewNewsService(&fakeNewsRepo{}, &fakeUserIDs{ids: []string{"u1", "u2", "u3"}}, writer, &fakeQueue{}, nil, nil)

	err := svc.HandleFanout(context.Background(), jobs.Job{
		ID:      "n1",
		Type:    "news_fanout",
		Payload: NewsFanoutPayload{NewsID: "n1", Title: "Exam week", Content: "..."},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, writer.userIDs)
	assert.Equal(t, "Exam week", writer.title)
}

func TestNewsListRequiresSession(t *testing.T) {
	svc := NewNewsService(&fakeNewsRepo{}, &fakeUserIDs{}, &fakeNotificationWriter{}, &fakeQueue{}, nil, nil)

	_, _, err := svc.List(context.Background(), nil, 1, 20)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestNewsListPagination(t *testing.T) {
	repo := &fakeNewsRepo{total: 42}
	svc := NewNewsService(repo, &fakeUserIDs{}, &fakeNotificationWriter{}, &fakeQueue{}, nil, nil)

	_, pagination, err := svc.List(context.Background(), &models.Session{UserID: "u1", Role: models.RoleStudent}, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page, "page clamps to 1")
	assert.Equal(t, 20, pagination.PageSize, "oversized page size falls back to default")
	assert.Equal(t, 42, pagination.TotalCount)
}
