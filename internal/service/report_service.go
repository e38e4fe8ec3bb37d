package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
	"github.com/akademika/sekolahku-api/pkg/export"
	"github.com/akademika/sekolahku-api/pkg/jobs"
	"github.com/akademika/sekolahku-api/pkg/storage"
)

type reportRepository interface {
	Create(ctx context.Context, job *models.ReportJob) error
	FindByID(ctx context.Context, id string) (*models.ReportJob, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkDone(ctx context.Context, id, filePath string) error
	MarkFailed(ctx context.Context, id, message string) error
}

type teacherResolver interface {
	FindByUserID(ctx context.Context, userID string) (*models.TeacherDetail, error)
}

type reportClassRepository interface {
	FindByID(ctx context.Context, id string) (*models.ClassRoom, error)
	ListSubjectsByClassID(ctx context.Context, classID string) ([]models.Subject, error)
}

type classGradeLister interface {
	ListByClassID(ctx context.Context, classID string) ([]models.GradeDetail, error)
}

type reportEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// ReportService runs the asynchronous grade-report pipeline: a create call
// persists a queued job and hands it to the worker pool, the worker renders
// the file, and a later status call returns a signed download link.
type ReportService struct {
	reports   reportRepository
	teachers  teacherResolver
	classes   reportClassRepository
	grades    classGradeLister
	queue     reportEnqueuer
	store     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(reports reportRepository, teachers teacherResolver, classes reportClassRepository, grades classGradeLister, queue reportEnqueuer, store *storage.LocalStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reports:   reports,
		teachers:  teachers,
		classes:   classes,
		grades:    grades,
		queue:     queue,
		store:     store,
		signer:    signer,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

// SetQueue attaches the export queue. The queue's handler is a method on
// this service, so the queue is built after the service and attached here.
func (s *ReportService) SetQueue(queue reportEnqueuer) {
	s.queue = queue
}

// authorizeClass checks that the caller may export the given class. Admins
// may export any class; teachers only classes taking their subject.
func (s *ReportService) authorizeClass(ctx context.Context, sess *models.Session, classID string) error {
	if sess == nil || sess.UserID == "" {
		return appErrors.ErrUnauthorized
	}
	switch sess.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleTeacher:
		teacher, err := s.teachers.FindByUserID(ctx, sess.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.ErrProfileMissing
			}
			return internalErr(err, "failed to resolve teacher")
		}
		subjects, err := s.classes.ListSubjectsByClassID(ctx, classID)
		if err != nil {
			return internalErr(err, "failed to list class subjects")
		}
		for _, subject := range subjects {
			if subject.ID == teacher.SubjectID {
				return nil
			}
		}
		return appErrors.ErrForbidden
	default:
		return appErrors.ErrForbidden
	}
}

// CreateJob validates the request, persists a queued job and enqueues it.
func (s *ReportService) CreateJob(ctx context.Context, sess *models.Session, req dto.CreateReportRequest) (*dto.ReportJobResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if err := s.authorizeClass(ctx, sess, req.ClassID); err != nil {
		return nil, err
	}
	if _, err := s.classes.FindByID(ctx, req.ClassID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, internalErr(err, "failed to fetch class")
	}

	job := &models.ReportJob{
		ClassID:   req.ClassID,
		Format:    models.ReportFormat(req.Format),
		Status:    models.ReportStatusQueued,
		CreatedBy: sess.UserID,
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "report workers unavailable")
	}
	if err := s.reports.Create(ctx, job); err != nil {
		return nil, internalErr(err, "failed to create report job")
	}
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "grade_report", Payload: job.ID}); err != nil {
		// The row stays queued; a restart of the workers can pick it up.
		s.logger.Error("failed to enqueue report job",
			zap.String("report_id", job.ID), zap.Error(err))
		return nil, internalErr(err, "failed to enqueue report job")
	}
	return s.describe(job), nil
}

// Status returns the state of a job the caller created. Admins may inspect
// any job. Finished jobs include a signed download link.
func (s *ReportService) Status(ctx context.Context, sess *models.Session, id string) (*dto.ReportJobResponse, error) {
	if sess == nil || sess.UserID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	job, err := s.reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, internalErr(err, "failed to fetch report")
	}
	if job.CreatedBy != sess.UserID && sess.Role != models.RoleAdmin {
		// A foreign job reads as nonexistent.
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
	}
	return s.describe(job), nil
}

// Download validates a signed token and opens the rendered file. The token
// itself is the credential; no session is required.
func (s *ReportService) Download(ctx context.Context, token string) (*os.File, *models.ReportJob, error) {
	reportID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	job, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, nil, internalErr(err, "failed to fetch report")
	}
	if job.Status != models.ReportStatusDone || job.FilePath == "" || job.FilePath != relPath {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "report file not available")
	}
	file, err := s.store.Open(job.FilePath)
	if err != nil {
		return nil, nil, internalErr(err, "failed to open report file")
	}
	return file, job, nil
}

// HandleExport is the queue handler that renders a report file. A failure is
// recorded on the row and returned so the queue retries it.
func (s *ReportService) HandleExport(ctx context.Context, qjob jobs.Job) error {
	reportID, ok := qjob.Payload.(string)
	if !ok || reportID == "" {
		s.logger.Error("unexpected report payload", zap.String("job_id", qjob.ID))
		return nil
	}
	if err := s.export(ctx, reportID); err != nil {
		if markErr := s.reports.MarkFailed(ctx, reportID, err.Error()); markErr != nil {
			s.logger.Error("failed to mark report failed",
				zap.String("report_id", reportID), zap.Error(markErr))
		}
		return err
	}
	return nil
}

func (s *ReportService) export(ctx context.Context, reportID string) error {
	job, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return fmt.Errorf("fetch report job: %w", err)
	}
	if err := s.reports.MarkProcessing(ctx, job.ID); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	class, err := s.classes.FindByID(ctx, job.ClassID)
	if err != nil {
		return fmt.Errorf("fetch class: %w", err)
	}
	grades, err := s.grades.ListByClassID(ctx, job.ClassID)
	if err != nil {
		return fmt.Errorf("list class grades: %w", err)
	}

	dataset := buildGradeDataset(grades)
	var rendered []byte
	switch job.Format {
	case models.ReportFormatPDF:
		rendered, err = s.pdf.Render(dataset, fmt.Sprintf("Grade Report %s", class.Name))
	default:
		rendered, err = s.csv.Render(dataset)
	}
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	filename := fmt.Sprintf("%s.%s", job.ID, job.Format)
	relPath, err := s.store.Save(filename, rendered)
	if err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	if err := s.reports.MarkDone(ctx, job.ID, relPath); err != nil {
		return fmt.Errorf("mark done: %w", err)
	}
	s.logger.Info("report rendered",
		zap.String("report_id", job.ID), zap.String("class_id", job.ClassID),
		zap.String("format", string(job.Format)), zap.Int("rows", len(dataset.Rows)))
	return nil
}

// buildGradeDataset aggregates raw grade rows into one row per student and
// subject with the grade count and average score, preserving first-seen
// order.
func buildGradeDataset(grades []models.GradeDetail) export.Dataset {
	type bucket struct {
		student string
		subject string
		total   float64
		count   int
	}
	index := make(map[string]int)
	var buckets []bucket
	for _, g := range grades {
		key := g.StudentID + "|" + g.SubjectID
		i, seen := index[key]
		if !seen {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, bucket{student: g.StudentName, subject: g.SubjectName})
		}
		buckets[i].total += g.Value
		buckets[i].count++
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "Subject", "Grades", "Average"},
		Rows:    make([]map[string]string, 0, len(buckets)),
	}
	for _, b := range buckets {
		avg := b.total / float64(b.count)
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student": b.student,
			"Subject": b.subject,
			"Grades":  strconv.Itoa(b.count),
			"Average": strconv.FormatFloat(avg, 'f', 2, 64),
		})
	}
	return dataset
}

func (s *ReportService) describe(job *models.ReportJob) *dto.ReportJobResponse {
	resp := &dto.ReportJobResponse{
		ID:           job.ID,
		ClassID:      job.ClassID,
		Format:       job.Format,
		Status:       job.Status,
		ErrorMessage: job.ErrorMessage,
		CreatedAt:    job.CreatedAt,
		FinishedAt:   job.FinishedAt,
	}
	if job.Status == models.ReportStatusDone && job.FilePath != "" {
		token, expiresAt, err := s.signer.Generate(job.ID, job.FilePath)
		if err != nil {
			s.logger.Warn("failed to sign download url",
				zap.String("report_id", job.ID), zap.Error(err))
			return resp
		}
		resp.DownloadURL = fmt.Sprintf("/api/v1/reports/download?token=%s", token)
		resp.ExpiresAt = &expiresAt
	}
	return resp
}
