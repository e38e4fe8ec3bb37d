package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
)

type fakeReportRepo struct {
	jobs map[string]*models.ReportJob
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{jobs: make(map[string]*models.ReportJob)}
}

func (f *fakeReportRepo) Create(_ context.Context, job *models.ReportJob) error {
	if job.ID == "" {
		job.ID = "r1"
	}
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeReportRepo) FindByID(_ context.Context, id string) (*models.ReportJob, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (f *fakeReportRepo) MarkProcessing(_ context.Context, id string) error {
	f.jobs[id].Status = models.ReportStatusProcessing
	return nil
}

func (f *fakeReportRepo) MarkDone(_ context.Context, id, filePath string) error {
	f.jobs[id].Status = models.ReportStatusDone
	f.jobs[id].FilePath = filePath
	return nil
}

func (f *fakeReportRepo) MarkFailed(_ context.Context, id, message string) error {
	f.jobs[id].Status = models.ReportStatusFailed
	f.jobs[id].ErrorMessage = message
	return nil
}

type fakeReportClasses struct {
	class    *models.ClassRoom
	subjects []models.Subject
}

func (f *fakeReportClasses) FindByID(context.Context, string) (*models.ClassRoom, error) {
	if f.class == nil {
		return nil, sql.ErrNoRows
	}
	return f.class, nil
}

func (f *fakeReportClasses) ListSubjectsByClassID(context.Context, string) ([]models.Subject, error) {
	return f.subjects, nil
}

type fakeClassGrades struct {
	grades []models.GradeDetail
}

func (f *fakeClassGrades) ListByClassID(context.Context, string) ([]models.GradeDetail, error) {
	return f.grades, nil
}

func classGrade(studentID, studentName, subjectID, subjectName string, value float64) models.GradeDetail {
	return models.GradeDetail{
		Grade:       models.Grade{StudentID: studentID, SubjectID: subjectID, Value: value},
		StudentName: studentName,
		SubjectName: subjectName,
	}
}

func newReportService(repo *fakeReportRepo, teachers teacherResolver, classes reportClassRepository) *ReportService {
	svc := NewReportService(repo, teachers, classes, &fakeClassGrades{}, nil, nil, nil, nil, nil)
	svc.SetQueue(&fakeQueue{})
	return svc
}

func TestReportCreateTeacherOwnSubjectOnly(t *testing.T) {
	teacher := &models.TeacherDetail{Teacher: models.Teacher{ID: "t1", SubjectID: "math"}}
	classes := &fakeReportClasses{
		class:    &models.ClassRoom{ID: "c1", Name: "X IPA 1"},
		subjects: []models.Subject{{ID: "bio"}, {ID: "math"}},
	}
	repo := newFakeReportRepo()
	svc := newReportService(repo, &fakeTeacherStore{teacher: teacher}, classes)

	res, err := svc.CreateJob(context.Background(), &models.Session{UserID: "u1", Role: models.RoleTeacher}, dto.CreateReportRequest{
		ClassID: "c1", Format: "csv",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusQueued, res.Status)

	// A class not taking the teacher's subject is off limits.
	classes.subjects = []models.Subject{{ID: "bio"}}
	_, err = svc.CreateJob(context.Background(), &models.Session{UserID: "u1", Role: models.RoleTeacher}, dto.CreateReportRequest{
		ClassID: "c1", Format: "csv",
	})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestReportCreateStudentForbidden(t *testing.T) {
	svc := newReportService(newFakeReportRepo(), &fakeTeacherStore{}, &fakeReportClasses{})

	_, err := svc.CreateJob(context.Background(), &models.Session{UserID: "u1", Role: models.RoleStudent}, dto.CreateReportRequest{
		ClassID: "c1", Format: "csv",
	})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestReportStatusOwnership(t *testing.T) {
	repo := newFakeReportRepo()
	repo.jobs["r1"] = &models.ReportJob{ID: "r1", CreatedBy: "owner", Status: models.ReportStatusQueued}
	svc := newReportService(repo, &fakeTeacherStore{}, &fakeReportClasses{})

	// A foreign job reads as nonexistent.
	_, err := svc.Status(context.Background(), &models.Session{UserID: "other", Role: models.RoleTeacher}, "r1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	res, err := svc.Status(context.Background(), &models.Session{UserID: "owner", Role: models.RoleTeacher}, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", res.ID)

	// Admins may inspect any job.
	_, err = svc.Status(context.Background(), &models.Session{UserID: "admin", Role: models.RoleAdmin}, "r1")
	assert.NoError(t, err)
}

func TestBuildGradeDataset(t *testing.T) {
	grades := []models.GradeDetail{
		classGrade("s1", "Budi", "math", "Mathematics", 80),
		classGrade("s1", "Budi", "math", "Mathematics", 90),
		classGrade("s1", "Budi", "bio", "Biology", 75),
		classGrade("s2", "Sari", "math", "Mathematics", 60),
	}

	dataset := buildGradeDataset(grades)
	assert.Equal(t, []string{"Student", "Subject", "Grades", "Average"}, dataset.Headers)
	require.Len(t, dataset.Rows, 3)
	assert.Equal(t, map[string]string{"Student": "Budi", "Subject": "Mathematics", "Grades": "2", "Average": "85.00"}, dataset.Rows[0])
	assert.Equal(t, map[string]string{"Student": "Budi", "Subject": "Biology", "Grades": "1", "Average": "75.00"}, dataset.Rows[1])
	assert.Equal(t, map[string]string{"Student": "Sari", "Subject": "Mathematics", "Grades": "1", "Average": "60.00"}, dataset.Rows[2])
}

func TestBuildGradeDatasetEmpty(t *testing.T) {
	dataset := buildGradeDataset(nil)
	assert.Empty(t, dataset.Rows)
}
