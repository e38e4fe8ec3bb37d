package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
)

type studentResolver interface {
	FindByUserID(ctx context.Context, userID string) (*models.StudentDetail, error)
}

type classSubjectLister interface {
	ListSubjectsByClassID(ctx context.Context, classID string) ([]models.Subject, error)
}

type gradeLister interface {
	ListByStudentAndSubject(ctx context.Context, studentID, subjectID string) ([]models.GradeDetail, error)
}

// GradeService composes the student grades view.
type GradeService struct {
	students studentResolver
	classes  classSubjectLister
	grades   gradeLister
	logger   *zap.Logger
}

// NewGradeService constructs a GradeService.
func NewGradeService(students studentResolver, classes classSubjectLister, grades gradeLister, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{students: students, classes: classes, grades: grades, logger: logger}
}

// StudentGrades returns the acting student's grades grouped by the subjects
// of their class. The class_subjects join bounds which subjects appear,
// regardless of stray grade rows.
func (s *GradeService) StudentGrades(ctx context.Context, sess *models.Session) (*dto.StudentGradesResponse, error) {
	if err := Authorize(sess, models.RoleStudent); err != nil {
		return nil, err
	}
	student, err := s.students.FindByUserID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileMissing
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
	}

	subjects, err := s.classes.ListSubjectsByClassID(ctx, student.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class subjects")
	}

	grouped := make([]dto.SubjectGrades, 0, len(subjects))
	for _, subject := range subjects {
		grades, err := s.grades.ListByStudentAndSubject(ctx, student.ID, subject.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
		}
		avg := averageGrade(grades)
		grouped = append(grouped, dto.SubjectGrades{
			Subject: subject,
			Grades:  grades,
			Average: avg,
			Passing: avg >= models.PassThreshold,
		})
	}

	return &dto.StudentGradesResponse{
		Student:        *student,
		Subjects:       grouped,
		OverallAverage: overallAverage(grouped),
	}, nil
}

// averageGrade is the arithmetic mean of the grade values, 0 when empty.
func averageGrade(grades []models.GradeDetail) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += g.Value
	}
	return sum / float64(len(grades))
}

// overallAverage is the mean of the per-subject averages, 0 when there are
// no subjects. Subjects without grades contribute their zero average.
func overallAverage(subjects []dto.SubjectGrades) float64 {
	if len(subjects) == 0 {
		return 0
	}
	var sum float64
	for _, s := range subjects {
		sum += s.Average
	}
	return sum / float64(len(subjects))
}
