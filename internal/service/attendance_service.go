package service

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/akademika/sekolahku-api/internal/dto"
	"github.com/akademika/sekolahku-api/internal/models"
	appErrors "github.com/akademika/sekolahku-api/pkg/errors"
)

type attendanceLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceDetail, error)
}

// AttendanceService composes the student attendance view.
type AttendanceService struct {
	students   studentResolver
	attendance attendanceLister
	logger     *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(students studentResolver, attendance attendanceLister, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{students: students, attendance: attendance, logger: logger}
}

// StudentAttendance returns the acting student's full attendance history with
// summary stats and month groupings.
func (s *AttendanceService) StudentAttendance(ctx context.Context, sess *models.Session) (*dto.StudentAttendanceResponse, error) {
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

	records, err := s.attendance.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}

	return &dto.StudentAttendanceResponse{
		Student: *student,
		Stats:   attendanceStats(records),
		Months:  groupByMonth(records),
	}, nil
}

// attendanceStats counts statuses and derives the attendance rate:
// round(present/total*100), 0 when there are no records.
func attendanceStats(records []models.AttendanceDetail) dto.AttendanceStats {
	stats := dto.AttendanceStats{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case models.AttendancePresent:
			stats.Present++
		case models.AttendanceLate:
			stats.Late++
		case models.AttendanceAbsent:
			stats.Absent++
		}
	}
	if stats.Total > 0 {
		stats.Rate = int(math.Round(float64(stats.Present) / float64(stats.Total) * 100))
	}
	return stats
}

// groupByMonth buckets records under "January 2006" labels, keeping the
// order months are first seen in the input.
func groupByMonth(records []models.AttendanceDetail) []dto.AttendanceMonth {
	index := make(map[string]int, 8)
	months := make([]dto.AttendanceMonth, 0, 8)
	for _, rec := range records {
		label := rec.Date.Format("January 2006")
		i, ok := index[label]
		if !ok {
			i = len(months)
			index[label] = i
			months = append(months, dto.AttendanceMonth{Month: label})
		}
		months[i].Records = append(months[i].Records, rec)
	}
	return months
}
