package dto

import "github.com/akademika/sekolahku-api/internal/models"

// SubjectGrades groups a student's grades under one class subject.
type SubjectGrades struct {
	Subject models.Subject       `json:"subject"`
	Grades  []models.GradeDetail `json:"grades"`
	Average float64              `json:"average"`
	Passing bool                 `json:"passing"`
}

// StudentGradesResponse is the full grades view for one student.
type StudentGradesResponse struct {
	Student        models.StudentDetail `json:"student"`
	Subjects       []SubjectGrades      `json:"subjects"`
	OverallAverage float64              `json:"overall_average"`
}
