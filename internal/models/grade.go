package models

import "time"

// PassThreshold is the fixed display threshold: values at or above it render
// as passing. Nothing is enforced against it.
const PassThreshold = 70.0

// Grade records a single assessment result for a student in a subject.
type Grade struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	Value       float64   `db:"value" json:"value"`
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// GradeDetail joins the grade with subject and student names for listings.
type GradeDetail struct {
	Grade
	SubjectName string `db:"subject_name" json:"subject_name"`
	StudentName string `db:"student_name" json:"student_name"`
	ClassName   string `db:"class_name" json:"class_name"`
}
