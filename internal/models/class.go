package models

// ClassRoom groups students into a named class with a level and section.
type ClassRoom struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Level   string `db:"level" json:"level"`
	Section string `db:"section" json:"section"`
}

// Subject is a taught discipline. In this model each subject has exactly one
// teacher (via teachers.subject_id).
type Subject struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Code string `db:"code" json:"code"`
}

// ClassSubject links a class to one of its subjects. The join defines the
// visibility boundary for which subjects and teachers a student's views may
// reference.
type ClassSubject struct {
	ID        string `db:"id" json:"id"`
	ClassID   string `db:"class_id" json:"class_id"`
	SubjectID string `db:"subject_id" json:"subject_id"`
}
