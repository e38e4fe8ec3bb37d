package models

import "time"

// Student extends a user with learner-specific fields. Exactly one row per
// student-role user.
type Student struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	NIS       string    `db:"nis" json:"nis"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
	Gender    string    `db:"gender" json:"gender"`
	Religion  string    `db:"religion" json:"religion"`
	Address   string    `db:"address" json:"address"`
	ClassID   string    `db:"class_id" json:"class_id"`
}

// StudentDetail joins the student with its user and class for display.
type StudentDetail struct {
	Student
	Name      string `db:"name" json:"name"`
	ClassName string `db:"class_name" json:"class_name"`
}
