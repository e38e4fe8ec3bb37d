package models

// Teacher extends a user with staff-specific fields. Exactly one row per
// teacher-role user; each teacher teaches a single subject.
type Teacher struct {
	ID            string `db:"id" json:"id"`
	UserID        string `db:"user_id" json:"user_id"`
	NIP           string `db:"nip" json:"nip"`
	NIK           string `db:"nik" json:"nik"`
	SubjectID     string `db:"subject_id" json:"subject_id"`
	TeachingHours int    `db:"teaching_hours" json:"teaching_hours"`
}

// TeacherDetail joins the teacher with its user and subject for display.
type TeacherDetail struct {
	Teacher
	Name        string `db:"name" json:"name"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	SubjectCode string `db:"subject_code" json:"subject_code"`
}
