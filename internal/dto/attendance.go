package dto

import "github.com/akademika/sekolahku-api/internal/models"

// AttendanceStats summarises a student's attendance record counts.
type AttendanceStats struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Rate    int `json:"rate"`
}

// AttendanceMonth groups records under a "January 2006" label. Groups keep
// the order the months were first seen in the date-descending record list.
type AttendanceMonth struct {
	Month   string                    `json:"month"`
	Records []models.AttendanceDetail `json:"records"`
}

// StudentAttendanceResponse is the full attendance view for one student.
type StudentAttendanceResponse struct {
	Student models.StudentDetail `json:"student"`
	Stats   AttendanceStats      `json:"stats"`
	Months  []AttendanceMonth    `json:"months"`
}
