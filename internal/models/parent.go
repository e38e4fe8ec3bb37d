package models

// Parent extends a user with guardian-specific fields.
type Parent struct {
	ID      string `db:"id" json:"id"`
	UserID  string `db:"user_id" json:"user_id"`
	NIK     string `db:"nik" json:"nik"`
	Address string `db:"address" json:"address"`
}

// ParentStudent links a parent to one of their children. A parent may have
// several children and a student several parents.
type ParentStudent struct {
	ID        string `db:"id" json:"id"`
	ParentID  string `db:"parent_id" json:"parent_id"`
	StudentID string `db:"student_id" json:"student_id"`
}

// ParentDetail joins the parent with its user row.
type ParentDetail struct {
	Parent
	Name string `db:"name" json:"name"`
}
