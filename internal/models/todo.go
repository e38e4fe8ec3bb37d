package models

import "time"

// TodoPriority represents the urgency label on a to-do item.
type TodoPriority string

const (
	TodoPriorityLow    TodoPriority = "low"
	TodoPriorityMedium TodoPriority = "medium"
	TodoPriorityHigh   TodoPriority = "high"
)

// Valid returns true when the priority is a supported value.
func (p TodoPriority) Valid() bool {
	switch p {
	case TodoPriorityLow, TodoPriorityMedium, TodoPriorityHigh:
		return true
	default:
		return false
	}
}

// Todo is a task owned by exactly one student. Only the owning student may
// mutate it.
type Todo struct {
	ID          string       `db:"id" json:"id"`
	StudentID   string       `db:"student_id" json:"student_id"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description"`
	DueDate     time.Time    `db:"due_date" json:"due_date"`
	Priority    TodoPriority `db:"priority" json:"priority"`
	IsCompleted bool         `db:"is_completed" json:"is_completed"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}
