package models

import "time"

// Task statuses.
const (
	TaskNotStarted = "not_started"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskCancelled  = "cancelled"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a unit of work, optionally under an Initiative, assigned to a
// single person.
type Task struct {
	ID           string  `gorm:"primaryKey;size:32"`
	InitiativeID *string `gorm:"size:32;index"`
	AssigneeID   string  `gorm:"size:32;index"`
	Title        string  `gorm:"not null"`
	Status       string  `gorm:"size:16;default:not_started;index"`
	Priority     string  `gorm:"size:8;default:medium"`
	DueDate      *string `gorm:"size:10"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
