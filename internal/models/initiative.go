package models

import "time"

// Initiative statuses.
const (
	InitiativeNotStarted = "not_started"
	InitiativeInProgress = "in_progress"
	InitiativeCompleted  = "completed"
	InitiativeCancelled  = "cancelled"
)

// Initiative is a project-level effort linked to exactly one KeyResult. Its
// Progress is tracked independently and is not derived from the key result.
type Initiative struct {
	ID          string  `gorm:"primaryKey;size:32"`
	KeyResultID string  `gorm:"size:32;index;not null"`
	Title       string  `gorm:"not null"`
	Progress    float64 `gorm:"default:0"`
	Status      string  `gorm:"size:16;default:not_started"`
	Priority    string  `gorm:"size:8;default:medium"`
	DueDate     *string `gorm:"size:10"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tasks []Task `gorm:"foreignKey:InitiativeID"`
}
