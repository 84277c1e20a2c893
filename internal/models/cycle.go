package models

import "time"

// Cycle statuses. Status is derived from dates by the lifecycle sweep and
// never set directly by user action.
const (
	CyclePlanning  = "planning"
	CycleActive    = "active"
	CycleCompleted = "completed"
)

// Cycle is a time-boxed planning period (typically a quarter). StartDate and
// EndDate are calendar days in YYYY-MM-DD form, interpreted in the
// organization's timezone.
type Cycle struct {
	ID        string `gorm:"primaryKey;size:32"`
	Name      string `gorm:"size:128;not null"`
	StartDate string `gorm:"size:10;not null"`
	EndDate   string `gorm:"size:10;not null"`
	Status    string `gorm:"size:16;default:planning;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Objectives []Objective `gorm:"foreignKey:CycleID"`
}

// CycleTransition is an audit record written whenever the sweep moves a
// cycle to a new status.
type CycleTransition struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	CycleID   string `gorm:"size:32;index"`
	OldStatus string `gorm:"size:16"`
	NewStatus string `gorm:"size:16"`
	CreatedAt time.Time
}
