package models

import "time"

// Objective status labels. These are stored fields set by owners, not
// derived from progress.
const (
	ObjectiveOnTrack   = "on_track"
	ObjectiveAtRisk    = "at_risk"
	ObjectiveBehind    = "behind"
	ObjectiveCompleted = "completed"
)

// Objective is a qualitative goal within a cycle. Objectives form a tree via
// ParentID (company → department/team → individual). Progress is never
// persisted here; it is recomputed from owned KeyResults at read time.
type Objective struct {
	ID        string  `gorm:"primaryKey;size:32"`
	Title     string  `gorm:"not null"`
	ParentID  *string `gorm:"size:32;index"`
	OwnerID   string  `gorm:"size:32;index"`
	CycleID   string  `gorm:"size:32;index"`
	Status    string  `gorm:"size:16;default:on_track"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Parent     *Objective  `gorm:"foreignKey:ParentID"`
	Children   []Objective `gorm:"foreignKey:ParentID"`
	KeyResults []KeyResult `gorm:"foreignKey:ObjectiveID;constraint:OnDelete:CASCADE"`
}
