package models

import "time"

// Measurement types govern how a key result's progress percentage is
// computed from its numeric state.
const (
	MeasureIncreaseTo      = "increase_to"
	MeasureDecreaseTo      = "decrease_to"
	MeasureAchieveOrNot    = "achieve_or_not"
	MeasureShouldStayAbove = "should_stay_above"
	MeasureShouldStayBelow = "should_stay_below"
)

// KeyResult is a measurable sub-goal under an Objective. The meaning of
// BaseValue/TargetValue/CurrentValue depends on MeasurementType; Achieved is
// meaningful only for achieve_or_not.
type KeyResult struct {
	ID              string  `gorm:"primaryKey;size:32"`
	ObjectiveID     string  `gorm:"size:32;index;not null"`
	Title           string  `gorm:"not null"`
	MeasurementType string  `gorm:"size:24;default:increase_to"`
	BaseValue       float64 `gorm:"default:0"`
	TargetValue     float64 `gorm:"default:0"`
	CurrentValue    float64 `gorm:"default:0"`
	Achieved        bool    `gorm:"default:false"`
	DueDate         *string `gorm:"size:10"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Initiatives []Initiative `gorm:"foreignKey:KeyResultID"`
	CheckIns    []CheckIn    `gorm:"foreignKey:KeyResultID"`
}

// CheckIn is an append-only value update against a key result. The latest
// check-in's value is mirrored into KeyResult.CurrentValue on write.
type CheckIn struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	KeyResultID string  `gorm:"size:32;index"`
	Value       float64
	Note        string `gorm:"type:text"`
	AuthorID    string `gorm:"size:32"`
	CreatedAt   time.Time
}
