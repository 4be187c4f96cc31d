package domain

import "time"

// HabitType enumerates how a habit is tracked
type HabitType string

const (
	HabitTypeBoolean         HabitType = "BOOLEAN"          // Done / not done
	HabitTypeNumericDuration HabitType = "NUMERIC_DURATION" // Time spent
	HabitTypeNumericCount    HabitType = "NUMERIC_COUNT"    // Repetitions
)

// Valid reports whether t is one of the known habit types
func (t HabitType) Valid() bool {
	switch t {
	case HabitTypeBoolean, HabitTypeNumericDuration, HabitTypeNumericCount:
		return true
	}
	return false
}

// IsNumeric reports whether habits of this type carry a target value and unit
func (t HabitType) IsNumeric() bool {
	return t == HabitTypeNumericDuration || t == HabitTypeNumericCount
}

// Bounds of the decimal(10,2) target_value column
const (
	TargetValueMax   = 99999999.99
	TargetValueScale = 2
)

// TargetUnits lists the units accepted for numeric habits
var TargetUnits = []string{"hours", "minutes", "reps", "times"}

// Habit Model
type Habit struct {
	ID                uint      `gorm:"primaryKey" json:"id"`                               // Primary key
	UserID            uint      `gorm:"not null;index" json:"user_id"`                      // Owner
	Name              string    `gorm:"size:100;not null" json:"name"`                      // Habit name
	Description       string    `gorm:"type:text" json:"description"`                       // Description
	Category          string    `gorm:"size:50" json:"category"`                            // Free-form category
	HabitType         HabitType `gorm:"size:20;not null;default:BOOLEAN" json:"habit_type"` // Tracking type
	TargetValue       *float64  `gorm:"type:decimal(10,2)" json:"target_value"`             // Numeric target, nil for BOOLEAN
	TargetUnit        *string   `gorm:"size:20" json:"target_unit"`                         // Unit of the target, nil for BOOLEAN
	TargetFrequencyID uint      `gorm:"not null;index" json:"target_frequency_id"`          // Foreign key to FrequencyOption
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HabitWithFrequency is a Habit joined with the name of its frequency option
type HabitWithFrequency struct {
	Habit               `gorm:"embedded"`
	TargetFrequencyName string `json:"target_frequency_name"`
}
