package domain

import "time"

// FrequencyOption Model
//
// A nil UserID marks a system default shared by every user.
type FrequencyOption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                                                                 // Primary key
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`                                             // Display name, unique
	Description *string   `gorm:"type:text" json:"description"`                                                         // Optional description
	UserID      *uint     `gorm:"index" json:"user_id"`                                                                 // Owner, nil for defaults
	IsDefault   bool      `gorm:"not null;default:true" json:"is_default"`                                              // System default flag
	Habits      []Habit   `gorm:"foreignKey:TargetFrequencyID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"` // Referencing habits
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the option is a custom option of userID
func (f *FrequencyOption) IsOwnedBy(userID uint) bool {
	return f.UserID != nil && *f.UserID == userID
}

// DefaultFrequencyNames are the system options seeded by the migration
var DefaultFrequencyNames = []string{
	"毎日",
	"週に1回",
	"週に2回",
	"週に3回",
	"週に4回",
	"週に5回",
	"週に6回",
	"毎週",
	"隔週",
	"毎月",
	"毎年",
}
