package domain

import "time"

// User Model
type User struct {
	ID               uint              `gorm:"primaryKey" json:"id"`                                   // Primary key
	Username         string            `gorm:"size:50;uniqueIndex;not null" json:"username"`           // Unique username
	PasswordHash     string            `gorm:"type:text;not null" json:"-"`                            // bcrypt hash, never serialized
	Habits           []Habit           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Owned habits
	FrequencyOptions []FrequencyOption `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // User-defined frequency options
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
