package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reward is a point award earned by a student.
type Reward struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;index:idx_reward_student_earned" json:"student_id"`
	Type        string    `gorm:"size:64;not null" json:"type"`
	Description string    `gorm:"type:text" json:"description"`
	Points      int       `gorm:"not null" json:"points"`
	EarnedAt    time.Time `gorm:"not null;index:idx_reward_student_earned" json:"earned_at"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
}

// Notification is a message addressed to a student.
type Notification struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	StudentID uint              `gorm:"not null;index" json:"student_id"`
	Title     string            `gorm:"size:255;not null" json:"title"`
	Message   string            `gorm:"type:text;not null" json:"message"`
	Type      string            `gorm:"size:32;not null;default:Info" json:"type"`
	IsRead    bool              `gorm:"not null;default:false" json:"is_read"`
	ReadAt    *time.Time        `json:"read_at"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}
