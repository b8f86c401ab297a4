package models

import (
	"strings"
	"time"
)

// DefaultAvatarURL is used when a user has not uploaded an avatar.
const DefaultAvatarURL = "/images/avatar.png"

// User represents an account that owns a student profile.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName string    `gorm:"size:128;not null" json:"first_name"`
	LastName  string    `gorm:"size:128;not null" json:"last_name"`
	Role      string    `gorm:"size:32;not null;default:student" json:"role"`
	Avatar    string    `gorm:"size:512" json:"avatar"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins the first and last name of the user.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Student represents a learner enrolled in courses.
type Student struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	StudentNumber string     `gorm:"size:64;uniqueIndex;not null" json:"student_number"`
	Group         string     `gorm:"column:group_label;size:64;index" json:"group"`
	AcademicYear  string     `gorm:"size:32" json:"academic_year"`
	Major         string     `gorm:"size:128" json:"major"`
	GPA           float64    `gorm:"column:gpa;not null;default:0" json:"gpa"`
	GPAUpdatedAt  *time.Time `gorm:"column:gpa_updated_at" json:"gpa_updated_at"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	User          User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
}

// HasGroup reports whether the student belongs to a named group.
func (s Student) HasGroup() bool {
	return strings.TrimSpace(s.Group) != ""
}

// DisplayName returns the owning user's full name, falling back to the student number.
func (s Student) DisplayName() string {
	if name := s.User.FullName(); name != "" {
		return name
	}
	return s.StudentNumber
}
