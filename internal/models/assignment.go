package models

import "time"

const (
	// AssignmentStatusActive marks assignments visible to students.
	AssignmentStatusActive = "Active"
	// AssignmentStatusArchived marks assignments hidden from dashboards.
	AssignmentStatusArchived = "Archived"
)

// Assignment represents homework attached to a course.
type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CourseID    uint      `gorm:"not null;index" json:"course_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	MaxPoints   float64   `gorm:"not null;default:100" json:"max_points"`
	Status      string    `gorm:"size:32;not null;default:Active" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
