package models

import "time"

const (
	// TestStatusScheduled marks an upcoming test.
	TestStatusScheduled = "Scheduled"
	// TestStatusCompleted marks a test that took place.
	TestStatusCompleted = "Completed"
	// TestStatusCancelled marks a test that will not take place.
	TestStatusCancelled = "Cancelled"
)

// Test represents a scheduled examination attached to a course.
type Test struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	TestDate  time.Time `gorm:"not null" json:"test_date"`
	Duration  int       `gorm:"not null;default:0" json:"duration"`
	MaxPoints float64   `gorm:"not null;default:100" json:"max_points"`
	Status    string    `gorm:"size:32;not null;default:Scheduled" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Grade is a graded outcome for a student, optionally tied to an assignment or a test.
type Grade struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;index:idx_grade_student_recorded" json:"student_id"`
	CourseID     uint      `gorm:"not null;index" json:"course_id"`
	AssignmentID *uint     `gorm:"index" json:"assignment_id"`
	TestID       *uint     `gorm:"index" json:"test_id"`
	Points       float64   `gorm:"not null" json:"points"`
	MaxPoints    float64   `gorm:"not null" json:"max_points"`
	Comments     string    `gorm:"type:text" json:"comments"`
	RecordedAt   time.Time `gorm:"not null;index:idx_grade_student_recorded" json:"recorded_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Percentage returns points relative to max points on a 0-100 scale.
func (g Grade) Percentage() float64 {
	if g.MaxPoints == 0 {
		return 0
	}
	return g.Points / g.MaxPoints * 100
}
