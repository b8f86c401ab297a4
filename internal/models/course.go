package models

import "time"

// Course represents a course students can enroll into.
type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Code        string    `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Description string    `gorm:"type:text" json:"description"`
	Format      string    `gorm:"size:32;not null;default:Online" json:"format"`
	Level       string    `gorm:"size:32;not null;default:Basic" json:"level"`
	Access      string    `gorm:"size:32;not null;default:Open" json:"access"`
	Duration    int       `gorm:"not null;default:0" json:"duration"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	// EnrollmentStatusActive marks an ongoing enrollment.
	EnrollmentStatusActive = "Active"
	// EnrollmentStatusCompleted marks a finished enrollment.
	EnrollmentStatusCompleted = "Completed"
	// EnrollmentStatusDropped marks an enrollment the student left.
	EnrollmentStatusDropped = "Dropped"
)

// Enrollment links a student to a course.
type Enrollment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StudentID   uint       `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"student_id"`
	CourseID    uint       `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"course_id"`
	Status      string     `gorm:"size:32;not null;default:Active" json:"status"`
	EnrolledAt  time.Time  `gorm:"not null" json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	FinalGrade  *float64   `json:"final_grade"`
	Course      Course     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course"`
}
