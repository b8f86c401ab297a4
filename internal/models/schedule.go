package models

import "time"

// Schedule is a single class occurrence for a course.
type Schedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Type      string    `gorm:"size:64;not null" json:"type"`
	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Location  string    `gorm:"size:255" json:"location"`
	Recurring bool      `gorm:"not null;default:false" json:"recurring"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Course    Course    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course"`
}

const (
	// AttendanceStatusPresent marks a student present.
	AttendanceStatusPresent = "Present"
	// AttendanceStatusAbsent marks a student absent.
	AttendanceStatusAbsent = "Absent"
	// AttendanceStatusLate marks a late arrival.
	AttendanceStatusLate = "Late"
	// AttendanceStatusExcused marks an excused absence.
	AttendanceStatusExcused = "Excused"
)

// Attendance records a student's presence at a schedule occurrence.
type Attendance struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;index:idx_attendance_student_date" json:"student_id"`
	ScheduleID uint      `gorm:"not null;index" json:"schedule_id"`
	Date       time.Time `gorm:"not null;index:idx_attendance_student_date" json:"date"`
	Status     string    `gorm:"size:16;not null" json:"status"`
	Notes      string    `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsPresent reports whether the record counts towards presence.
func (a Attendance) IsPresent() bool {
	return a.Status == AttendanceStatusPresent
}
