package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/models"
	"github.com/noah-isme/student-dashboard-api/internal/period"
)

// AttendanceRepository reads attendance records.
type AttendanceRepository interface {
	ListByStudentInWindow(ctx context.Context, studentID uint, window period.Window) ([]models.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs an attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByStudentInWindow(ctx context.Context, studentID uint, window period.Window) ([]models.Attendance, error) {
	query := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	query = applyWindow(query, "date", window)

	var records []models.Attendance
	if err := query.Order("date ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
