package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/models"
)

// EnrollmentRepository reads student enrollments.
type EnrollmentRepository interface {
	ListByStudent(ctx context.Context, studentID uint, statuses ...string) ([]models.Enrollment, error)
	ListVisibleCourseIDs(ctx context.Context, studentID uint) ([]uint, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs an enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID uint, statuses ...string) ([]models.Enrollment, error) {
	query := r.db.WithContext(ctx).Preload("Course").Where("student_id = ?", studentID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var enrollments []models.Enrollment
	if err := query.Order("enrolled_at ASC").Order("id ASC").Find(&enrollments).Error; err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ListVisibleCourseIDs returns the courses whose coursework the student can see: every enrollment except dropped ones.
func (r *enrollmentRepository) ListVisibleCourseIDs(ctx context.Context, studentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ? AND status <> ?", studentID, models.EnrollmentStatusDropped).
		Order("course_id ASC").
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
