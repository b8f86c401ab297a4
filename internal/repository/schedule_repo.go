package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/models"
)

// ScheduleRepository reads class schedule entries.
type ScheduleRepository interface {
	ListByCoursesBetween(ctx context.Context, courseIDs []uint, from, to time.Time) ([]models.Schedule, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository constructs a schedule repository.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

// ListByCoursesBetween returns entries starting in [from, to), earliest first.
func (r *scheduleRepository) ListByCoursesBetween(ctx context.Context, courseIDs []uint, from, to time.Time) ([]models.Schedule, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	var entries []models.Schedule
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where("course_id IN ?", courseIDs).
		Where("start_time >= ? AND start_time < ?", from.UTC(), to.UTC()).
		Order("start_time ASC").
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}
