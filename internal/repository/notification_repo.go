package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/models"
)

// NotificationRepository handles persistence for notification entities.
type NotificationRepository interface {
	ListByStudent(ctx context.Context, studentID uint, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, studentID uint) (int64, error)
	MarkRead(ctx context.Context, id, studentID uint, at time.Time) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository constructs a repository backed by GORM.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) ListByStudent(ctx context.Context, studentID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var notifications []models.Notification
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("student_id = ? AND is_read = ?", studentID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips an unread notification owned by studentID in a single statement.
// It reports whether a row changed; already-read, missing or foreign ids change nothing.
func (r *notificationRepository) MarkRead(ctx context.Context, id, studentID uint, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND student_id = ? AND is_read = ?", id, studentID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
