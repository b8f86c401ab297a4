package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/models"
	"github.com/noah-isme/student-dashboard-api/internal/period"
)

// RewardTotal is the summed points of one reward type.
type RewardTotal struct {
	Type   string
	Points int
}

// RewardRepository reads earned rewards.
type RewardRepository interface {
	ListByStudentInWindow(ctx context.Context, studentID uint, window period.Window, limit int) ([]models.Reward, error)
	SumPointsByType(ctx context.Context, studentID uint) ([]RewardTotal, error)
}

type rewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository constructs a reward repository.
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) ListByStudentInWindow(ctx context.Context, studentID uint, window period.Window, limit int) ([]models.Reward, error) {
	query := r.db.WithContext(ctx).Where("student_id = ? AND is_active = ?", studentID, true)
	query = applyWindow(query, "earned_at", window)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rewards []models.Reward
	if err := query.Order("earned_at DESC").Order("id DESC").Find(&rewards).Error; err != nil {
		return nil, err
	}

	return rewards, nil
}

func (r *rewardRepository) SumPointsByType(ctx context.Context, studentID uint) ([]RewardTotal, error) {
	var totals []RewardTotal
	err := r.db.WithContext(ctx).
		Model(&models.Reward{}).
		Select("type, SUM(points) AS points").
		Where("student_id = ? AND is_active = ?", studentID, true).
		Group("type").
		Order("type ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	return totals, nil
}
