package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/models"
)

// AssignmentRepository reads homework assignments.
type AssignmentRepository interface {
	ListActiveByCourses(ctx context.Context, courseIDs []uint) ([]models.Assignment, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) ListActiveByCourses(ctx context.Context, courseIDs []uint) ([]models.Assignment, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	var assignments []models.Assignment
	if err := r.db.WithContext(ctx).
		Where("course_id IN ? AND status = ?", courseIDs, models.AssignmentStatusActive).
		Order("due_date ASC").
		Order("id ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}
