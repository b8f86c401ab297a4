package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/models"
)

// TestRepository reads scheduled tests.
type TestRepository interface {
	ListByCourses(ctx context.Context, courseIDs []uint) ([]models.Test, error)
}

type testRepository struct {
	db *gorm.DB
}

// NewTestRepository constructs a test repository.
func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

// ListByCourses returns every test of the given courses that was not cancelled.
func (r *testRepository) ListByCourses(ctx context.Context, courseIDs []uint) ([]models.Test, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	var tests []models.Test
	if err := r.db.WithContext(ctx).
		Where("course_id IN ? AND status <> ?", courseIDs, models.TestStatusCancelled).
		Order("test_date ASC").
		Find(&tests).Error; err != nil {
		return nil, err
	}

	return tests, nil
}
