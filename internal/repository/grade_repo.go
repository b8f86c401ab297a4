package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/models"
	"github.com/noah-isme/student-dashboard-api/internal/period"
)

// StudentAverage is the mean grade percentage of one student.
type StudentAverage struct {
	StudentID uint
	Average   float64
}

// GradeRepository reads recorded grades.
type GradeRepository interface {
	ListByStudentInWindow(ctx context.Context, studentID uint, window period.Window) ([]models.Grade, error)
	ListForAssignments(ctx context.Context, studentID uint, assignmentIDs []uint) ([]models.Grade, error)
	ListForTests(ctx context.Context, studentID uint, testIDs []uint) ([]models.Grade, error)
	AveragePercentages(ctx context.Context) ([]StudentAverage, error)
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository constructs a grade repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) ListByStudentInWindow(ctx context.Context, studentID uint, window period.Window) ([]models.Grade, error) {
	query := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	query = applyWindow(query, "recorded_at", window)

	var grades []models.Grade
	if err := query.Order("recorded_at ASC").Find(&grades).Error; err != nil {
		return nil, err
	}

	return grades, nil
}

func (r *gradeRepository) ListForAssignments(ctx context.Context, studentID uint, assignmentIDs []uint) ([]models.Grade, error) {
	if len(assignmentIDs) == 0 {
		return nil, nil
	}

	var grades []models.Grade
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND assignment_id IN ?", studentID, assignmentIDs).
		Find(&grades).Error; err != nil {
		return nil, err
	}

	return grades, nil
}

func (r *gradeRepository) ListForTests(ctx context.Context, studentID uint, testIDs []uint) ([]models.Grade, error) {
	if len(testIDs) == 0 {
		return nil, nil
	}

	var grades []models.Grade
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND test_id IN ?", studentID, testIDs).
		Find(&grades).Error; err != nil {
		return nil, err
	}

	return grades, nil
}

// AveragePercentages aggregates every graded student's mean percentage in one query.
func (r *gradeRepository) AveragePercentages(ctx context.Context) ([]StudentAverage, error) {
	var rows []StudentAverage
	err := r.db.WithContext(ctx).
		Model(&models.Grade{}).
		Select("student_id, AVG(CASE WHEN max_points > 0 THEN points * 100.0 / max_points ELSE 0 END) AS average").
		Group("student_id").
		Order("student_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
