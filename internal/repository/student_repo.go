package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/models"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Student, error)
	GetByUserID(ctx context.Context, userID uint) (models.Student, error)
	ListCohort(ctx context.Context, group string) ([]models.Student, error)
	UpdateGPA(ctx context.Context, id uint, gpa float64, at time.Time) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Preload("User").First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) GetByUserID(ctx context.Context, userID uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

// ListCohort returns active students ordered by id. An empty group returns every active student.
func (r *studentRepository) ListCohort(ctx context.Context, group string) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Preload("User").Where("is_active = ?", true)
	if group != "" {
		query = query.Where("group_label = ?", group)
	}

	var students []models.Student
	if err := query.Order("id ASC").Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) UpdateGPA(ctx context.Context, id uint, gpa float64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"gpa": gpa, "gpa_updated_at": at}).Error
}
