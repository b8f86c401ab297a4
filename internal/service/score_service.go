package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/student-dashboard-api/internal/database"
	"github.com/noah-isme/student-dashboard-api/internal/observability"
	"github.com/noah-isme/student-dashboard-api/internal/repository"
)

// ScoreService maintains the cached rating score of every student.
type ScoreService interface {
	RefreshAll(ctx context.Context) (int, error)
}

type scoreService struct {
	students repository.StudentRepository
	grades   repository.GradeRepository
	cache    *DashboardCache
	logger   zerolog.Logger
	now      func() time.Time
}

// NewScoreService constructs the score refresher.
func NewScoreService(students repository.StudentRepository, grades repository.GradeRepository, cache *DashboardCache, logger zerolog.Logger) ScoreService {
	return &scoreService{
		students: students,
		grades:   grades,
		cache:    cache,
		logger:   logger.With().Str("component", "score_service").Logger(),
		now:      time.Now,
	}
}

// RefreshAll recomputes the GPA of every active student as the mean grade
// percentage on a 0-10 scale and returns how many scores changed.
func (s *scoreService) RefreshAll(ctx context.Context) (updated int, err error) {
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
			s.logger.Error().Err(err).Str("sqlstate", database.ErrorCode(err)).Msg("score refresh failed")
		}
		observability.ScoreRefreshRuns().WithLabelValues(status).Inc()
	}()

	averages, err := s.grades.AveragePercentages(ctx)
	if err != nil {
		return 0, err
	}

	byStudent := make(map[uint]float64, len(averages))
	for _, average := range averages {
		byStudent[average.StudentID] = average.Average
	}

	students, err := s.students.ListCohort(ctx, "")
	if err != nil {
		return 0, err
	}

	stamp := s.now().UTC()
	for _, student := range students {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		gpa := round2(byStudent[student.ID] / 10)
		if err := s.students.UpdateGPA(ctx, student.ID, gpa, stamp); err != nil {
			return updated, err
		}

		if gpa != student.GPA {
			updated++
		}
	}

	if updated > 0 {
		s.cache.InvalidateAll(ctx)
	}

	s.logger.Info().Int("students", len(students)).Int("changed", updated).Msg("scores refreshed")
	return updated, nil
}
