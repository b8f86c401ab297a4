package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/database"
	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/models"
	"github.com/noah-isme/student-dashboard-api/internal/observability"
	"github.com/noah-isme/student-dashboard-api/internal/period"
	"github.com/noah-isme/student-dashboard-api/internal/repository"
	"github.com/noah-isme/student-dashboard-api/pkg/cloudinary"
)

const notificationPreviewLimit = 10

// DashboardService computes the student dashboard sections and their composite.
type DashboardService interface {
	ResolveStudentID(ctx context.Context, userID uint) (uint, error)
	BuildDashboard(ctx context.Context, studentID uint) (dto.DashboardView, bool, error)
	GetProgressGPA(ctx context.Context, studentID uint, periodToken string) (dto.ProgressGPA, error)
	GetAttendance(ctx context.Context, studentID uint, periodToken string) (dto.AttendanceTrend, error)
	GetHomework(ctx context.Context, studentID uint) (dto.HomeworkSummary, error)
	GetTests(ctx context.Context, studentID uint) (dto.TestSummary, error)
	GetCalendar(ctx context.Context, studentID uint, target time.Time) (dto.CalendarView, error)
	GetRating(ctx context.Context, studentID uint) (dto.RatingSummary, error)
	GetLeaderboard(ctx context.Context, studentID uint, filter string) (dto.Leaderboard, error)
	GetRewards(ctx context.Context, studentID uint, periodToken string) (dto.RewardsSummary, error)
	GetCourseInfo(ctx context.Context, studentID uint) (dto.CourseInfo, error)
}

// DashboardRepositories groups the read store used by the dashboard.
type DashboardRepositories struct {
	Students    repository.StudentRepository
	Enrollments repository.EnrollmentRepository
	Assignments repository.AssignmentRepository
	Submissions repository.SubmissionRepository
	Tests       repository.TestRepository
	Grades      repository.GradeRepository
	Attendance  repository.AttendanceRepository
	Schedules   repository.ScheduleRepository
	Rewards     repository.RewardRepository
}

// NewDashboardRepositories wires every dashboard repository to db.
func NewDashboardRepositories(db *gorm.DB) DashboardRepositories {
	return DashboardRepositories{
		Students:    repository.NewStudentRepository(db),
		Enrollments: repository.NewEnrollmentRepository(db),
		Assignments: repository.NewAssignmentRepository(db),
		Submissions: repository.NewSubmissionRepository(db),
		Tests:       repository.NewTestRepository(db),
		Grades:      repository.NewGradeRepository(db),
		Attendance:  repository.NewAttendanceRepository(db),
		Schedules:   repository.NewScheduleRepository(db),
		Rewards:     repository.NewRewardRepository(db),
	}
}

type dashboardService struct {
	repos         DashboardRepositories
	notifications NotificationService
	avatars       cloudinary.AvatarResolver
	cache         *DashboardCache
	location      *time.Location
	logger        zerolog.Logger
	tracer        trace.Tracer
	now           func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(repos DashboardRepositories, notifications NotificationService, avatars cloudinary.AvatarResolver, cache *DashboardCache, location *time.Location, logger zerolog.Logger) DashboardService {
	if location == nil {
		location = time.UTC
	}
	if avatars == nil {
		avatars = cloudinary.Passthrough(models.DefaultAvatarURL)
	}

	return &dashboardService{
		repos:         repos,
		notifications: notifications,
		avatars:       avatars,
		cache:         cache,
		location:      location,
		logger:        logger.With().Str("component", "dashboard_service").Logger(),
		tracer:        otel.Tracer("github.com/noah-isme/student-dashboard-api/internal/service/dashboard"),
		now:           time.Now,
	}
}

func (s *dashboardService) clock() time.Time {
	return s.now().In(s.location)
}

// observe opens a span for one section and records its duration when the returned func runs.
func (s *dashboardService) observe(ctx context.Context, section string) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "dashboard."+section)
	start := time.Now()

	return ctx, func(err error) {
		observability.RollupDuration().WithLabelValues(section).Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, section+"_failed")
		}
		span.End()
	}
}

func (s *dashboardService) loadStudent(ctx context.Context, studentID uint) (models.Student, error) {
	student, err := s.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}
	return student, nil
}

func (s *dashboardService) ResolveStudentID(ctx context.Context, userID uint) (uint, error) {
	student, err := s.repos.Students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrStudentNotFound
		}
		return 0, err
	}
	return student.ID, nil
}

func (s *dashboardService) BuildDashboard(ctx context.Context, studentID uint) (dto.DashboardView, bool, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.build", trace.WithAttributes(attribute.Int64("student.id", int64(studentID))))
	defer span.End()

	if view, ok := s.cache.Get(ctx, studentID); ok {
		span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
		return view, true, nil
	}

	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		span.RecordError(err)
		return dto.DashboardView{}, false, err
	}

	view := dto.DashboardView{GeneratedAt: s.clock()}
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		view.Profile, err = s.profile(gctx, student)
		return err
	})
	group.Go(func() (err error) {
		view.ProgressGPA, err = s.GetProgressGPA(gctx, studentID, string(period.Week))
		return err
	})
	group.Go(func() (err error) {
		view.Attendance, err = s.GetAttendance(gctx, studentID, string(period.Month))
		return err
	})
	group.Go(func() (err error) {
		view.Homework, err = s.GetHomework(gctx, studentID)
		return err
	})
	group.Go(func() (err error) {
		view.Test, err = s.GetTests(gctx, studentID)
		return err
	})
	group.Go(func() (err error) {
		view.Calendar, err = s.GetCalendar(gctx, studentID, time.Time{})
		return err
	})
	group.Go(func() (err error) {
		view.Rating, err = s.rating(gctx, student)
		return err
	})
	group.Go(func() (err error) {
		view.Leaderboard, err = s.leaderboard(gctx, student, leaderboardFilterGroup)
		return err
	})
	group.Go(func() (err error) {
		view.Rewards, err = s.GetRewards(gctx, studentID, string(period.Today))
		return err
	})
	group.Go(func() (err error) {
		view.CourseInfo, err = s.GetCourseInfo(gctx, studentID)
		return err
	})
	group.Go(func() (err error) {
		view.Notifications, err = s.notifications.List(gctx, studentID, notificationPreviewLimit)
		return err
	})

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dashboard_build_failed")
		s.logger.Error().
			Err(err).
			Uint("student_id", studentID).
			Str("sqlstate", database.ErrorCode(err)).
			Msg("failed to build dashboard")
		return dto.DashboardView{}, false, err
	}

	s.cache.Set(ctx, studentID, view)
	return view, false, nil
}

func (s *dashboardService) profile(ctx context.Context, student models.Student) (header dto.ProfileHeader, err error) {
	ctx, done := s.observe(ctx, "profile")
	defer func() { done(err) }()

	totals, err := s.repos.Rewards.SumPointsByType(ctx, student.ID)
	if err != nil {
		return dto.ProfileHeader{}, err
	}

	unread, err := s.notifications.UnreadCount(ctx, student.ID)
	if err != nil {
		return dto.ProfileHeader{}, err
	}

	header = dto.ProfileHeader{
		StudentID:           student.ID,
		DisplayName:         student.DisplayName(),
		Group:               student.Group,
		AvatarURL:           s.avatars.AvatarURL(student.User.Avatar),
		GPA:                 student.GPA,
		RewardTotals:        make(map[string]int, len(totals)),
		UnreadNotifications: unread,
	}
	for _, total := range totals {
		header.RewardTotals[total.Type] = total.Points
		header.TotalPoints += total.Points
	}

	return header, nil
}
