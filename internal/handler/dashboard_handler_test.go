package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/handler"
	"github.com/noah-isme/student-dashboard-api/internal/service"
)

type stubDashboardService struct {
	view        dto.DashboardView
	cacheHit    bool
	err         error
	resolveErr  error
	studentID   uint
	lastUserID  uint
	lastStudent uint
	lastPeriod  string
	lastFilter  string
	lastTarget  time.Time
	calls       int
}

func (s *stubDashboardService) ResolveStudentID(_ context.Context, userID uint) (uint, error) {
	s.lastUserID = userID
	if s.resolveErr != nil {
		return 0, s.resolveErr
	}
	return s.studentID, nil
}

func (s *stubDashboardService) BuildDashboard(_ context.Context, studentID uint) (dto.DashboardView, bool, error) {
	s.calls++
	s.lastStudent = studentID
	if s.err != nil {
		return dto.DashboardView{}, false, s.err
	}
	return s.view, s.cacheHit, nil
}

func (s *stubDashboardService) GetProgressGPA(_ context.Context, studentID uint, periodToken string) (dto.ProgressGPA, error) {
	s.calls++
	s.lastStudent = studentID
	s.lastPeriod = periodToken
	return dto.ProgressGPA{SelectedPeriod: "Month", Mode: "monthly"}, s.err
}

func (s *stubDashboardService) GetAttendance(_ context.Context, studentID uint, periodToken string) (dto.AttendanceTrend, error) {
	s.calls++
	s.lastStudent = studentID
	s.lastPeriod = periodToken
	return dto.AttendanceTrend{SelectedPeriod: "Week"}, s.err
}

func (s *stubDashboardService) GetHomework(_ context.Context, studentID uint) (dto.HomeworkSummary, error) {
	s.calls++
	s.lastStudent = studentID
	return dto.HomeworkSummary{Total: 3}, s.err
}

func (s *stubDashboardService) GetTests(_ context.Context, studentID uint) (dto.TestSummary, error) {
	s.calls++
	s.lastStudent = studentID
	return dto.TestSummary{Total: 2, AwaitingResult: 1}, s.err
}

func (s *stubDashboardService) GetCalendar(_ context.Context, studentID uint, target time.Time) (dto.CalendarView, error) {
	s.calls++
	s.lastStudent = studentID
	s.lastTarget = target
	return dto.CalendarView{SelectedDate: target.Format("2006-01-02")}, s.err
}

func (s *stubDashboardService) GetRating(_ context.Context, studentID uint) (dto.RatingSummary, error) {
	s.calls++
	s.lastStudent = studentID
	return dto.RatingSummary{FlowRank: 1, FlowSize: 1}, s.err
}

func (s *stubDashboardService) GetLeaderboard(_ context.Context, studentID uint, filter string) (dto.Leaderboard, error) {
	s.calls++
	s.lastStudent = studentID
	s.lastFilter = filter
	return dto.Leaderboard{SelectedFilter: "All"}, s.err
}

func (s *stubDashboardService) GetRewards(_ context.Context, studentID uint, periodToken string) (dto.RewardsSummary, error) {
	s.calls++
	s.lastStudent = studentID
	s.lastPeriod = periodToken
	return dto.RewardsSummary{SelectedPeriod: "Today"}, s.err
}

func (s *stubDashboardService) GetCourseInfo(_ context.Context, studentID uint) (dto.CourseInfo, error) {
	s.calls++
	s.lastStudent = studentID
	return dto.CourseInfo{HasCourse: true, CourseName: "UX/UI Design"}, s.err
}

var _ service.DashboardService = (*stubDashboardService)(nil)

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
	Details map[string]interface{} `json:"details"`
}

func newDashboardApp(svc service.DashboardService, location *time.Location, authenticated bool) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/student", func(c *fiber.Ctx) error {
		if authenticated {
			c.Locals("user_id", uint(33))
			c.Locals("user_role", "student")
		}
		return c.Next()
	})
	handler.NewDashboardHandler(svc, nil, location, zerolog.New(io.Discard)).Register(group)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (*http.Response, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func TestDashboardHandler_Success(t *testing.T) {
	svc := &stubDashboardService{
		studentID: 7,
		cacheHit:  true,
		view: dto.DashboardView{
			Profile:  dto.ProfileHeader{StudentID: 7, DisplayName: "Dana"},
			Homework: dto.HomeworkSummary{Total: 4},
		},
	}
	app := newDashboardApp(svc, time.UTC, true)

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "true", resp.Header.Get("X-Cache-Hit"))
	require.True(t, payload.Success)
	require.Equal(t, "dashboard retrieved", payload.Message)
	require.Equal(t, true, payload.Meta["cache_hit"])

	var view dto.DashboardView
	require.NoError(t, json.Unmarshal(payload.Data, &view))
	require.Equal(t, "Dana", view.Profile.DisplayName)
	require.Equal(t, 4, view.Homework.Total)
	require.Equal(t, uint(33), svc.lastUserID)
	require.Equal(t, uint(7), svc.lastStudent)
}

func TestDashboardHandler_Unauthorized(t *testing.T) {
	svc := &stubDashboardService{studentID: 7}
	app := newDashboardApp(svc, time.UTC, false)

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.False(t, payload.Success)
	require.NotEmpty(t, payload.Message)
	require.Equal(t, 0, svc.calls)
}

func TestDashboardHandler_StudentNotFound(t *testing.T) {
	svc := &stubDashboardService{resolveErr: service.ErrStudentNotFound}
	app := newDashboardApp(svc, time.UTC, true)

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard/homework")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.False(t, payload.Success)
	require.Equal(t, "student not found", payload.Message)
	require.Equal(t, 0, svc.calls)
}

func TestDashboardHandler_InternalError(t *testing.T) {
	svc := &stubDashboardService{studentID: 7, err: errors.New("boom")}
	app := newDashboardApp(svc, time.UTC, true)

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard")
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.False(t, payload.Success)
	require.Equal(t, "failed to load dashboard", payload.Message)
}

func TestDashboardHandler_PassesPeriodToken(t *testing.T) {
	svc := &stubDashboardService{studentID: 7}
	app := newDashboardApp(svc, time.UTC, true)

	for _, path := range []string{"progress-gpa", "attendance", "rewards"} {
		resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard/"+path+"?period=Month")
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		require.True(t, payload.Success)
		require.Equal(t, "Month", svc.lastPeriod, path)
	}
}

func TestDashboardHandler_RejectsOversizedPeriod(t *testing.T) {
	svc := &stubDashboardService{studentID: 7}
	app := newDashboardApp(svc, time.UTC, true)

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard/progress-gpa?period=aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.False(t, payload.Success)
	require.Equal(t, "max", payload.Details["period"])
	require.Equal(t, 0, svc.calls)
}

func TestDashboardHandler_CalendarDate(t *testing.T) {
	location := time.FixedZone("UTC+5", 5*60*60)
	svc := &stubDashboardService{studentID: 7}
	app := newDashboardApp(svc, location, true)

	resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard/calendar?date=2024-03-11")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.lastTarget.Equal(time.Date(2024, time.March, 11, 0, 0, 0, 0, location)))

	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard/calendar")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.lastTarget.IsZero())

	calls := svc.calls
	resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard/calendar?date=11.03.2024")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "datetime", payload.Details["date"])
	require.Equal(t, calls, svc.calls)
}

func TestDashboardHandler_LeaderboardFilter(t *testing.T) {
	svc := &stubDashboardService{studentID: 7}
	app := newDashboardApp(svc, time.UTC, true)

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard/leaderboard?filter=Group")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
	require.Equal(t, "Group", svc.lastFilter)
}

func TestDashboardHandler_SectionEndpoints(t *testing.T) {
	svc := &stubDashboardService{studentID: 7}
	app := newDashboardApp(svc, time.UTC, true)

	for _, path := range []string{"homework", "tests", "rating", "course-info"} {
		resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/student/dashboard/"+path)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		require.True(t, payload.Success, path)
		require.NotEmpty(t, payload.Data, path)
	}
	require.Equal(t, 4, svc.calls)
}
