package handler

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/service"
	"github.com/noah-isme/student-dashboard-api/internal/utils"
)

const calendarDateLayout = "2006-01-02"

// DashboardHandler exposes the student dashboard and its individual sections.
type DashboardHandler struct {
	service   service.DashboardService
	validator *validator.Validate
	location  *time.Location
	logger    zerolog.Logger
}

// NewDashboardHandler creates a new handler instance.
func NewDashboardHandler(service service.DashboardService, validate *validator.Validate, location *time.Location, logger zerolog.Logger) *DashboardHandler {
	if validate == nil {
		validate = validator.New()
	}
	if location == nil {
		location = time.UTC
	}
	return &DashboardHandler{
		service:   service,
		validator: validate,
		location:  location,
		logger:    logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the dashboard endpoints.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.getDashboard)
	router.Get("/dashboard/progress-gpa", h.getProgressGPA)
	router.Get("/dashboard/attendance", h.getAttendance)
	router.Get("/dashboard/homework", h.getHomework)
	router.Get("/dashboard/tests", h.getTests)
	router.Get("/dashboard/calendar", h.getCalendar)
	router.Get("/dashboard/rating", h.getRating)
	router.Get("/dashboard/leaderboard", h.getLeaderboard)
	router.Get("/dashboard/rewards", h.getRewards)
	router.Get("/dashboard/course-info", h.getCourseInfo)
}

func (h *DashboardHandler) getDashboard(c *fiber.Ctx) error {
	studentID, ok, err := resolveStudent(c, h.service, h.logger)
	if !ok {
		return err
	}

	view, cacheHit, err := h.service.BuildDashboard(requestContext(c), studentID)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load dashboard")
	}

	c.Set("X-Cache-Hit", strconv.FormatBool(cacheHit))
	return utils.OK(c, view, "dashboard retrieved", fiber.Map{"cache_hit": cacheHit})
}

func (h *DashboardHandler) getProgressGPA(c *fiber.Ctx) error {
	query, ok, err := h.periodQuery(c)
	if !ok {
		return err
	}
	studentID, ok, err := resolveStudent(c, h.service, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.GetProgressGPA(requestContext(c), studentID, query.Period)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load progress")
	}
	return utils.SendSuccess(c, "progress retrieved", result)
}

func (h *DashboardHandler) getAttendance(c *fiber.Ctx) error {
	query, ok, err := h.periodQuery(c)
	if !ok {
		return err
	}
	studentID, ok, err := resolveStudent(c, h.service, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.GetAttendance(requestContext(c), studentID, query.Period)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load attendance")
	}
	return utils.SendSuccess(c, "attendance retrieved", result)
}

func (h *DashboardHandler) getHomework(c *fiber.Ctx) error {
	studentID, ok, err := resolveStudent(c, h.service, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.GetHomework(requestContext(c), studentID)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load homework")
	}
	return utils.SendSuccess(c, "homework retrieved", result)
}

func (h *DashboardHandler) getTests(c *fiber.Ctx) error {
	studentID, ok, err := resolveStudent(c, h.service, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.GetTests(requestContext(c), studentID)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load tests")
	}
	return utils.SendSuccess(c, "tests retrieved", result)
}

func (h *DashboardHandler) getCalendar(c *fiber.Ctx) error {
	var query dto.CalendarQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	if err := h.validator.Struct(query); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid date", validationDetails(err))
	}

	var target time.Time
	if query.Date != "" {
		parsed, err := time.ParseInLocation(calendarDateLayout, query.Date, h.location)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
		}
		target = parsed
	}

	studentID, ok, err := resolveStudent(c, h.service, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.GetCalendar(requestContext(c), studentID, target)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load calendar")
	}
	return utils.SendSuccess(c, "calendar retrieved", result)
}

func (h *DashboardHandler) getRating(c *fiber.Ctx) error {
	studentID, ok, err := resolveStudent(c, h.service, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.GetRating(requestContext(c), studentID)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load rating")
	}
	return utils.SendSuccess(c, "rating retrieved", result)
}

func (h *DashboardHandler) getLeaderboard(c *fiber.Ctx) error {
	var query dto.LeaderboardQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	if err := h.validator.Struct(query); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid filter", validationDetails(err))
	}

	studentID, ok, err := resolveStudent(c, h.service, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.GetLeaderboard(requestContext(c), studentID, query.Filter)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load leaderboard")
	}
	return utils.SendSuccess(c, "leaderboard retrieved", result)
}

func (h *DashboardHandler) getRewards(c *fiber.Ctx) error {
	query, ok, err := h.periodQuery(c)
	if !ok {
		return err
	}
	studentID, ok, err := resolveStudent(c, h.service, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.GetRewards(requestContext(c), studentID, query.Period)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load rewards")
	}
	return utils.SendSuccess(c, "rewards retrieved", result)
}

func (h *DashboardHandler) getCourseInfo(c *fiber.Ctx) error {
	studentID, ok, err := resolveStudent(c, h.service, h.logger)
	if !ok {
		return err
	}

	result, err := h.service.GetCourseInfo(requestContext(c), studentID)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load course info")
	}
	return utils.SendSuccess(c, "course info retrieved", result)
}

// periodQuery parses the period token. When ok is false the error response has been written.
func (h *DashboardHandler) periodQuery(c *fiber.Ctx) (dto.PeriodQuery, bool, error) {
	var query dto.PeriodQuery
	if err := c.QueryParser(&query); err != nil {
		return query, false, utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	if err := h.validator.Struct(query); err != nil {
		return query, false, utils.Fail(c, fiber.StatusBadRequest, "invalid period", validationDetails(err))
	}
	return query, true, nil
}
