package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/service"
	"github.com/noah-isme/student-dashboard-api/internal/utils"
)

// NotificationHandler lists notifications and marks them as read.
type NotificationHandler struct {
	service  service.NotificationService
	students StudentResolver
	logger   zerolog.Logger
}

// NewNotificationHandler constructs a handler instance.
func NewNotificationHandler(service service.NotificationService, students StudentResolver, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service:  service,
		students: students,
		logger:   logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register binds the notification routes.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("/notifications", h.list)
	router.Post("/notifications/:id/read", h.markRead)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid limit", map[string]string{"limit": "integer"})
	}

	studentID, ok, err := resolveStudent(c, h.students, h.logger)
	if !ok {
		return err
	}

	items, err := h.service.List(requestContext(c), studentID, limit)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load notifications")
	}

	return utils.SendSuccess(c, "notifications retrieved", items)
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	parsed, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || parsed == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	studentID, ok, err := resolveStudent(c, h.students, h.logger)
	if !ok {
		return err
	}

	updated, err := h.service.MarkRead(requestContext(c), studentID, uint(parsed))
	if err != nil {
		return respondError(c, h.logger, err, "failed to update notification")
	}

	return utils.SendSuccess(c, "notification updated", dto.NotificationReadResponse{
		NotificationID: uint(parsed),
		Updated:        updated,
	})
}
