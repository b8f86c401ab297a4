package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/student-dashboard-api/internal/database"
	"github.com/noah-isme/student-dashboard-api/internal/middleware"
	"github.com/noah-isme/student-dashboard-api/internal/service"
	"github.com/noah-isme/student-dashboard-api/internal/utils"
)

// StudentResolver maps an authenticated user onto their student record.
type StudentResolver interface {
	ResolveStudentID(ctx context.Context, userID uint) (uint, error)
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func requestContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// resolveStudent turns the token's user id into a student id, writing the error response itself on failure.
func resolveStudent(c *fiber.Ctx, resolver StudentResolver, logger zerolog.Logger) (uint, bool, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return 0, false, utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	studentID, err := resolver.ResolveStudentID(requestContext(c), userID)
	if err != nil {
		return 0, false, respondError(c, logger, err, "failed to resolve student")
	}

	return studentID, true, nil
}

func respondError(c *fiber.Ctx, logger zerolog.Logger, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "resource not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), database.IsQueryCanceled(err):
		requestLogger(logger, c).Warn().Err(err).Msg("request cancelled")
		return utils.SendError(c, fiber.StatusServiceUnavailable, "request cancelled")
	default:
		requestLogger(logger, c).Error().
			Err(err).
			Str("sqlstate", database.ErrorCode(err)).
			Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}

func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
	}
	return details
}
