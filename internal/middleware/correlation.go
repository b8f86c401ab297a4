package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderCorrelationID carries the request correlation id in both directions.
	HeaderCorrelationID = "X-Correlation-ID"
	// LocalCorrelationID is the fiber locals key holding the correlation id.
	LocalCorrelationID = "correlation_id"
)

type correlationKey struct{}

// CorrelationID reuses X-Correlation-ID or X-Request-ID when present and mints a uuid otherwise.
// The id is echoed in the response, stored in locals and bound, together with a scoped
// logger, to the user context seen by services.
func CorrelationID(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := firstNonBlank(c.Get(HeaderCorrelationID), c.Get(fiber.HeaderXRequestID))
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(LocalCorrelationID, id)
		c.Set(HeaderCorrelationID, id)

		ctx := context.WithValue(c.UserContext(), correlationKey{}, id)
		scoped := logger.With().Str(LocalCorrelationID, id).Logger()
		c.SetUserContext(scoped.WithContext(ctx))

		return c.Next()
	}
}

// CorrelationIDFromContext returns the id bound by CorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// GetCorrelationID returns the correlation id of the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(LocalCorrelationID).(string); ok {
		return id
	}
	return CorrelationIDFromContext(c.UserContext())
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
