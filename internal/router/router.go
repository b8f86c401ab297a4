package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/noah-isme/student-dashboard-api/internal/config"
	"github.com/noah-isme/student-dashboard-api/internal/handler"
	"github.com/noah-isme/student-dashboard-api/internal/middleware"
	"github.com/noah-isme/student-dashboard-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	DashboardHandler    *handler.DashboardHandler
	NotificationHandler *handler.NotificationHandler
	HealthProbes        map[string]handler.Pinger
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	student := api.Group("/student",
		jwtMiddleware,
		middleware.RequireRole("student"),
		middleware.RateLimit("student", cfg.RateLimitMax, cfg.RateLimitWindow),
	)
	if cfg.RequestTimeout > 0 {
		// handlers below see a user context bounded by the request deadline
		student.Use(timeout.NewWithContext(func(c *fiber.Ctx) error {
			return c.Next()
		}, cfg.RequestTimeout))
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(student)
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(student)
	}
}
