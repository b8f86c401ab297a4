package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestRateLimitKeysByUser(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if user := c.Get("X-User"); user == "a" {
			c.Locals(LocalUserID, uint(1))
		} else {
			c.Locals(LocalUserID, uint(2))
		}
		return c.Next()
	})
	app.Use(RateLimit("dashboard", 1, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User", user)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	require.Equal(t, fiber.StatusOK, call("a"))
	require.Equal(t, fiber.StatusTooManyRequests, call("a"))
	require.Equal(t, fiber.StatusOK, call("b"))
}
