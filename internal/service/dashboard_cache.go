package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/observability"
)

// DashboardCache stores composed dashboards in Redis. A nil client disables caching.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewDashboardCache constructs the dashboard cache.
func NewDashboardCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *DashboardCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &DashboardCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "dashboard_cache").Logger(),
	}
}

const dashboardCachePattern = "dashboard:student:*"

func dashboardCacheKey(studentID uint) string {
	return fmt.Sprintf("dashboard:student:%d", studentID)
}

// Get returns the cached dashboard for studentID, if any.
func (c *DashboardCache) Get(ctx context.Context, studentID uint) (dto.DashboardView, bool) {
	if c == nil || c.client == nil {
		return dto.DashboardView{}, false
	}

	cached, err := c.client.Get(ctx, dashboardCacheKey(studentID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to read dashboard cache")
			observability.DashboardCacheRequests().WithLabelValues("error").Inc()
			return dto.DashboardView{}, false
		}
		observability.DashboardCacheRequests().WithLabelValues("miss").Inc()
		return dto.DashboardView{}, false
	}

	var view dto.DashboardView
	if err := json.Unmarshal([]byte(cached), &view); err != nil {
		c.logger.Warn().Err(err).Uint("student_id", studentID).Msg("discarding corrupt dashboard cache entry")
		observability.DashboardCacheRequests().WithLabelValues("miss").Inc()
		return dto.DashboardView{}, false
	}

	observability.DashboardCacheRequests().WithLabelValues("hit").Inc()
	return view, true
}

// Set stores view for studentID. Failures are logged and otherwise ignored.
func (c *DashboardCache) Set(ctx context.Context, studentID uint, view dto.DashboardView) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(view)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode dashboard for cache")
		return
	}

	if err := c.client.Set(ctx, dashboardCacheKey(studentID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to store dashboard cache")
	}
}

// Invalidate drops the cached dashboard of studentID.
func (c *DashboardCache) Invalidate(ctx context.Context, studentID uint) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, dashboardCacheKey(studentID)).Err(); err != nil {
		c.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to invalidate dashboard cache")
	}
}

// InvalidateAll drops every cached dashboard. Rank sections depend on the whole cohort, so a
// score change anywhere stales them all.
func (c *DashboardCache) InvalidateAll(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	var dropped int
	iter := c.client.Scan(ctx, 0, dashboardCachePattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", iter.Val()).Msg("failed to invalidate dashboard cache")
			continue
		}
		dropped++
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to scan dashboard cache")
		return
	}

	c.logger.Debug().Int("dropped", dropped).Msg("dashboard cache flushed")
}
