package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	studentRequestsTotal    *prometheus.CounterVec
	studentLatencySeconds   *prometheus.HistogramVec
	studentErrorsTotal      *prometheus.CounterVec
	rollupDurationSeconds   *prometheus.HistogramVec
	cacheRequestsTotal      *prometheus.CounterVec
	notificationsMarkedRead prometheus.Counter
	scoreRefreshRunsTotal   *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the dashboard API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		studentRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "student_requests_total",
			Help: "Total number of student API requests served.",
		}, []string{"method", "route", "status"})

		studentLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "student_latency_seconds",
			Help:    "Latency distribution for student API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		studentErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "student_errors_total",
			Help: "Total number of error responses returned by student endpoints.",
		}, []string{"method", "route", "status"})

		rollupDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_rollup_duration_seconds",
			Help:    "Time spent computing each dashboard section.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}, []string{"section"})

		cacheRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_cache_requests_total",
			Help: "Dashboard cache lookups partitioned by result.",
		}, []string{"result"})

		notificationsMarkedRead = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notifications_marked_read_total",
			Help: "Notifications transitioned from unread to read.",
		})

		scoreRefreshRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "score_refresh_runs_total",
			Help: "Score refresher executions partitioned by outcome.",
		}, []string{"status"})

		prometheus.MustRegister(
			studentRequestsTotal,
			studentLatencySeconds,
			studentErrorsTotal,
			rollupDurationSeconds,
			cacheRequestsTotal,
			notificationsMarkedRead,
			scoreRefreshRunsTotal,
		)
	})
}

// StudentRequests exposes the counter for student requests.
func StudentRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return studentRequestsTotal
}

// StudentLatency exposes the latency histogram for student requests.
func StudentLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return studentLatencySeconds
}

// StudentErrors exposes the counter for student error responses.
func StudentErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return studentErrorsTotal
}

// RollupDuration exposes the per-section rollup histogram.
func RollupDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return rollupDurationSeconds
}

// DashboardCacheRequests exposes the cache hit/miss counter.
func DashboardCacheRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return cacheRequestsTotal
}

// NotificationsMarkedRead exposes the mark-read counter.
func NotificationsMarkedRead() prometheus.Counter {
	RegisterMetrics()
	return notificationsMarkedRead
}

// ScoreRefreshRuns exposes the score refresher outcome counter.
func ScoreRefreshRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return scoreRefreshRunsTotal
}
