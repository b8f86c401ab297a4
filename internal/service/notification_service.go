package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/observability"
	"github.com/noah-isme/student-dashboard-api/internal/repository"
)

const (
	defaultNotificationLimit = 10
	maxNotificationLimit     = 100

	// EventNotificationRead is published after a notification flips to read.
	EventNotificationRead = "notification.read"
)

// NotificationService lists notifications and tracks their read state.
type NotificationService interface {
	List(ctx context.Context, studentID uint, limit int) ([]dto.NotificationItem, error)
	UnreadCount(ctx context.Context, studentID uint) (int64, error)
	MarkRead(ctx context.Context, studentID, notificationID uint) (bool, error)
}

// NotificationEvent is the payload fanned out over Redis and NATS.
type NotificationEvent struct {
	Type           string    `json:"type"`
	Source         string    `json:"source"`
	StudentID      uint      `json:"student_id"`
	NotificationID uint      `json:"notification_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type notificationService struct {
	repo         repository.NotificationRepository
	cache        *DashboardCache
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
	tracer       trace.Tracer
	sanitizer    *bluemonday.Policy
	nodeID       string
	now          func() time.Time
}

// NewNotificationService constructs a notification service.
func NewNotificationService(repo repository.NotificationRepository, cache *DashboardCache, redisClient *redis.Client, channelBase string, natsConn *nats.Conn, logger zerolog.Logger) NotificationService {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":notifications"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".notifications"
	}

	return &notificationService{
		repo:         repo,
		cache:        cache,
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		logger:       logger.With().Str("component", "notification_service").Logger(),
		tracer:       otel.Tracer("github.com/noah-isme/student-dashboard-api/internal/service/notification"),
		sanitizer:    bluemonday.StrictPolicy(),
		nodeID:       uuid.NewString(),
		now:          time.Now,
	}
}

func (s *notificationService) List(ctx context.Context, studentID uint, limit int) ([]dto.NotificationItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	notifications, err := s.repo.ListByStudent(ctx, studentID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationItem, 0, len(notifications))
	for _, notification := range notifications {
		item := dto.NewNotificationItem(notification)
		item.Title = strings.TrimSpace(s.sanitizer.Sanitize(item.Title))
		item.Message = strings.TrimSpace(s.sanitizer.Sanitize(item.Message))
		items = append(items, item)
	}

	return items, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, studentID uint) (int64, error) {
	return s.repo.CountUnread(ctx, studentID)
}

// MarkRead flips the notification to read. Unknown, foreign and already-read ids report false without error.
func (s *notificationService) MarkRead(ctx context.Context, studentID, notificationID uint) (bool, error) {
	attrs := []attribute.KeyValue{
		attribute.Int64("notification.student_id", int64(studentID)),
		attribute.Int64("notification.id", int64(notificationID)),
	}
	spanCtx, span := s.tracer.Start(ctx, "notifications.mark_read", trace.WithAttributes(attrs...))
	defer span.End()

	changed, err := s.repo.MarkRead(spanCtx, notificationID, studentID, s.now().UTC())
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	span.SetAttributes(attribute.Bool("notification.changed", changed))

	if !changed {
		return false, nil
	}

	observability.NotificationsMarkedRead().Inc()
	s.cache.Invalidate(spanCtx, studentID)

	if err := s.publish(spanCtx, studentID, notificationID); err != nil {
		s.logger.Warn().Err(err).Uint("notification_id", notificationID).Msg("failed to publish notification event")
	}

	return true, nil
}

func (s *notificationService) publish(ctx context.Context, studentID, notificationID uint) error {
	event := NotificationEvent{
		Type:           EventNotificationRead,
		Source:         s.nodeID,
		StudentID:      studentID,
		NotificationID: notificationID,
		OccurredAt:     s.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if s.redis != nil && s.redisChannel != "" {
		if err := s.redis.Publish(ctx, s.redisChannel, payload).Err(); err != nil {
			return err
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			return err
		}
	}

	return nil
}
