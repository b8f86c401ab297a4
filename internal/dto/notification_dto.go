package dto

import (
	"time"

	"github.com/noah-isme/student-dashboard-api/internal/models"
)

// NotificationItem is the serialized representation of a notification.
type NotificationItem struct {
	ID        uint                   `json:"id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Type      string                 `json:"type"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewNotificationItem converts a model into a DTO.
func NewNotificationItem(notification models.Notification) NotificationItem {
	var metadata map[string]interface{}
	if len(notification.Metadata) > 0 {
		metadata = map[string]interface{}(notification.Metadata)
	}

	return NotificationItem{
		ID:        notification.ID,
		Title:     notification.Title,
		Message:   notification.Message,
		Type:      notification.Type,
		IsRead:    notification.IsRead,
		ReadAt:    notification.ReadAt,
		Metadata:  metadata,
		CreatedAt: notification.CreatedAt,
	}
}

// NotificationReadResponse reports the outcome of a mark-read call.
type NotificationReadResponse struct {
	NotificationID uint `json:"notification_id"`
	Updated        bool `json:"updated"`
}
