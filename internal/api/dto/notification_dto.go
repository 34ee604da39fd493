package dto

import (
	"time"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

// NotificationResponse represents a per-recipient message.
type NotificationResponse struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationResponse maps a domain notification.
func NewNotificationResponse(notification *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		LeadID:    notification.LeadID,
		Content:   notification.Content,
		Author:    notification.Author,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
}

// NewNotificationResponses maps a slice of notifications.
func NewNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, NewNotificationResponse(&notifications[i]))
	}
	return result
}

// UnreadCountResponse reports the unread badge counter.
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
