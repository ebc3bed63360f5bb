package notification

import (
	"time"

	"github.com/google/uuid"
)

// Response is the API view of a notification
type Response struct {
	ID        uuid.UUID `json:"id"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	LinkURL   string    `json:"link_url,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt string    `json:"created_at"`
}

// UnreadCountResponse for GET /notifications/unread-count
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// ToResponse converts a notification to the API view
func ToResponse(n *Notification) *Response {
	return &Response{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		LinkURL:   n.LinkURL.String,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
