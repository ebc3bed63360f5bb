package notification

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Type represents notification type
type Type string

const (
	TypeUpvote  Type = "upvote"  // Product owner: someone upvoted
	TypeComment Type = "comment" // Product owner: new comment
	TypeFollow  Type = "follow"  // User gained a follower
	TypeMention Type = "mention" // User mentioned in a comment
	TypeSystem  Type = "system"  // Moderation and announcements
)

// Notification represents a user notification
type Notification struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	UserID    uuid.UUID      `db:"user_id" json:"user_id"`
	Type      Type           `db:"type" json:"type"`
	Message   string         `db:"message" json:"message"`
	LinkURL   sql.NullString `db:"link_url" json:"-"`
	IsRead    bool           `db:"is_read" json:"is_read"`
	ReadAt    sql.NullTime   `db:"read_at" json:"-"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
