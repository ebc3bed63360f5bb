package product

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status represents the moderation lifecycle of a product
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidStatus checks a status string against the lifecycle values
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Categories a product may be filed under
var Categories = []string{
	"tools", "games", "ai", "productivity", "education",
	"design", "development", "marketing", "finance",
}

// Product represents a submitted product (matches products table)
type Product struct {
	ID           uuid.UUID      `db:"id"`
	Title        string         `db:"title"`
	Slug         string         `db:"slug"`
	Description  string         `db:"description"`
	WebsiteURL   string         `db:"website_url"`
	ThumbnailURL sql.NullString `db:"thumbnail_url"`
	Categories   pq.StringArray `db:"categories"`
	UserID       uuid.UUID      `db:"user_id"`
	Status       Status         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
}

// Row is a product joined with its owner and per-viewer upvote state
type Row struct {
	Product
	OwnerName    string         `db:"owner_name"`
	OwnerUsername string        `db:"owner_username"`
	OwnerAvatar  sql.NullString `db:"owner_avatar"`
	UpvoteCount  int            `db:"upvote_count"`
	HasUpvoted   bool           `db:"has_upvoted"`
}

// Upvote represents one user's vote on one product.
// Uniqueness per (user, product) is a composite primary key in the table.
type Upvote struct {
	UserID    uuid.UUID `db:"user_id"`
	ProductID uuid.UUID `db:"product_id"`
	CreatedAt time.Time `db:"created_at"`
}
