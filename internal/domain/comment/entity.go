package comment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents the moderation lifecycle of a comment
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Comment represents a comment on a product (matches comments table)
type Comment struct {
	ID        uuid.UUID `db:"id"`
	ProductID uuid.UUID `db:"product_id"`
	UserID    uuid.UUID `db:"user_id"`
	Content   string    `db:"content"`
	Status    Status    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// Row is a comment joined with its author
type Row struct {
	Comment
	AuthorName     string         `db:"author_name"`
	AuthorUsername string         `db:"author_username"`
	AuthorAvatar   sql.NullString `db:"author_avatar"`
}

// ReportStatus represents the lifecycle of a comment report
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
)

// Report represents a user's complaint about a comment
type Report struct {
	ID         uuid.UUID    `db:"id"`
	CommentID  uuid.UUID    `db:"comment_id"`
	ReporterID uuid.UUID    `db:"reporter_id"`
	Reason     string       `db:"reason"`
	Status     ReportStatus `db:"status"`
	CreatedAt  time.Time    `db:"created_at"`
}

// ReportRow is a report joined with the offending comment and its author
type ReportRow struct {
	Report
	CommentContent string    `db:"comment_content"`
	CommentUserID  uuid.UUID `db:"comment_user_id"`
	ProductID      uuid.UUID `db:"product_id"`
	ReporterName   string    `db:"reporter_name"`
}
