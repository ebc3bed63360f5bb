package moderation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// TargetType identifies what a moderation decision was applied to
type TargetType string

const (
	TargetProduct TargetType = "product"
	TargetComment TargetType = "comment"
	TargetReport  TargetType = "report"
)

// Action is the decision taken
type Action string

const (
	ActionApproved  Action = "approved"
	ActionRejected  Action = "rejected"
	ActionResolved  Action = "resolved"
	ActionDismissed Action = "dismissed"
)

// Log is one row of the moderation audit trail. Every decision writes one,
// in the same transaction as the decision itself.
type Log struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	AdminID    uuid.UUID      `db:"admin_id" json:"admin_id"`
	TargetType TargetType     `db:"target_type" json:"target_type"`
	TargetID   uuid.UUID      `db:"target_id" json:"target_id"`
	Action     Action         `db:"action" json:"action"`
	Note       sql.NullString `db:"note" json:"-"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// ProductInfo is the slice of a product moderation needs
type ProductInfo struct {
	ID     uuid.UUID `db:"id"`
	Title  string    `db:"title"`
	Slug   string    `db:"slug"`
	UserID uuid.UUID `db:"user_id"`
	Status string    `db:"status"`
}
