package contact

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Message represents a contact form submission (matches contact_messages table)
type Message struct {
	ID        uuid.UUID      `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Body      string         `db:"body"`
	UserID    uuid.NullUUID  `db:"user_id"`
	IsRead    bool           `db:"is_read"`
	CreatedAt time.Time      `db:"created_at"`
}
