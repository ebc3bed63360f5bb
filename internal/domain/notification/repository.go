package notification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines notification data access
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateTx(ctx context.Context, tx *sqlx.Tx, n *Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, error)
	CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates notification repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const insertQuery = `
	INSERT INTO notifications (id, user_id, type, message, link_url, is_read, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *repository) Create(ctx context.Context, n *Notification) error {
	_, err := r.db.ExecContext(ctx, insertQuery,
		n.ID,
		n.UserID,
		n.Type,
		n.Message,
		n.LinkURL,
		n.IsRead,
		n.CreatedAt,
	)
	return err
}

// CreateTx inserts a notification inside a caller-owned transaction, so
// moderation can commit the status change and its notification atomically.
func (r *repository) CreateTx(ctx context.Context, tx *sqlx.Tx, n *Notification) error {
	_, err := tx.ExecContext(ctx, insertQuery,
		n.ID,
		n.UserID,
		n.Type,
		n.Message,
		n.LinkURL,
		n.IsRead,
		n.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	var n Notification
	err := r.db.GetContext(ctx, &n, `SELECT * FROM notifications WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, error) {
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var notifications []*Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit, offset)
	return notifications, err
}

func (r *repository) CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID)
	return count, err
}

func (r *repository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true, read_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true, read_at = NOW() WHERE user_id = $1 AND NOT is_read`,
		userID,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOlderThan removes all notifications older than the specified duration
func (r *repository) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	result, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
