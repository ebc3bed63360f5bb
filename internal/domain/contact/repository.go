package contact

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines contact message data access
type Repository interface {
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context, limit, offset int) ([]*Message, error)
	Count(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates contact repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO contact_messages (id, name, email, phone, body, user_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.Email,
		m.Phone,
		m.Body,
		m.UserID,
		m.IsRead,
		m.CreatedAt,
	)
	return err
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]*Message, error) {
	query := `SELECT * FROM contact_messages ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	var messages []*Message
	err := r.db.SelectContext(ctx, &messages, query, limit, offset)
	return messages, err
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM contact_messages`)
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
