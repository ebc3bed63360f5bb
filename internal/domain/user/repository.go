package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines user data access interface
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName, username, avatarURL string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetResetToken(ctx context.Context, id uuid.UUID, token string, exp sql.NullTime) error
	GetByResetToken(ctx context.Context, token string) (*User, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
	List(ctx context.Context, limit, offset int) ([]*User, error)
	Count(ctx context.Context) (int, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const uniqueViolation = "23505"

// Create creates a new user
func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, username, avatar_url, role, is_banned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Username,
		user.AvatarURL,
		user.Role,
		user.IsBanned,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == "users_username_key" {
			return ErrUsernameTaken
		}
		return fmt.Errorf("user repository create: %w", err)
	}

	return nil
}

// GetByID returns user by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT * FROM users WHERE id = $1`
	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns user by email
func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT * FROM users WHERE email = $1`
	var u User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByUsername returns user by username
func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT * FROM users WHERE username = $1`
	var u User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile updates display name, username and avatar
func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName, username, avatarURL string) error {
	query := `
		UPDATE users
		SET full_name = $1, username = $2, avatar_url = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, fullName, username, avatarURL, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrUsernameTaken
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, reset_token = NULL, reset_token_exp = NULL, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, passwordHash, id)
	return err
}

// SetResetToken stores a single-use password reset token
func (r *repository) SetResetToken(ctx context.Context, id uuid.UUID, token string, exp sql.NullTime) error {
	query := `UPDATE users SET reset_token = NULLIF($1, ''), reset_token_exp = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, token, exp, id)
	return err
}

// GetByResetToken returns the user holding an unexpired reset token
func (r *repository) GetByResetToken(ctx context.Context, token string) (*User, error) {
	query := `SELECT * FROM users WHERE reset_token = $1 AND reset_token_exp > NOW()`
	var u User
	err := r.db.GetContext(ctx, &u, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// SetBanned flips the block flag
func (r *repository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	query := `UPDATE users SET is_banned = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, banned, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns users ordered by signup date (admin function)
func (r *repository) List(ctx context.Context, limit, offset int) ([]*User, error) {
	query := `SELECT * FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	var users []*User
	err := r.db.SelectContext(ctx, &users, query, limit, offset)
	return users, err
}

// Count returns total user count (admin function)
func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users`
	var count int
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}
