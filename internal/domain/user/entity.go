package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user_role enum)
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FullName     string         `db:"full_name"`
	Username     string         `db:"username"`
	AvatarURL    sql.NullString `db:"avatar_url"`
	Role         Role           `db:"role"`
	IsBanned     bool           `db:"is_banned"`

	// Password reset
	ResetToken    sql.NullString `db:"reset_token"`
	ResetTokenExp sql.NullTime   `db:"reset_token_exp"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive returns true if user is not banned
func (u *User) IsActive() bool {
	return !u.IsBanned
}
