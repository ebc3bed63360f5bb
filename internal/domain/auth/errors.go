package auth

import "errors"

var (
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrUserNotFound         = errors.New("user not found")
	ErrRefreshTokenRequired = errors.New("refresh token is required")
	ErrUserBanned           = errors.New("user is blocked")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
)
