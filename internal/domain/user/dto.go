package user

import (
	"time"

	"github.com/google/uuid"
)

// UpdateProfileRequest for PATCH /users/me
type UpdateProfileRequest struct {
	FullName  string `json:"full_name" validate:"required,min=2,max=100"`
	Username  string `json:"username" validate:"required,username"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// ProfileResponse is the public view of a user
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// AdminUserResponse is the admin view of a user
type AdminUserResponse struct {
	ProfileResponse
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsBanned bool   `json:"is_banned"`
}

// NewProfileResponse creates ProfileResponse from entity
func NewProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Username:  u.Username,
		AvatarURL: u.AvatarURL.String,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// NewAdminUserResponse creates AdminUserResponse from entity
func NewAdminUserResponse(u *User) AdminUserResponse {
	return AdminUserResponse{
		ProfileResponse: NewProfileResponse(u),
		Email:           u.Email,
		Role:            string(u.Role),
		IsBanned:        u.IsBanned,
	}
}
