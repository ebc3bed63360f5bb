package contact

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /contact
type CreateRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// Response is the admin view of a message
type Response struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Message   string     `json:"message"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt string     `json:"created_at"`
}

// ToResponse converts a message to the API view
func ToResponse(m *Message) *Response {
	resp := &Response{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Body,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.Phone.Valid {
		resp.Phone = m.Phone.String
	}
	if m.UserID.Valid {
		id := m.UserID.UUID
		resp.UserID = &id
	}
	return resp
}
