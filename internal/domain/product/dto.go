package product

import (
	"time"

	"github.com/google/uuid"
)

// SubmitRequest for POST /products
type SubmitRequest struct {
	Title        string   `json:"title" validate:"required,min=3,max=100"`
	Description  string   `json:"description" validate:"required,min=20,max=2000"`
	WebsiteURL   string   `json:"website_url" validate:"required,url"`
	ThumbnailURL string   `json:"thumbnail_url" validate:"omitempty,url"`
	Categories   []string `json:"categories" validate:"required,min=1,max=3,dive,category"`
}

// ListQuery captures the listing filters
type ListQuery struct {
	Category string `validate:"omitempty,category"`
	Sort     string `validate:"sort"`
	Search   string `validate:"omitempty,max=100"`
	Limit    int
	Offset   int
	ViewerID uuid.UUID
}

// OwnerResponse is the embedded product owner
type OwnerResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// Response is the API view of a product
type Response struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description"`
	WebsiteURL   string        `json:"website_url"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	Categories   []string      `json:"categories"`
	Status       string        `json:"status"`
	Upvotes      int           `json:"upvotes"`
	HasUpvoted   bool          `json:"has_upvoted"`
	Owner        OwnerResponse `json:"owner"`
	CreatedAt    string        `json:"created_at"`
}

// UpvoteResponse reports the post-toggle vote state
type UpvoteResponse struct {
	Upvoted bool `json:"upvoted"`
	Count   int  `json:"count"`
}

// ResponseFromRow converts a joined row to the API view
func ResponseFromRow(row *Row) *Response {
	return &Response{
		ID:           row.ID,
		Title:        row.Title,
		Slug:         row.Slug,
		Description:  row.Description,
		WebsiteURL:   row.WebsiteURL,
		ThumbnailURL: row.ThumbnailURL.String,
		Categories:   row.Categories,
		Status:       string(row.Status),
		Upvotes:      row.UpvoteCount,
		HasUpvoted:   row.HasUpvoted,
		Owner: OwnerResponse{
			ID:        row.UserID,
			FullName:  row.OwnerName,
			Username:  row.OwnerUsername,
			AvatarURL: row.OwnerAvatar.String,
		},
		CreatedAt: row.CreatedAt.Format(time.RFC3339),
	}
}
