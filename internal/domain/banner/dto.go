package banner

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /admin/banners
type CreateRequest struct {
	Title     string `json:"title" validate:"required,min=2,max=100"`
	ImageURL  string `json:"image_url" validate:"required,url"`
	TargetURL string `json:"target_url" validate:"required,url"`
	Placement string `json:"placement" validate:"required,placement"`
	Priority  int    `json:"priority" validate:"min=0,max=100"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// Response is the public view of an ad
type Response struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	TargetURL string    `json:"target_url"`
	Placement Placement `json:"placement"`
}

// AdminResponse is the admin view with schedule and click stats
type AdminResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	ImageURL   string    `json:"image_url"`
	TargetURL  string    `json:"target_url"`
	Placement  Placement `json:"placement"`
	Priority   int       `json:"priority"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	IsActive   bool      `json:"is_active"`
	ClickCount int       `json:"click_count"`
	CreatedAt  string    `json:"created_at"`
}

// ToResponse converts an ad to the public view
func ToResponse(a *Ad) *Response {
	return &Response{
		ID:        a.ID,
		Title:     a.Title,
		ImageURL:  a.ImageURL,
		TargetURL: a.TargetURL,
		Placement: a.Placement,
	}
}

// ToAdminResponse converts an ad row to the admin view
func ToAdminResponse(a *AdWithClicks) *AdminResponse {
	return &AdminResponse{
		ID:         a.ID,
		Title:      a.Title,
		ImageURL:   a.ImageURL,
		TargetURL:  a.TargetURL,
		Placement:  a.Placement,
		Priority:   a.Priority,
		StartDate:  a.StartDate.Format(time.RFC3339),
		EndDate:    a.EndDate.Format(time.RFC3339),
		IsActive:   a.IsActive,
		ClickCount: a.ClickCount,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}
