package comment

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /products/{slug}/comments
type CreateRequest struct {
	Content string `json:"content" validate:"required,min=2,max=1000"`
}

// ReportRequest for POST /comments/{id}/report
type ReportRequest struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}

// AuthorResponse is the embedded comment author
type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// Response is the API view of a comment
type Response struct {
	ID        uuid.UUID      `json:"id"`
	ProductID uuid.UUID      `json:"product_id"`
	Content   string         `json:"content"`
	Status    string         `json:"status"`
	Author    AuthorResponse `json:"author"`
	CreatedAt string         `json:"created_at"`
}

// ReportResponse is the admin view of a report
type ReportResponse struct {
	ID             uuid.UUID `json:"id"`
	CommentID      uuid.UUID `json:"comment_id"`
	CommentContent string    `json:"comment_content"`
	ProductID      uuid.UUID `json:"product_id"`
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	ReporterName   string    `json:"reporter_name"`
	CreatedAt      string    `json:"created_at"`
}

// ResponseFromRow converts a joined row to the API view
func ResponseFromRow(row *Row) *Response {
	return &Response{
		ID:        row.ID,
		ProductID: row.ProductID,
		Content:   row.Content,
		Status:    string(row.Status),
		Author: AuthorResponse{
			ID:        row.UserID,
			FullName:  row.AuthorName,
			Username:  row.AuthorUsername,
			AvatarURL: row.AuthorAvatar.String,
		},
		CreatedAt: row.CreatedAt.Format(time.RFC3339),
	}
}

// ReportResponseFromRow converts a joined report row to the admin view
func ReportResponseFromRow(row *ReportRow) *ReportResponse {
	return &ReportResponse{
		ID:             row.ID,
		CommentID:      row.CommentID,
		CommentContent: row.CommentContent,
		ProductID:      row.ProductID,
		Reason:         row.Reason,
		Status:         string(row.Status),
		ReporterName:   row.ReporterName,
		CreatedAt:      row.CreatedAt.Format(time.RFC3339),
	}
}
