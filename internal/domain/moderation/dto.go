package moderation

import "time"

// DecisionRequest carries an optional admin note with a decision
type DecisionRequest struct {
	Note string `json:"note" validate:"omitempty,max=500"`
}

// StatsResponse summarizes the moderation queues
type StatsResponse struct {
	PendingProducts int `json:"pending_products"`
	PendingComments int `json:"pending_comments"`
	PendingReports  int `json:"pending_reports"`
}

// LogResponse is the API view of an audit entry
type LogResponse struct {
	ID         string `json:"id"`
	AdminID    string `json:"admin_id"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Action     string `json:"action"`
	Note       string `json:"note,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// ToLogResponse converts an audit entry to the API view
func ToLogResponse(l *Log) *LogResponse {
	return &LogResponse{
		ID:         l.ID.String(),
		AdminID:    l.AdminID.String(),
		TargetType: string(l.TargetType),
		TargetID:   l.TargetID.String(),
		Action:     string(l.Action),
		Note:       l.Note.String,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}
