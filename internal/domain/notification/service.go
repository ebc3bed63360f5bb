package notification

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Publisher pushes realtime notification events to connected clients.
type Publisher interface {
	Publish(userID uuid.UUID, payload interface{})
}

// Service handles notification logic
type Service struct {
	repo      Repository
	publisher Publisher
}

// NewService creates notification service
func NewService(repo Repository, publisher Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Build assembles an unsaved notification. Used by callers that insert it
// inside their own transaction.
func Build(userID uuid.UUID, notifType Type, message, linkURL string) *Notification {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if linkURL != "" {
		n.LinkURL = sql.NullString{String: linkURL, Valid: true}
	}
	return n
}

// Create persists a notification and pushes it to connected clients.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, notifType Type, message, linkURL string) (*Notification, error) {
	n := Build(userID, notifType, message, linkURL)

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.Announce(ctx, n)
	return n, nil
}

// Announce pushes an already-persisted notification to connected clients.
// Moderation calls this after its transaction commits.
func (s *Service) Announce(ctx context.Context, n *Notification) {
	if s.publisher == nil {
		return
	}

	unread, err := s.repo.CountUnreadByUser(ctx, n.UserID)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count unread notifications for realtime push")
	}

	s.publisher.Publish(n.UserID, map[string]interface{}{
		"type": "notification:new",
		"data": map[string]interface{}{
			"notification": ToResponse(n),
			"unread_count": unread,
		},
	})
}

// List returns notifications for user
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// GetUnreadCount returns unread count
func (s *Service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnreadByUser(ctx, userID)
}

// MarkAsRead marks single notification as read
func (s *Service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

// MarkAllAsRead marks all notifications as read
func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Delete removes a user's notification
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}

// --- Message templates (Persian) and helpers for specific notifications ---

// ProductApprovedMessage is the text sent when a submission passes moderation.
func ProductApprovedMessage(title string) string {
	return `محصول شما "` + title + `" تایید شد!`
}

// ProductRejectedMessage is the text sent when a submission is rejected.
func ProductRejectedMessage(title string) string {
	return `محصول شما "` + title + `" رد شد.`
}

// ProductLink builds the public product URL path.
func ProductLink(slug string) string {
	return "/products/" + slug
}

// NotifyUpvote notifies the product owner about a new upvote.
func (s *Service) NotifyUpvote(ctx context.Context, ownerID uuid.UUID, productTitle, productSlug string) {
	_, err := s.Create(ctx, ownerID, TypeUpvote,
		`محصول شما "`+productTitle+`" یک رای جدید دریافت کرد!`,
		ProductLink(productSlug),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create upvote notification")
	}
}

// NotifyComment notifies the product owner about a new comment.
func (s *Service) NotifyComment(ctx context.Context, ownerID uuid.UUID, productTitle, productSlug string) {
	_, err := s.Create(ctx, ownerID, TypeComment,
		`نظر جدیدی برای محصول "`+productTitle+`" ثبت شد.`,
		ProductLink(productSlug),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create comment notification")
	}
}
