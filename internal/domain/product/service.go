package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/pkg/slug"
)

// Notifier delivers notifications triggered by product activity. Implemented
// by the notification service; a narrow interface here keeps the packages
// from depending on each other.
type Notifier interface {
	NotifyUpvote(ctx context.Context, ownerID uuid.UUID, productTitle, productSlug string)
}

// Service handles product business logic
type Service struct {
	repo     Repository
	notifier Notifier
}

// NewService creates new product service
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
	}
}

// Submit creates a product in pending status, awaiting moderation.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, req *SubmitRequest) (*Product, error) {
	productSlug := slug.Make(req.Title)

	exists, err := s.repo.SlugExists(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugExists
	}

	p := &Product{
		ID:          uuid.New(),
		Title:       req.Title,
		Slug:        productSlug,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
		Categories:  req.Categories,
		UserID:      userID,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
	if req.ThumbnailURL != "" {
		p.ThumbnailURL.String = req.ThumbnailURL
		p.ThumbnailURL.Valid = true
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", p.ID.String()).
		Str("slug", p.Slug).
		Str("user_id", userID.String()).
		Msg("Product submitted")

	return p, nil
}

// GetBySlug returns a product. Non-approved products are visible only to
// their owner and to admins.
func (s *Service) GetBySlug(ctx context.Context, productSlug string, viewerID uuid.UUID, viewerIsAdmin bool) (*Row, error) {
	row, err := s.repo.GetBySlug(ctx, productSlug, viewerID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	if row.Status != StatusApproved && row.UserID != viewerID && !viewerIsAdmin {
		return nil, ErrNotFound
	}
	return row, nil
}

// List returns approved products matching the query filters.
func (s *Service) List(ctx context.Context, q *ListQuery) ([]*Row, error) {
	if q.Limit <= 0 || q.Limit > 50 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.repo.List(ctx, q)
}

// ListByOwner returns all of a user's own submissions, any status.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Row, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// ToggleUpvote flips the viewer's vote on a product. Voting for the first
// time adds the vote and notifies the owner; voting again removes it. A
// second identical toggle always restores the prior state.
func (s *Service) ToggleUpvote(ctx context.Context, userID, productID uuid.UUID) (*UpvoteResponse, error) {
	row, err := s.repo.GetByID(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if row == nil || row.Status != StatusApproved {
		return nil, ErrNotFound
	}

	// Remove first: if a vote existed the toggle is a retraction and we are
	// done. Otherwise insert; ON CONFLICT makes a concurrent duplicate a no-op.
	removed, err := s.repo.RemoveUpvote(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	upvoted := false
	if !removed {
		added, err := s.repo.AddUpvote(ctx, userID, productID)
		if err != nil {
			return nil, err
		}
		upvoted = added

		if added && row.UserID != userID && s.notifier != nil {
			s.notifier.NotifyUpvote(ctx, row.UserID, row.Title, row.Slug)
		}
	}

	count, err := s.repo.CountUpvotes(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &UpvoteResponse{Upvoted: upvoted, Count: count}, nil
}
