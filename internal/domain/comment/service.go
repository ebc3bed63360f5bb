package comment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/domain/product"
)

// Notifier delivers notifications triggered by comment activity.
type Notifier interface {
	NotifyComment(ctx context.Context, ownerID uuid.UUID, productTitle, productSlug string)
}

// Service handles comment business logic
type Service struct {
	repo     Repository
	products product.Repository
	notifier Notifier
}

// NewService creates new comment service
func NewService(repo Repository, products product.Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		products: products,
		notifier: notifier,
	}
}

// Create adds a pending comment to an approved product and notifies the
// product owner. Commenting on your own product sends nothing.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, productSlug string, req *CreateRequest) (*Comment, error) {
	p, err := s.products.GetBySlug(ctx, productSlug, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != product.StatusApproved {
		return nil, ErrProductNotFound
	}

	c := &Comment{
		ID:        uuid.New(),
		ProductID: p.ID,
		UserID:    userID,
		Content:   req.Content,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info().
		Str("comment_id", c.ID.String()).
		Str("product_id", p.ID.String()).
		Msg("Comment submitted")

	if p.UserID != userID && s.notifier != nil {
		s.notifier.NotifyComment(ctx, p.UserID, p.Title, p.Slug)
	}

	return c, nil
}

// ListByProduct returns the approved comments on an approved product.
func (s *Service) ListByProduct(ctx context.Context, productSlug string) ([]*Row, error) {
	p, err := s.products.GetBySlug(ctx, productSlug, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != product.StatusApproved {
		return nil, ErrProductNotFound
	}

	return s.repo.ListApprovedByProduct(ctx, p.ID)
}

// Delete removes the caller's own comment. Comments by other users are
// invisible to this operation.
func (s *Service) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	return s.repo.DeleteOwn(ctx, commentID, userID)
}

// Report files a complaint about a comment. One report per user per comment.
func (s *Service) Report(ctx context.Context, reporterID, commentID uuid.UUID, req *ReportRequest) (*Report, error) {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	rep := &Report{
		ID:         uuid.New(),
		CommentID:  commentID,
		ReporterID: reporterID,
		Reason:     req.Reason,
		Status:     ReportPending,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.CreateReport(ctx, rep); err != nil {
		return nil, err
	}

	log.Info().
		Str("report_id", rep.ID.String()).
		Str("comment_id", commentID.String()).
		Msg("Comment reported")

	return rep, nil
}
