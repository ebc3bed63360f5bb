package moderation

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/domain/comment"
	"github.com/nojast/nojast-api/internal/domain/notification"
	"github.com/nojast/nojast-api/internal/domain/product"
)

// Announcer pushes a persisted notification to connected clients.
type Announcer interface {
	Announce(ctx context.Context, n *notification.Notification)
}

// Service handles moderation workflow
type Service struct {
	repo      Repository
	products  product.Repository
	comments  comment.Repository
	announcer Announcer
}

// NewService creates moderation service
func NewService(repo Repository, products product.Repository, comments comment.Repository, announcer Announcer) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		comments:  comments,
		announcer: announcer,
	}
}

func newLog(adminID uuid.UUID, targetType TargetType, targetID uuid.UUID, action Action, note string) *Log {
	entry := &Log{
		ID:         uuid.New(),
		AdminID:    adminID,
		TargetType: targetType,
		TargetID:   targetID,
		Action:     action,
		CreatedAt:  time.Now(),
	}
	if note != "" {
		entry.Note = sql.NullString{String: note, Valid: true}
	}
	return entry
}

// ApproveProduct moves a product to approved and notifies its owner. A
// decision may be reversed later; repeating the current status is a no-op
// and sends nothing.
func (s *Service) ApproveProduct(ctx context.Context, adminID, productID uuid.UUID, note string) error {
	return s.decideProduct(ctx, adminID, productID, product.StatusApproved, ActionApproved, note)
}

// RejectProduct moves a product to rejected and notifies its owner.
func (s *Service) RejectProduct(ctx context.Context, adminID, productID uuid.UUID, note string) error {
	return s.decideProduct(ctx, adminID, productID, product.StatusRejected, ActionRejected, note)
}

func (s *Service) decideProduct(ctx context.Context, adminID, productID uuid.UUID, status product.Status, action Action, note string) error {
	info, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if info == nil {
		return ErrProductNotFound
	}
	if info.Status == string(status) {
		return nil
	}

	var message string
	if status == product.StatusApproved {
		message = notification.ProductApprovedMessage(info.Title)
	} else {
		message = notification.ProductRejectedMessage(info.Title)
	}
	n := notification.Build(info.UserID, notification.TypeSystem, message, notification.ProductLink(info.Slug))

	entry := newLog(adminID, TargetProduct, productID, action, note)

	if err := s.repo.ApplyProductDecision(ctx, productID, string(status), n, entry); err != nil {
		return err
	}

	log.Info().
		Str("product_id", productID.String()).
		Str("admin_id", adminID.String()).
		Str("action", string(action)).
		Msg("Product moderated")

	if s.announcer != nil {
		s.announcer.Announce(ctx, n)
	}
	return nil
}

// ApproveComment publishes a pending comment.
func (s *Service) ApproveComment(ctx context.Context, adminID, commentID uuid.UUID, note string) error {
	return s.decideComment(ctx, adminID, commentID, comment.StatusApproved, ActionApproved, note)
}

// RejectComment hides a comment.
func (s *Service) RejectComment(ctx context.Context, adminID, commentID uuid.UUID, note string) error {
	return s.decideComment(ctx, adminID, commentID, comment.StatusRejected, ActionRejected, note)
}

func (s *Service) decideComment(ctx context.Context, adminID, commentID uuid.UUID, status comment.Status, action Action, note string) error {
	current, found, err := s.repo.GetCommentStatus(ctx, commentID)
	if err != nil {
		return err
	}
	if !found {
		return ErrCommentNotFound
	}
	if current == string(status) {
		return nil
	}

	entry := newLog(adminID, TargetComment, commentID, action, note)
	if err := s.repo.ApplyCommentDecision(ctx, commentID, string(status), entry); err != nil {
		return err
	}

	log.Info().
		Str("comment_id", commentID.String()).
		Str("admin_id", adminID.String()).
		Str("action", string(action)).
		Msg("Comment moderated")
	return nil
}

// ResolveReport upholds a report: the report closes and the reported
// comment is hidden.
func (s *Service) ResolveReport(ctx context.Context, adminID, reportID uuid.UUID, note string) error {
	_, commentID, found, err := s.repo.GetReportStatus(ctx, reportID)
	if err != nil {
		return err
	}
	if !found {
		return ErrReportNotFound
	}

	entry := newLog(adminID, TargetReport, reportID, ActionResolved, note)
	if err := s.repo.ResolveReport(ctx, reportID, commentID, entry); err != nil {
		return err
	}

	log.Info().
		Str("report_id", reportID.String()).
		Str("admin_id", adminID.String()).
		Msg("Report resolved")
	return nil
}

// DismissReport closes a report without touching the comment.
func (s *Service) DismissReport(ctx context.Context, adminID, reportID uuid.UUID, note string) error {
	_, _, found, err := s.repo.GetReportStatus(ctx, reportID)
	if err != nil {
		return err
	}
	if !found {
		return ErrReportNotFound
	}

	entry := newLog(adminID, TargetReport, reportID, ActionDismissed, note)
	if err := s.repo.DismissReport(ctx, reportID, entry); err != nil {
		return err
	}

	log.Info().
		Str("report_id", reportID.String()).
		Str("admin_id", adminID.String()).
		Msg("Report dismissed")
	return nil
}

// ProductQueue lists products awaiting (or past) moderation.
func (s *Service) ProductQueue(ctx context.Context, status product.Status, limit, offset int) ([]*product.Row, int, error) {
	rows, err := s.products.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.CountByStatus(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CommentQueue lists comments by moderation status.
func (s *Service) CommentQueue(ctx context.Context, status comment.Status, limit, offset int) ([]*comment.Row, int, error) {
	rows, err := s.comments.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.comments.CountByStatus(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ReportQueue lists comment reports by status.
func (s *Service) ReportQueue(ctx context.Context, status comment.ReportStatus, limit, offset int) ([]*comment.ReportRow, int, error) {
	rows, err := s.comments.ListReportsByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.comments.CountReportsByStatus(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Stats returns pending queue sizes for the admin dashboard.
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	pendingProducts, err := s.products.CountByStatus(ctx, product.StatusPending)
	if err != nil {
		return nil, err
	}
	pendingComments, err := s.comments.CountByStatus(ctx, comment.StatusPending)
	if err != nil {
		return nil, err
	}
	pendingReports, err := s.comments.CountReportsByStatus(ctx, comment.ReportPending)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{
		PendingProducts: pendingProducts,
		PendingComments: pendingComments,
		PendingReports:  pendingReports,
	}, nil
}

// Logs returns the audit trail, newest first.
func (s *Service) Logs(ctx context.Context, limit, offset int) ([]*Log, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListLogs(ctx, limit, offset)
}
