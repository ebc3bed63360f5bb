package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines comment data access interface
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]*Row, error)
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Row, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
	DeleteOwn(ctx context.Context, id, userID uuid.UUID) error

	// Reports
	CreateReport(ctx context.Context, rep *Report) error
	GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListReportsByStatus(ctx context.Context, status ReportStatus, limit, offset int) ([]*ReportRow, error)
	CountReportsByStatus(ctx context.Context, status ReportStatus) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new comment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const rowSelect = `
	SELECT c.id, c.product_id, c.user_id, c.content, c.status, c.created_at,
	       u.full_name AS author_name, u.username AS author_username, u.avatar_url AS author_avatar
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

func (r *repository) Create(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (id, product_id, user_id, content, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProductID,
		c.UserID,
		c.Content,
		c.Status,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("comment repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var c Comment
	err := r.db.GetContext(ctx, &c, `SELECT * FROM comments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]*Row, error) {
	query := rowSelect + ` WHERE c.product_id = $1 AND c.status = 'approved' ORDER BY c.created_at ASC`
	var rows []*Row
	err := r.db.SelectContext(ctx, &rows, query, productID)
	return rows, err
}

func (r *repository) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Row, error) {
	query := rowSelect + ` WHERE c.status = $1 ORDER BY c.created_at ASC LIMIT $2 OFFSET $3`
	var rows []*Row
	err := r.db.SelectContext(ctx, &rows, query, status, limit, offset)
	return rows, err
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments WHERE status = $1`, status)
	return count, err
}

// DeleteOwn removes a comment only when it belongs to userID.
func (r *repository) DeleteOwn(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateReport inserts a report. The (comment_id, reporter_id) unique
// constraint turns a repeat report into ErrAlreadyReported.
func (r *repository) CreateReport(ctx context.Context, rep *Report) error {
	query := `
		INSERT INTO comment_reports (id, comment_id, reporter_id, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		rep.ID,
		rep.CommentID,
		rep.ReporterID,
		rep.Reason,
		rep.Status,
		rep.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyReported
		}
		return fmt.Errorf("comment repository create report: %w", err)
	}
	return nil
}

func (r *repository) GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	var rep Report
	err := r.db.GetContext(ctx, &rep, `SELECT * FROM comment_reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

func (r *repository) ListReportsByStatus(ctx context.Context, status ReportStatus, limit, offset int) ([]*ReportRow, error) {
	query := `
		SELECT rep.id, rep.comment_id, rep.reporter_id, rep.reason, rep.status, rep.created_at,
		       c.content AS comment_content, c.user_id AS comment_user_id, c.product_id,
		       u.full_name AS reporter_name
		FROM comment_reports rep
		JOIN comments c ON c.id = rep.comment_id
		JOIN users u ON u.id = rep.reporter_id
		WHERE rep.status = $1
		ORDER BY rep.created_at ASC
		LIMIT $2 OFFSET $3
	`
	var rows []*ReportRow
	err := r.db.SelectContext(ctx, &rows, query, status, limit, offset)
	return rows, err
}

func (r *repository) CountReportsByStatus(ctx context.Context, status ReportStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comment_reports WHERE status = $1`, status)
	return count, err
}
