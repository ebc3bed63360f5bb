package moderation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nojast/nojast-api/internal/domain/notification"
)

// Repository applies moderation decisions. Each decision and its side
// effects (notification, audit row) commit in one transaction.
type Repository interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductInfo, error)
	ApplyProductDecision(ctx context.Context, productID uuid.UUID, status string, n *notification.Notification, entry *Log) error

	GetCommentStatus(ctx context.Context, id uuid.UUID) (string, bool, error)
	ApplyCommentDecision(ctx context.Context, commentID uuid.UUID, status string, entry *Log) error

	GetReportStatus(ctx context.Context, id uuid.UUID) (reportStatus string, commentID uuid.UUID, found bool, err error)
	ResolveReport(ctx context.Context, reportID, commentID uuid.UUID, entry *Log) error
	DismissReport(ctx context.Context, reportID uuid.UUID, entry *Log) error

	ListLogs(ctx context.Context, limit, offset int) ([]*Log, error)
}

type repository struct {
	db            *sqlx.DB
	notifications notification.Repository
}

// NewRepository creates moderation repository
func NewRepository(db *sqlx.DB, notifications notification.Repository) Repository {
	return &repository{db: db, notifications: notifications}
}

const insertLogQuery = `
	INSERT INTO moderation_log (id, admin_id, target_type, target_id, action, note, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func insertLog(ctx context.Context, tx *sqlx.Tx, entry *Log) error {
	_, err := tx.ExecContext(ctx, insertLogQuery,
		entry.ID,
		entry.AdminID,
		entry.TargetType,
		entry.TargetID,
		entry.Action,
		entry.Note,
		entry.CreatedAt,
	)
	return err
}

func (r *repository) GetProduct(ctx context.Context, id uuid.UUID) (*ProductInfo, error) {
	var info ProductInfo
	err := r.db.GetContext(ctx, &info,
		`SELECT id, title, slug, user_id, status FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *repository) ApplyProductDecision(ctx context.Context, productID uuid.UUID, status string, n *notification.Notification, entry *Log) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE products SET status = $1 WHERE id = $2`, status, productID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrProductNotFound
	}

	if n != nil {
		if err := r.notifications.CreateTx(ctx, tx, n); err != nil {
			return err
		}
	}

	if err := insertLog(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetCommentStatus(ctx context.Context, id uuid.UUID) (string, bool, error) {
	var status string
	err := r.db.GetContext(ctx, &status, `SELECT status FROM comments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return status, true, nil
}

func (r *repository) ApplyCommentDecision(ctx context.Context, commentID uuid.UUID, status string, entry *Log) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE comments SET status = $1 WHERE id = $2`, status, commentID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrCommentNotFound
	}

	if err := insertLog(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetReportStatus(ctx context.Context, id uuid.UUID) (string, uuid.UUID, bool, error) {
	var row struct {
		Status    string    `db:"status"`
		CommentID uuid.UUID `db:"comment_id"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT status, comment_id FROM comment_reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", uuid.Nil, false, nil
		}
		return "", uuid.Nil, false, err
	}
	return row.Status, row.CommentID, true, nil
}

// ResolveReport upholds the complaint: the report closes as resolved and the
// offending comment is hidden. The report row stays for the audit trail.
func (r *repository) ResolveReport(ctx context.Context, reportID, commentID uuid.UUID, entry *Log) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE comment_reports SET status = 'resolved' WHERE id = $1`, reportID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrReportNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE comments SET status = 'rejected' WHERE id = $1`, commentID); err != nil {
		return err
	}

	if err := insertLog(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) DismissReport(ctx context.Context, reportID uuid.UUID, entry *Log) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE comment_reports SET status = 'rejected' WHERE id = $1`, reportID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrReportNotFound
	}

	if err := insertLog(ctx, tx, entry); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) ListLogs(ctx context.Context, limit, offset int) ([]*Log, error) {
	query := `SELECT * FROM moderation_log ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	var logs []*Log
	err := r.db.SelectContext(ctx, &logs, query, limit, offset)
	return logs, err
}
