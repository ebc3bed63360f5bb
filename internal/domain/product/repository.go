package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines product data access interface
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*Row, error)
	GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*Row, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, q *ListQuery) ([]*Row, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Row, error)
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Row, error)
	CountByStatus(ctx context.Context, status Status) (int, error)

	// Upvotes
	RemoveUpvote(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	AddUpvote(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	CountUpvotes(ctx context.Context, productID uuid.UUID) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new product repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// rowSelect is the joined projection shared by all reads. has_upvoted is
// resolved against the viewer in the same query, so listings never issue a
// second per-product lookup.
const rowSelect = `
	SELECT p.id, p.title, p.slug, p.description, p.website_url, p.thumbnail_url,
	       p.categories, p.user_id, p.status, p.created_at,
	       u.full_name AS owner_name, u.username AS owner_username, u.avatar_url AS owner_avatar,
	       (SELECT COUNT(*) FROM product_upvotes pu WHERE pu.product_id = p.id) AS upvote_count,
	       EXISTS(SELECT 1 FROM product_upvotes pu WHERE pu.product_id = p.id AND pu.user_id = $1) AS has_upvoted
	FROM products p
	JOIN users u ON u.id = p.user_id
`

func (r *repository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (id, title, slug, description, website_url, thumbnail_url, categories, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.Slug,
		p.Description,
		p.WebsiteURL,
		p.ThumbnailURL,
		p.Categories,
		p.UserID,
		p.Status,
		p.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrSlugExists
		}
		return fmt.Errorf("product repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*Row, error) {
	query := rowSelect + ` WHERE p.id = $2`
	var row Row
	err := r.db.GetContext(ctx, &row, query, viewerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*Row, error) {
	query := rowSelect + ` WHERE p.slug = $2`
	var row Row
	err := r.db.GetContext(ctx, &row, query, viewerID, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`, slug)
	return exists, err
}

func (r *repository) List(ctx context.Context, q *ListQuery) ([]*Row, error) {
	query := rowSelect + ` WHERE p.status = 'approved'`
	args := []interface{}{q.ViewerID}
	argPos := 2

	if q.Category != "" {
		query += fmt.Sprintf(` AND $%d = ANY(p.categories)`, argPos)
		args = append(args, q.Category)
		argPos++
	}

	if q.Search != "" {
		query += fmt.Sprintf(` AND (p.title ILIKE $%d OR p.description ILIKE $%d)`, argPos, argPos)
		args = append(args, "%"+q.Search+"%")
		argPos++
	}

	if q.Sort == "popular" {
		query += ` ORDER BY upvote_count DESC, p.created_at DESC`
	} else {
		query += ` ORDER BY p.created_at DESC`
	}

	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, q.Limit, q.Offset)

	var rows []*Row
	err := r.db.SelectContext(ctx, &rows, query, args...)
	return rows, err
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Row, error) {
	query := rowSelect + ` WHERE p.user_id = $2 ORDER BY p.created_at DESC`
	var rows []*Row
	err := r.db.SelectContext(ctx, &rows, query, ownerID, ownerID)
	return rows, err
}

func (r *repository) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Row, error) {
	query := rowSelect + ` WHERE p.status = $2 ORDER BY p.created_at DESC LIMIT $3 OFFSET $4`
	var rows []*Row
	err := r.db.SelectContext(ctx, &rows, query, uuid.Nil, status, limit, offset)
	return rows, err
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products WHERE status = $1`, status)
	return count, err
}

// RemoveUpvote deletes the (user, product) vote row. Returns true if a row
// was removed.
func (r *repository) RemoveUpvote(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM product_upvotes WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// AddUpvote inserts the vote row. The composite primary key plus ON CONFLICT
// keeps a racing double-insert from ever producing two rows.
func (r *repository) AddUpvote(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO product_upvotes (user_id, product_id, created_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID,
	)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) CountUpvotes(ctx context.Context, productID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM product_upvotes WHERE product_id = $1`, productID)
	return count, err
}
