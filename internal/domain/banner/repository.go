package banner

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines banner data access interface
type Repository interface {
	Create(ctx context.Context, a *Ad) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ad, error)
	ListEligible(ctx context.Context, placement Placement, now time.Time) ([]*Ad, error)
	ListAll(ctx context.Context) ([]*AdWithClicks, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	RecordClick(ctx context.Context, c *Click) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new banner repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Ad) error {
	query := `
		INSERT INTO banner_ads (id, title, image_url, target_url, placement, priority, start_date, end_date, is_active, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Title,
		a.ImageURL,
		a.TargetURL,
		a.Placement,
		a.Priority,
		a.StartDate,
		a.EndDate,
		a.IsActive,
		a.CreatedBy,
		a.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Ad, error) {
	var a Ad
	err := r.db.GetContext(ctx, &a, `SELECT * FROM banner_ads WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListEligible(ctx context.Context, placement Placement, now time.Time) ([]*Ad, error) {
	query := `
		SELECT * FROM banner_ads
		WHERE placement = $1 AND is_active AND start_date <= $2 AND end_date >= $2
		ORDER BY priority DESC, created_at DESC
	`
	var ads []*Ad
	err := r.db.SelectContext(ctx, &ads, query, placement, now)
	return ads, err
}

func (r *repository) ListAll(ctx context.Context) ([]*AdWithClicks, error) {
	query := `
		SELECT b.*, (SELECT COUNT(*) FROM ad_clicks c WHERE c.ad_id = b.id) AS click_count
		FROM banner_ads b
		ORDER BY b.created_at DESC
	`
	var ads []*AdWithClicks
	err := r.db.SelectContext(ctx, &ads, query)
	return ads, err
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE banner_ads SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM banner_ads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) RecordClick(ctx context.Context, c *Click) error {
	query := `
		INSERT INTO ad_clicks (id, ad_id, user_id, user_agent, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.AdID,
		c.UserID,
		c.UserAgent,
		c.IPAddress,
		c.CreatedAt,
	)
	return err
}
