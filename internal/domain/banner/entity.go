package banner

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Placement identifies a banner slot on the site
type Placement string

const (
	PlacementMainLeft  Placement = "main-left"
	PlacementMainRight Placement = "main-right"
	PlacementProduct   Placement = "product"
)

// Ad represents a banner ad (matches banner_ads table)
type Ad struct {
	ID        uuid.UUID      `db:"id"`
	Title     string         `db:"title"`
	ImageURL  string         `db:"image_url"`
	TargetURL string         `db:"target_url"`
	Placement Placement      `db:"placement"`
	Priority  int            `db:"priority"`
	StartDate time.Time      `db:"start_date"`
	EndDate   time.Time      `db:"end_date"`
	IsActive  bool           `db:"is_active"`
	CreatedBy uuid.NullUUID  `db:"created_by"`
	CreatedAt time.Time      `db:"created_at"`
}

// AdWithClicks is the admin listing row
type AdWithClicks struct {
	Ad
	ClickCount int `db:"click_count"`
}

// Click records one click on an ad
type Click struct {
	ID        uuid.UUID      `db:"id"`
	AdID      uuid.UUID      `db:"ad_id"`
	UserID    uuid.NullUUID  `db:"user_id"`
	UserAgent sql.NullString `db:"user_agent"`
	IPAddress string         `db:"ip_address"`
	CreatedAt time.Time      `db:"created_at"`
}

// Eligible reports whether the ad may be served at the given moment.
func (a *Ad) Eligible(now time.Time) bool {
	return a.IsActive && !now.Before(a.StartDate) && !now.After(a.EndDate)
}
