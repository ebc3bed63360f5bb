package banner

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles banner business logic
type Service struct {
	repo Repository
	now  func() time.Time
	pick func(n int) int
}

// NewService creates new banner service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		pick: rand.Intn,
	}
}

// WithClock overrides the service clock. Used in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithPicker overrides the rotation picker. Used in tests.
func (s *Service) WithPicker(pick func(n int) int) *Service {
	s.pick = pick
	return s
}

// Create schedules a new banner ad.
func (s *Service) Create(ctx context.Context, adminID uuid.UUID, req *CreateRequest) (*Ad, error) {
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDates
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return nil, ErrInvalidDates
	}
	if !start.Before(end) {
		return nil, ErrInvalidDates
	}

	a := &Ad{
		ID:        uuid.New(),
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Placement: Placement(req.Placement),
		Priority:  req.Priority,
		StartDate: start,
		EndDate:   end,
		IsActive:  true,
		CreatedBy: uuid.NullUUID{UUID: adminID, Valid: true},
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Info().
		Str("ad_id", a.ID.String()).
		Str("placement", string(a.Placement)).
		Msg("Banner ad created")

	return a, nil
}

// ListForPlacement returns the ads currently servable in a slot, highest
// priority first.
func (s *Service) ListForPlacement(ctx context.Context, placement Placement) ([]*Ad, error) {
	return s.repo.ListEligible(ctx, placement, s.now())
}

// Rotate picks one ad for a slot. Among the eligible ads only the top
// priority tier rotates; lower tiers wait until the tier above expires.
func (s *Service) Rotate(ctx context.Context, placement Placement) (*Ad, error) {
	ads, err := s.repo.ListEligible(ctx, placement, s.now())
	if err != nil {
		return nil, err
	}
	if len(ads) == 0 {
		return nil, nil
	}

	tier := ads[0].Priority
	n := 0
	for _, a := range ads {
		if a.Priority != tier {
			break
		}
		n++
	}

	return ads[s.pick(n)], nil
}

// RecordClick stores one click with its request attribution.
func (s *Service) RecordClick(ctx context.Context, adID uuid.UUID, userID uuid.UUID, userAgent, ip string) error {
	a, err := s.repo.GetByID(ctx, adID)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}

	c := &Click{
		ID:        uuid.New(),
		AdID:      adID,
		IPAddress: ip,
		CreatedAt: s.now(),
	}
	if userID != uuid.Nil {
		c.UserID = uuid.NullUUID{UUID: userID, Valid: true}
	}
	if userAgent != "" {
		c.UserAgent = sql.NullString{String: userAgent, Valid: true}
	}

	return s.repo.RecordClick(ctx, c)
}

// ListAll returns every ad with click counts, for the admin panel.
func (s *Service) ListAll(ctx context.Context) ([]*AdWithClicks, error) {
	return s.repo.ListAll(ctx)
}

// SetActive toggles an ad on or off.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

// Delete removes an ad and its click history.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
