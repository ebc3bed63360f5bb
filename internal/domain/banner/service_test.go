package banner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	Repository
	ads    []*Ad
	clicks []*Click
}

func (f *fakeRepo) Create(ctx context.Context, a *Ad) error {
	f.ads = append(f.ads, a)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Ad, error) {
	for _, a := range f.ads {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListEligible(ctx context.Context, placement Placement, now time.Time) ([]*Ad, error) {
	var out []*Ad
	for _, a := range f.ads {
		if a.Placement == placement && a.Eligible(now) {
			out = append(out, a)
		}
	}
	// priority DESC, stable
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Priority > out[j-1].Priority; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (f *fakeRepo) RecordClick(ctx context.Context, c *Click) error {
	f.clicks = append(f.clicks, c)
	return nil
}

func ad(placement Placement, priority int, start, end time.Time, active bool) *Ad {
	return &Ad{
		ID:        uuid.New(),
		Title:     "ad",
		Placement: placement,
		Priority:  priority,
		StartDate: start,
		EndDate:   end,
		IsActive:  active,
	}
}

func TestEligibilityWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	service := NewService(repo).WithClock(func() time.Time { return now })

	live := ad(PlacementMainLeft, 1, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), true)
	expired := ad(PlacementMainLeft, 5, now.AddDate(0, 0, -10), now.AddDate(0, 0, -2), true)
	future := ad(PlacementMainLeft, 5, now.AddDate(0, 0, 2), now.AddDate(0, 0, 10), true)
	inactive := ad(PlacementMainLeft, 5, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), false)
	repo.ads = []*Ad{live, expired, future, inactive}

	ads, err := service.ListForPlacement(context.Background(), PlacementMainLeft)
	if err != nil {
		t.Fatalf("ListForPlacement() error = %v", err)
	}

	if len(ads) != 1 || ads[0].ID != live.ID {
		t.Errorf("eligible ads = %d, want only the in-window active ad", len(ads))
	}
}

func TestEligibilityBoundariesInclusive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	a := ad(PlacementProduct, 1, now, now, true)

	if !a.Eligible(now) {
		t.Error("ad starting and ending exactly now should be eligible")
	}
}

func TestRotatePicksWithinTopPriorityTier(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}

	high1 := ad(PlacementMainRight, 10, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), true)
	high2 := ad(PlacementMainRight, 10, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), true)
	low := ad(PlacementMainRight, 1, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), true)
	repo.ads = []*Ad{low, high1, high2}

	picked := -1
	service := NewService(repo).
		WithClock(func() time.Time { return now }).
		WithPicker(func(n int) int {
			picked = n
			return 1
		})

	got, err := service.Rotate(context.Background(), PlacementMainRight)
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	if picked != 2 {
		t.Errorf("rotation pool size = %d, want 2 (top tier only)", picked)
	}
	if got.Priority != 10 {
		t.Errorf("rotated ad priority = %d, want 10", got.Priority)
	}
}

func TestRotateEmptyPlacement(t *testing.T) {
	service := NewService(&fakeRepo{})

	got, err := service.Rotate(context.Background(), PlacementProduct)
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}
	if got != nil {
		t.Errorf("Rotate() = %+v, want nil for empty placement", got)
	}
}

func TestCreateRejectsBackwardsDates(t *testing.T) {
	service := NewService(&fakeRepo{})

	_, err := service.Create(context.Background(), uuid.New(), &CreateRequest{
		Title:     "Launch promo",
		ImageURL:  "https://cdn.example.com/a.png",
		TargetURL: "https://example.com",
		Placement: "main-left",
		StartDate: "2026-04-01T00:00:00Z",
		EndDate:   "2026-03-01T00:00:00Z",
	})
	if err != ErrInvalidDates {
		t.Errorf("Create() error = %v, want ErrInvalidDates", err)
	}
}

func TestRecordClickAttribution(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	service := NewService(repo).WithClock(func() time.Time { return now })

	a := ad(PlacementProduct, 1, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), true)
	repo.ads = []*Ad{a}

	userID := uuid.New()
	if err := service.RecordClick(context.Background(), a.ID, userID, "Mozilla/5.0", "203.0.113.5"); err != nil {
		t.Fatalf("RecordClick() error = %v", err)
	}

	if len(repo.clicks) != 1 {
		t.Fatalf("clicks recorded = %d, want 1", len(repo.clicks))
	}
	c := repo.clicks[0]
	if c.IPAddress != "203.0.113.5" || c.UserAgent.String != "Mozilla/5.0" || c.UserID.UUID != userID {
		t.Errorf("click attribution wrong: %+v", c)
	}
}

func TestRecordClickUnknownAd(t *testing.T) {
	service := NewService(&fakeRepo{})

	err := service.RecordClick(context.Background(), uuid.New(), uuid.Nil, "", "198.51.100.7")
	if err != ErrNotFound {
		t.Errorf("RecordClick() error = %v, want ErrNotFound", err)
	}
}
