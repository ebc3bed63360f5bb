package product

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	products map[uuid.UUID]*Row
	slugs    map[string]uuid.UUID
	upvotes  map[string]bool // "user|product"
	created  []*Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: make(map[uuid.UUID]*Row),
		slugs:    make(map[string]uuid.UUID),
		upvotes:  make(map[string]bool),
	}
}

func voteKey(userID, productID uuid.UUID) string {
	return userID.String() + "|" + productID.String()
}

func (f *fakeRepo) add(row *Row) {
	f.products[row.ID] = row
	f.slugs[row.Slug] = row.ID
}

func (f *fakeRepo) Create(ctx context.Context, p *Product) error {
	if _, ok := f.slugs[p.Slug]; ok {
		return ErrSlugExists
	}
	f.created = append(f.created, p)
	f.add(&Row{Product: *p})
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*Row, error) {
	row, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	copied := *row
	copied.HasUpvoted = f.upvotes[voteKey(viewerID, id)]
	return &copied, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*Row, error) {
	id, ok := f.slugs[slug]
	if !ok {
		return nil, nil
	}
	return f.GetByID(ctx, id, viewerID)
}

func (f *fakeRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, ok := f.slugs[slug]
	return ok, nil
}

func (f *fakeRepo) List(ctx context.Context, q *ListQuery) ([]*Row, error) {
	var rows []*Row
	for _, row := range f.products {
		if row.Status == StatusApproved {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Row, error) {
	var rows []*Row
	for _, row := range f.products {
		if row.UserID == ownerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeRepo) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Row, error) {
	return nil, nil
}

func (f *fakeRepo) CountByStatus(ctx context.Context, status Status) (int, error) {
	return 0, nil
}

func (f *fakeRepo) RemoveUpvote(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	key := voteKey(userID, productID)
	if !f.upvotes[key] {
		return false, nil
	}
	delete(f.upvotes, key)
	return true, nil
}

func (f *fakeRepo) AddUpvote(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	key := voteKey(userID, productID)
	if f.upvotes[key] {
		return false, nil
	}
	f.upvotes[key] = true
	return true, nil
}

func (f *fakeRepo) CountUpvotes(ctx context.Context, productID uuid.UUID) (int, error) {
	count := 0
	suffix := "|" + productID.String()
	for key := range f.upvotes {
		if strings.HasSuffix(key, suffix) {
			count++
		}
	}
	return count, nil
}

type fakeNotifier struct {
	upvotes []string // product titles notified about
}

func (f *fakeNotifier) NotifyUpvote(ctx context.Context, ownerID uuid.UUID, productTitle, productSlug string) {
	f.upvotes = append(f.upvotes, productTitle)
}

func approvedProduct(owner uuid.UUID) *Row {
	id := uuid.New()
	return &Row{
		Product: Product{
			ID:        id,
			Title:     "Widget",
			Slug:      "widget",
			UserID:    owner,
			Status:    StatusApproved,
			CreatedAt: time.Now(),
		},
	}
}

func TestSubmitCreatesPending(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	userID := uuid.New()
	p, err := service.Submit(context.Background(), userID, &SubmitRequest{
		Title:       "My Cool Tool",
		Description: "A tool that does many useful things for everyone",
		WebsiteURL:  "https://example.com",
		Categories:  []string{"tools"},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if p.Status != StatusPending {
		t.Errorf("status = %q, want %q", p.Status, StatusPending)
	}
	if p.Slug != "my-cool-tool" {
		t.Errorf("slug = %q, want %q", p.Slug, "my-cool-tool")
	}
}

func TestSubmitDuplicateSlug(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	owner := uuid.New()
	repo.add(approvedProduct(owner))

	_, err := service.Submit(context.Background(), uuid.New(), &SubmitRequest{
		Title:       "Widget",
		Description: "Another product that happens to share the same title",
		WebsiteURL:  "https://example.com",
		Categories:  []string{"tools"},
	})
	if err != ErrSlugExists {
		t.Errorf("Submit() error = %v, want ErrSlugExists", err)
	}
}

func TestToggleUpvoteAddsThenRemoves(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	service := NewService(repo, notifier)

	owner := uuid.New()
	voter := uuid.New()
	row := approvedProduct(owner)
	repo.add(row)

	first, err := service.ToggleUpvote(context.Background(), voter, row.ID)
	if err != nil {
		t.Fatalf("first toggle error = %v", err)
	}
	if !first.Upvoted || first.Count != 1 {
		t.Errorf("after first toggle: upvoted=%v count=%d, want true/1", first.Upvoted, first.Count)
	}

	second, err := service.ToggleUpvote(context.Background(), voter, row.ID)
	if err != nil {
		t.Fatalf("second toggle error = %v", err)
	}
	if second.Upvoted || second.Count != 0 {
		t.Errorf("after second toggle: upvoted=%v count=%d, want false/0", second.Upvoted, second.Count)
	}

	if len(notifier.upvotes) != 1 {
		t.Errorf("owner notified %d times, want 1", len(notifier.upvotes))
	}
}

func TestToggleUpvoteOwnProductSkipsNotification(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	service := NewService(repo, notifier)

	owner := uuid.New()
	row := approvedProduct(owner)
	repo.add(row)

	result, err := service.ToggleUpvote(context.Background(), owner, row.ID)
	if err != nil {
		t.Fatalf("ToggleUpvote() error = %v", err)
	}
	if !result.Upvoted {
		t.Error("owner's vote should count")
	}
	if len(notifier.upvotes) != 0 {
		t.Errorf("owner notified about own vote %d times, want 0", len(notifier.upvotes))
	}
}

func TestToggleUpvotePendingProduct(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	owner := uuid.New()
	row := approvedProduct(owner)
	row.Status = StatusPending
	repo.add(row)

	_, err := service.ToggleUpvote(context.Background(), uuid.New(), row.ID)
	if err != ErrNotFound {
		t.Errorf("ToggleUpvote() error = %v, want ErrNotFound", err)
	}
}

func TestGetBySlugVisibility(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil)

	owner := uuid.New()
	row := approvedProduct(owner)
	row.Status = StatusPending
	repo.add(row)

	if _, err := service.GetBySlug(context.Background(), row.Slug, uuid.New(), false); err != ErrNotFound {
		t.Errorf("stranger viewing pending product: error = %v, want ErrNotFound", err)
	}

	if _, err := service.GetBySlug(context.Background(), row.Slug, owner, false); err != nil {
		t.Errorf("owner viewing pending product: error = %v, want nil", err)
	}

	if _, err := service.GetBySlug(context.Background(), row.Slug, uuid.New(), true); err != nil {
		t.Errorf("admin viewing pending product: error = %v, want nil", err)
	}
}
