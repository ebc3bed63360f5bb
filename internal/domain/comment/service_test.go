package comment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nojast/nojast-api/internal/domain/product"
)

type fakeRepo struct {
	Repository
	comments map[uuid.UUID]*Comment
	reports  map[string]*Report // "comment|reporter"
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		comments: make(map[uuid.UUID]*Comment),
		reports:  make(map[string]*Report),
	}
}

func (f *fakeRepo) Create(ctx context.Context, c *Comment) error {
	f.comments[c.ID] = c
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	return f.comments[id], nil
}

func (f *fakeRepo) CreateReport(ctx context.Context, rep *Report) error {
	key := rep.CommentID.String() + "|" + rep.ReporterID.String()
	if _, ok := f.reports[key]; ok {
		return ErrAlreadyReported
	}
	f.reports[key] = rep
	return nil
}

func (f *fakeRepo) DeleteOwn(ctx context.Context, id, userID uuid.UUID) error {
	c, ok := f.comments[id]
	if !ok || c.UserID != userID {
		return ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

type fakeProducts struct {
	product.Repository
	bySlug map[string]*product.Row
}

func (f *fakeProducts) GetBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*product.Row, error) {
	return f.bySlug[slug], nil
}

type fakeNotifier struct {
	notified []uuid.UUID
}

func (f *fakeNotifier) NotifyComment(ctx context.Context, ownerID uuid.UUID, productTitle, productSlug string) {
	f.notified = append(f.notified, ownerID)
}

func approvedProduct(owner uuid.UUID) *product.Row {
	return &product.Row{
		Product: product.Product{
			ID:        uuid.New(),
			Title:     "Widget",
			Slug:      "widget",
			UserID:    owner,
			Status:    product.StatusApproved,
			CreatedAt: time.Now(),
		},
	}
}

func TestCreateCommentNotifiesOwner(t *testing.T) {
	owner := uuid.New()
	author := uuid.New()
	products := &fakeProducts{bySlug: map[string]*product.Row{"widget": approvedProduct(owner)}}
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	service := NewService(repo, products, notifier)

	c, err := service.Create(context.Background(), author, "widget", &CreateRequest{Content: "Great tool, using it daily"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if c.Status != StatusPending {
		t.Errorf("status = %q, want %q", c.Status, StatusPending)
	}
	if len(notifier.notified) != 1 || notifier.notified[0] != owner {
		t.Errorf("owner not notified: %v", notifier.notified)
	}
}

func TestCreateCommentOwnProductSkipsNotification(t *testing.T) {
	owner := uuid.New()
	products := &fakeProducts{bySlug: map[string]*product.Row{"widget": approvedProduct(owner)}}
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	service := NewService(repo, products, notifier)

	if _, err := service.Create(context.Background(), owner, "widget", &CreateRequest{Content: "Thanks for the feedback everyone"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(notifier.notified) != 0 {
		t.Errorf("owner notified about own comment %d times, want 0", len(notifier.notified))
	}
}

func TestCreateCommentPendingProduct(t *testing.T) {
	owner := uuid.New()
	row := approvedProduct(owner)
	row.Status = product.StatusPending
	products := &fakeProducts{bySlug: map[string]*product.Row{"widget": row}}
	service := NewService(newFakeRepo(), products, nil)

	_, err := service.Create(context.Background(), uuid.New(), "widget", &CreateRequest{Content: "First to comment here"})
	if err != ErrProductNotFound {
		t.Errorf("Create() error = %v, want ErrProductNotFound", err)
	}
}

func TestReportDuplicate(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil, nil)

	c := &Comment{ID: uuid.New(), Status: StatusApproved}
	repo.comments[c.ID] = c

	reporter := uuid.New()
	req := &ReportRequest{Reason: "Spam content with external links"}

	if _, err := service.Report(context.Background(), reporter, c.ID, req); err != nil {
		t.Fatalf("first Report() error = %v", err)
	}

	_, err := service.Report(context.Background(), reporter, c.ID, req)
	if err != ErrAlreadyReported {
		t.Errorf("second Report() error = %v, want ErrAlreadyReported", err)
	}
}

func TestReportUnknownComment(t *testing.T) {
	service := NewService(newFakeRepo(), nil, nil)

	_, err := service.Report(context.Background(), uuid.New(), uuid.New(), &ReportRequest{Reason: "Offensive language in reply"})
	if err != ErrNotFound {
		t.Errorf("Report() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteOwnComment(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil, nil)

	author := uuid.New()
	c := &Comment{ID: uuid.New(), UserID: author, Status: StatusApproved}
	repo.comments[c.ID] = c

	if err := service.Delete(context.Background(), author, c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := repo.comments[c.ID]; ok {
		t.Error("comment still present after delete")
	}
}

func TestDeleteOtherUsersComment(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, nil, nil)

	c := &Comment{ID: uuid.New(), UserID: uuid.New(), Status: StatusApproved}
	repo.comments[c.ID] = c

	if err := service.Delete(context.Background(), uuid.New(), c.ID); err != ErrNotFound {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
	if _, ok := repo.comments[c.ID]; !ok {
		t.Error("comment was removed by a non-author")
	}
}
