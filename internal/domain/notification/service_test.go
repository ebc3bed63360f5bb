package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type fakeRepo struct {
	Repository

	byID    map[uuid.UUID]*Notification
	created []*Notification
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uuid.UUID]*Notification{}}
}

func (f *fakeRepo) Create(ctx context.Context, n *Notification) error {
	f.byID[n.ID] = n
	f.created = append(f.created, n)
	return nil
}

func (f *fakeRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, n *Notification) error {
	return f.Create(ctx, n)
}

func (f *fakeRepo) CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.byID {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	n, ok := f.byID[id]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	n.IsRead = true
	return nil
}

type published struct {
	userID  uuid.UUID
	payload interface{}
}

type fakePublisher struct {
	events []published
}

func (f *fakePublisher) Publish(userID uuid.UUID, payload interface{}) {
	f.events = append(f.events, published{userID: userID, payload: payload})
}

func TestCreatePersistsAndPublishes(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	svc := NewService(repo, pub)

	userID := uuid.New()
	n, err := svc.Create(context.Background(), userID, TypeSystem, "پیام تست", "/products/test")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(repo.created))
	}
	if !n.LinkURL.Valid || n.LinkURL.String != "/products/test" {
		t.Errorf("unexpected link: %+v", n.LinkURL)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.userID != userID {
		t.Errorf("published to %s, want %s", ev.userID, userID)
	}
	body, ok := ev.payload.(map[string]interface{})
	if !ok || body["type"] != "notification:new" {
		t.Errorf("unexpected payload: %#v", ev.payload)
	}
	data := body["data"].(map[string]interface{})
	if data["unread_count"] != 1 {
		t.Errorf("unread_count = %v, want 1", data["unread_count"])
	}
}

func TestAnnounceCountsOnlyUnread(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	svc := NewService(repo, pub)

	userID := uuid.New()
	first, err := svc.Create(context.Background(), userID, TypeUpvote, "اول", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.MarkAsRead(context.Background(), first.ID, userID); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}

	if _, err := svc.Create(context.Background(), userID, TypeUpvote, "دوم", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	last := pub.events[len(pub.events)-1]
	data := last.payload.(map[string]interface{})["data"].(map[string]interface{})
	if data["unread_count"] != 1 {
		t.Errorf("unread_count = %v, want 1", data["unread_count"])
	}
}

func TestBuildOmitsEmptyLink(t *testing.T) {
	n := Build(uuid.New(), TypeSystem, "بدون لینک", "")
	if n.LinkURL.Valid {
		t.Errorf("expected null link, got %q", n.LinkURL.String)
	}
	if n.ID == uuid.Nil || n.CreatedAt.IsZero() {
		t.Error("expected ID and timestamp to be set")
	}
	if time.Since(n.CreatedAt) > time.Minute {
		t.Error("CreatedAt not current")
	}
}

func TestProductDecisionMessages(t *testing.T) {
	approved := ProductApprovedMessage("ابزارک")
	if !strings.Contains(approved, "ابزارک") || !strings.Contains(approved, "تایید شد") {
		t.Errorf("unexpected approval message: %s", approved)
	}

	rejected := ProductRejectedMessage("ابزارک")
	if !strings.Contains(rejected, "ابزارک") || !strings.Contains(rejected, "رد شد") {
		t.Errorf("unexpected rejection message: %s", rejected)
	}

	if link := ProductLink("my-tool"); link != "/products/my-tool" {
		t.Errorf("ProductLink = %s", link)
	}
}

func TestNotifyUpvoteMessage(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	owner := uuid.New()
	svc.NotifyUpvote(context.Background(), owner, "ابزارک", "abzarak")

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.created))
	}
	n := repo.created[0]
	if n.Type != TypeUpvote {
		t.Errorf("type = %s, want %s", n.Type, TypeUpvote)
	}
	if !strings.Contains(n.Message, "ابزارک") || !strings.Contains(n.Message, "رای جدید") {
		t.Errorf("unexpected message: %s", n.Message)
	}
	if n.LinkURL.String != "/products/abzarak" {
		t.Errorf("link = %s", n.LinkURL.String)
	}
}
