package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nojast/nojast-api/internal/pkg/jwt"
)

func newStreamServer(t *testing.T) (*httptest.Server, *Hub, *jwt.Service) {
	t.Helper()

	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	hub := NewHub(nil)
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	repo := newFakeRepo()
	handler := NewHandler(NewService(repo, hub), hub, jwtService)

	r := chi.NewRouter()
	r.Get("/ws", handler.Stream)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub, jwtService
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestStreamAcceptsQueryToken(t *testing.T) {
	srv, hub, jwtService := newStreamServer(t)

	userID := uuid.New()
	token, err := jwtService.GenerateAccessToken(userID, "user", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws?token="+token), nil)
	if err != nil {
		t.Fatalf("dial with query token failed: %v", err)
	}
	defer conn.Close()

	// Give the hub a moment to register the connection, then push an event
	// and expect it on the wire.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.Publish(userID, map[string]string{"type": "notification:new"})
		conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		if _, msg, err := conn.ReadMessage(); err == nil {
			if !strings.Contains(string(msg), "notification:new") {
				t.Fatalf("unexpected message: %s", msg)
			}
			return
		}
	}
	t.Fatal("no event received over the stream")
}

func TestStreamRejectsMissingToken(t *testing.T) {
	srv, _, _ := newStreamServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws"), nil)
	if err == nil {
		t.Fatal("dial without token succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("handshake status = %v, want 401", resp)
	}
}

func TestStreamRejectsBadToken(t *testing.T) {
	srv, _, _ := newStreamServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws?token=not-a-jwt"), nil)
	if err == nil {
		t.Fatal("dial with a bogus token succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("handshake status = %v, want 401", resp)
	}
}
