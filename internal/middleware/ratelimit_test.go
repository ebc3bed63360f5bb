package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nojast/nojast-api/internal/pkg/ratelimit"
)

type stubLimiter struct {
	decision ratelimit.Decision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitCapsByAddress(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(2, 15*time.Minute)
	h := RateLimit(limiter)(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.RemoteAddr = "203.0.113.5:1234"
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.RemoteAddr = "203.0.113.5:1234"
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "900" {
		t.Errorf("Retry-After = %q, want 900", got)
	}

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code       string `json:"code"`
			RetryAfter int    `json:"retry_after"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if body.Success || body.Error.RetryAfter != 900 {
		t.Errorf("body = %+v, want retry_after 900", body)
	}
}

func TestRateLimitCountsAcrossConnections(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(1, 15*time.Minute)
	h := RateLimit(limiter)(okHandler())

	// Same address on a fresh connection must share the counter.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.RemoteAddr = "203.0.113.5:1111"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.RemoteAddr = "203.0.113.5:2222"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request from a new port status = %d, want 429", rec.Code)
	}
}

func TestRateLimitAdminBypass(t *testing.T) {
	limiter := &stubLimiter{decision: ratelimit.Decision{Allowed: false, RetryAfter: 15 * time.Minute}}
	h := RateLimit(limiter)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, "admin"))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("admin request status = %d, want 200", rec.Code)
	}
	if len(limiter.keys) != 0 {
		t.Errorf("admin request was counted against the limiter")
	}
}

func TestRateLimitRegularUserNotBypassed(t *testing.T) {
	limiter := &stubLimiter{decision: ratelimit.Decision{Allowed: false, RetryAfter: 15 * time.Minute}}
	h := RateLimit(limiter)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, "user"))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("blocked user status = %d, want 429", rec.Code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	h := RateLimit(limiter)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d on limiter error, want 200 (fail open)", rec.Code)
	}
}

func TestClientIPHeaders(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"forwarded-for single", "203.0.113.5", "", "10.0.0.1:80", "203.0.113.5"},
		{"forwarded-for chain", "203.0.113.5, 10.0.0.2", "", "10.0.0.1:80", "203.0.113.5"},
		{"real-ip fallback", "", "198.51.100.7", "10.0.0.1:80", "198.51.100.7"},
		{"remote addr port stripped", "", "", "192.0.2.1:4321", "192.0.2.1"},
		{"remote addr ipv6 port stripped", "", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"remote addr without port", "", "", "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
