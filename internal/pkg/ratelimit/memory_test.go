package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowUnderCap(t *testing.T) {
	l := NewMemoryLimiter(3, 15*time.Minute)

	for i := 0; i < 3; i++ {
		d, err := l.Allow(context.Background(), "203.0.113.5")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !d.Allowed {
			t.Fatalf("request %d rejected, want allowed", i+1)
		}
	}
}

func TestRejectOverCap(t *testing.T) {
	l := NewMemoryLimiter(10000, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 10000; i++ {
		d, _ := l.Allow(ctx, "203.0.113.5")
		if !d.Allowed {
			t.Fatalf("request %d rejected below the cap", i+1)
		}
	}

	d, err := l.Allow(ctx, "203.0.113.5")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if d.Allowed {
		t.Fatal("request 10001 allowed, want rejected")
	}
	if d.RetryAfter != 15*time.Minute {
		t.Errorf("RetryAfter = %v, want 15m", d.RetryAfter)
	}
}

func TestKeysCountedIndependently(t *testing.T) {
	l := NewMemoryLimiter(1, 15*time.Minute)
	ctx := context.Background()

	if d, _ := l.Allow(ctx, "203.0.113.5"); !d.Allowed {
		t.Fatal("first key rejected")
	}
	if d, _ := l.Allow(ctx, "198.51.100.7"); !d.Allowed {
		t.Error("second key rejected, counters must be independent")
	}
	if d, _ := l.Allow(ctx, "203.0.113.5"); d.Allowed {
		t.Error("first key allowed over its cap")
	}
}

func TestWindowResetAfterIdle(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, 15*time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()

	l.Allow(ctx, "203.0.113.5")
	l.Allow(ctx, "203.0.113.5")
	if d, _ := l.Allow(ctx, "203.0.113.5"); d.Allowed {
		t.Fatal("over-cap request allowed")
	}

	// Rejections do not refresh the counter; it ages out once the last
	// admitted request leaves the window.
	now = now.Add(15*time.Minute + time.Second)
	if d, _ := l.Allow(ctx, "203.0.113.5"); !d.Allowed {
		t.Error("request after window expiry rejected, want a fresh counter")
	}
}

func TestBlockHeldWhileRetrying(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, 15*time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()

	l.Allow(ctx, "203.0.113.5")

	// Hammering while blocked must not extend the block.
	for i := 0; i < 5; i++ {
		now = now.Add(time.Minute)
		if d, _ := l.Allow(ctx, "203.0.113.5"); d.Allowed {
			t.Fatalf("request at +%dm allowed inside the window", i+1)
		}
	}

	now = now.Add(11 * time.Minute) // 16m after the admitted request
	if d, _ := l.Allow(ctx, "203.0.113.5"); !d.Allowed {
		t.Error("still blocked after the admitted request aged out")
	}
}

func TestIdleEntriesEvicted(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(100, 15*time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()

	l.Allow(ctx, "203.0.113.5")
	l.Allow(ctx, "198.51.100.7")
	if got := l.Tracked(); got != 2 {
		t.Fatalf("Tracked() = %d, want 2", got)
	}

	now = now.Add(16 * time.Minute)
	l.Allow(ctx, "192.0.2.1")
	if got := l.Tracked(); got != 1 {
		t.Errorf("Tracked() = %d after eviction, want 1", got)
	}
}
