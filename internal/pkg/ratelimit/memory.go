package ratelimit

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count int
	last  time.Time
}

// MemoryLimiter is an in-process fixed-window limiter. A counter resets only
// when its own last-seen timestamp ages out past the window, not on a
// continuously sliding cutoff. State is per-instance: under multi-instance
// deployment the cap applies per process, use RedisLimiter to share it.
type MemoryLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	now     func() time.Time
	entries map[string]*entry
}

// NewMemoryLimiter creates a limiter admitting max requests per window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:     max,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// WithClock overrides the time source, for tests.
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.now = now
	return l
}

// Allow counts a request against key. It never returns an error: the only
// failure mode is the rejection itself, carrying a retry hint equal to the
// window length.
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	// Evict counters whose window has aged out.
	for k, e := range l.entries {
		if e.last.Before(windowStart) {
			delete(l.entries, k)
		}
	}

	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}

	if e.count >= l.max {
		// Do not touch the entry: the block holds until it ages out.
		return Decision{Allowed: false, RetryAfter: l.window}, nil
	}

	e.count++
	e.last = now
	return Decision{Allowed: true}, nil
}

// Tracked returns the number of addresses currently counted, for tests.
func (l *MemoryLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
