// Package ratelimit provides fixed-window request admission counters.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter caps the number of requests a single key may issue inside a window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
