package middleware

import (
	"net"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/pkg/ratelimit"
	"github.com/nojast/nojast-api/internal/pkg/response"
)

// RateLimit caps requests per client address using the given limiter.
// Admin callers bypass the cap entirely; their role comes from the JWT
// claims already resolved by OptionalAuth, so no store lookup happens here.
func RateLimit(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetRole(r.Context()) == "admin" {
				next.ServeHTTP(w, r)
				return
			}

			decision, err := limiter.Allow(r.Context(), ClientIP(r))
			if err != nil {
				// Fail open: counting errors never block traffic.
				log.Warn().Err(err).Msg("rate limiter error")
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				log.Warn().
					Str("ip", ClientIP(r)).
					Str("path", r.URL.Path).
					Msg("rate limit exceeded")
				response.TooManyRequests(w, int(decision.RetryAfter.Seconds()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client address from proxy headers, falling back to
// the socket peer.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// RemoteAddr carries the ephemeral source port; strip it so the key is
	// per address, not per connection.
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
