package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nojast/nojast-api/internal/pkg/jwt"
	"github.com/nojast/nojast-api/internal/pkg/response"
)

type contextKey string

const (
	UserIDKey        contextKey = "user_id"
	RoleKey          contextKey = "role"
	AuthenticatedKey contextKey = "authenticated"
)

// Auth returns middleware that validates JWT and rejects requests without one
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(jwtService, r)
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid or missing token")
				}
				return
			}

			if claims.IsBanned {
				response.Forbidden(w, "Your account has been blocked")
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth resolves JWT claims when present but lets anonymous requests
// through. The rate limiter and admission gate read the result so that the
// role lookup happens once per request, off the already-parsed token.
func OptionalAuth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(jwtService, r)
			if err == nil && !claims.IsBanned {
				r = r.WithContext(withClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func claimsFromRequest(jwtService *jwt.Service, r *http.Request) (*jwt.Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, jwt.ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, jwt.ErrInvalidToken
	}

	return jwtService.ValidateAccessToken(parts[1])
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, RoleKey, claims.Role)
	return context.WithValue(ctx, AuthenticatedKey, true)
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetRole extracts role from context
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}

// IsAuthenticated reports whether the request carried valid claims
func IsAuthenticated(ctx context.Context) bool {
	ok, _ := ctx.Value(AuthenticatedKey).(bool)
	return ok
}

// RequireRole returns middleware that checks user role
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := GetRole(r.Context())

			for _, role := range roles {
				if userRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

// RequireAdmin returns middleware that requires admin role
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole("admin")
}
