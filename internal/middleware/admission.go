package middleware

import (
	"net/http"

	"github.com/nojast/nojast-api/internal/pkg/authz"
)

// Admission applies the central route admission policy: unauthenticated
// requests to protected prefixes are redirected to login, non-admin requests
// under /admin are sent home. Evaluated once per request, no retry.
func Admission() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := authz.Identity{
				Authenticated: IsAuthenticated(r.Context()),
				Admin:         GetRole(r.Context()) == "admin",
			}

			decision := authz.Decide(id, r.URL.Path)
			if decision.Kind == authz.Redirect {
				http.Redirect(w, r, decision.Path, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
