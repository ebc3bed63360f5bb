// Package authz centralizes the route admission policy: one function decides
// whether a request proceeds or is redirected, so role checks are not
// re-derived per page.
package authz

import "strings"

// Identity describes the caller as far as admission cares.
type Identity struct {
	Authenticated bool
	Admin         bool
}

// Kind tags an admission decision.
type Kind int

const (
	Allow Kind = iota
	Redirect
)

// Decision is the outcome of the admission policy for one request.
type Decision struct {
	Kind Kind
	Path string // redirect target when Kind == Redirect
}

const (
	loginPath = "/login"
	homePath  = "/"

	// Diagnostic page open to any signed-in user regardless of role.
	adminDebugPath = "/admin/debug/admin-test"
)

var authPrefixes = []string{
	"/login",
	"/signup",
	"/auth",
	"/forgot-password",
	"/reset-password",
}

// Decide evaluates the admission policy for a path. It is stateless across
// requests and evaluated exactly once per request.
func Decide(id Identity, path string) Decision {
	// Auth pages stay reachable even without a session.
	for _, p := range authPrefixes {
		if strings.HasPrefix(path, p) {
			return Decision{Kind: Allow}
		}
	}

	if path == adminDebugPath {
		if !id.Authenticated {
			return Decision{Kind: Redirect, Path: loginPath}
		}
		return Decision{Kind: Allow}
	}

	protected := strings.HasPrefix(path, "/dashboard") || strings.HasPrefix(path, "/admin")
	if !id.Authenticated && protected {
		return Decision{Kind: Redirect, Path: loginPath}
	}

	if id.Authenticated && strings.HasPrefix(path, "/admin") && !id.Admin {
		return Decision{Kind: Redirect, Path: homePath}
	}

	return Decision{Kind: Allow}
}
