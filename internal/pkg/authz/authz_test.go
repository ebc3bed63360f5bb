package authz

import "testing"

func TestDecide(t *testing.T) {
	anonymous := Identity{}
	member := Identity{Authenticated: true}
	admin := Identity{Authenticated: true, Admin: true}

	tests := []struct {
		name string
		id   Identity
		path string
		want Decision
	}{
		{"anonymous on public page", anonymous, "/products/widget", Decision{Kind: Allow}},
		{"anonymous on login", anonymous, "/login", Decision{Kind: Allow}},
		{"anonymous on reset password", anonymous, "/reset-password?token=x", Decision{Kind: Allow}},
		{"anonymous on dashboard", anonymous, "/dashboard", Decision{Kind: Redirect, Path: "/login"}},
		{"anonymous on dashboard subpage", anonymous, "/dashboard/products", Decision{Kind: Redirect, Path: "/login"}},
		{"anonymous on admin", anonymous, "/admin", Decision{Kind: Redirect, Path: "/login"}},
		{"anonymous on admin debug", anonymous, "/admin/debug/admin-test", Decision{Kind: Redirect, Path: "/login"}},

		{"member on dashboard", member, "/dashboard", Decision{Kind: Allow}},
		{"member on admin", member, "/admin", Decision{Kind: Redirect, Path: "/"}},
		{"member on admin subpage", member, "/admin/products", Decision{Kind: Redirect, Path: "/"}},
		{"member on admin debug", member, "/admin/debug/admin-test", Decision{Kind: Allow}},
		{"member on public page", member, "/products/widget", Decision{Kind: Allow}},

		{"admin on admin", admin, "/admin", Decision{Kind: Allow}},
		{"admin on admin subpage", admin, "/admin/reports", Decision{Kind: Allow}},
		{"admin on admin debug", admin, "/admin/debug/admin-test", Decision{Kind: Allow}},
		{"admin on dashboard", admin, "/dashboard", Decision{Kind: Allow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.id, tt.path)
			if got != tt.want {
				t.Errorf("Decide(%+v, %q) = %+v, want %+v", tt.id, tt.path, got, tt.want)
			}
		})
	}
}
