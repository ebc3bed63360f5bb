package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns user router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{username}", h.GetProfile)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Patch("/me", h.UpdateMe)
	})

	return r
}

// AdminRoutes returns admin user management router. The caller mounts it
// behind auth and the admin role check.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.AdminList)
	r.Post("/{id}/ban", h.AdminSetBanned(true))
	r.Post("/{id}/unban", h.AdminSetBanned(false))

	return r
}
