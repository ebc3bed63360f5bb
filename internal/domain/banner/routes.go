package banner

import "github.com/go-chi/chi/v5"

// Routes registers public banner routes
func Routes(r chi.Router, handler *Handler) {
	r.Get("/", handler.List)
	r.Get("/rotate", handler.Rotate)
	r.Post("/{id}/click", handler.Click)
}

// AdminRoutes registers admin banner routes
func AdminRoutes(r chi.Router, handler *Handler) {
	r.Get("/", handler.AdminList)
	r.Post("/", handler.AdminCreate)
	r.Post("/{id}/activate", handler.AdminSetActive(true))
	r.Post("/{id}/deactivate", handler.AdminSetActive(false))
	r.Delete("/{id}", handler.AdminDelete)
}
