package contact

import "github.com/go-chi/chi/v5"

// Routes registers the public contact route
func Routes(r chi.Router, handler *Handler) {
	r.Post("/", handler.Create)
}

// AdminRoutes registers admin contact message routes
func AdminRoutes(r chi.Router, handler *Handler) {
	r.Get("/", handler.AdminList)
	r.Post("/{id}/read", handler.AdminMarkRead)
	r.Delete("/{id}", handler.AdminDelete)
}
