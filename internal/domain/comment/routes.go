package comment

import (
	"github.com/go-chi/chi/v5"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/jwt"
)

// ProductRoutes registers comment routes nested under a product
func ProductRoutes(r chi.Router, handler *Handler, jwtService *jwt.Service) {
	r.Get("/{slug}/comments", handler.ListByProduct)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))
		r.Post("/{slug}/comments", handler.Create)
	})
}

// Routes registers top-level comment routes
func Routes(r chi.Router, handler *Handler, jwtService *jwt.Service) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))
		r.Delete("/{id}", handler.Delete)
		r.Post("/{id}/report", handler.Report)
	})
}
