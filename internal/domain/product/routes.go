package product

import (
	"github.com/go-chi/chi/v5"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/jwt"
)

// Routes registers product routes
func Routes(r chi.Router, handler *Handler, jwtService *jwt.Service) {
	r.Get("/", handler.List)
	r.Get("/{slug}", handler.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))
		r.Post("/", handler.Submit)
		r.Get("/mine/list", handler.Mine)
		r.Post("/{id}/upvote", handler.ToggleUpvote)
	})
}
