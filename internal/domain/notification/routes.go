package notification

import (
	"github.com/go-chi/chi/v5"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/jwt"
)

// Routes registers notification routes. The WS stream authenticates itself
// (query token or header); everything else requires the auth header.
func Routes(r chi.Router, handler *Handler, jwtService *jwt.Service) {
	r.Get("/ws", handler.Stream)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))

		r.Get("/", handler.List)
		r.Get("/unread-count", handler.UnreadCount)
		r.Post("/read-all", handler.MarkAllRead)
		r.Post("/{id}/read", handler.MarkRead)
		r.Delete("/{id}", handler.Delete)
	})
}
