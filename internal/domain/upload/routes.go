package upload

import (
	"github.com/go-chi/chi/v5"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/jwt"
)

// Routes registers upload routes (auth required)
func Routes(r chi.Router, handler *Handler, jwtService *jwt.Service) {
	r.Use(middleware.Auth(jwtService))
	r.Post("/image", handler.Image)
}
