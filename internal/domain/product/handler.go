package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/response"
	"github.com/nojast/nojast-api/internal/pkg/validator"
)

// Handler handles product HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates new product handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /products
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req SubmitRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	p, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			response.Conflict(w, err.Error())
			return
		}
		log.Error().Err(err).Msg("Failed to submit product")
		response.InternalError(w)
		return
	}

	response.Created(w, map[string]interface{}{
		"id":     p.ID,
		"slug":   p.Slug,
		"status": string(p.Status),
	})
}

// List handles GET /products
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := &ListQuery{
		Category: r.URL.Query().Get("category"),
		Sort:     r.URL.Query().Get("sort"),
		Search:   r.URL.Query().Get("search"),
		Limit:    parseIntQuery(r, "limit", 20),
		Offset:   parseIntQuery(r, "offset", 0),
		ViewerID: middleware.GetUserID(r.Context()),
	}

	if details := validator.Validate(q); details != nil {
		response.ValidationError(w, details)
		return
	}

	rows, err := h.service.List(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		response.InternalError(w)
		return
	}

	items := make([]*Response, 0, len(rows))
	for _, row := range rows {
		items = append(items, ResponseFromRow(row))
	}
	response.OK(w, items)
}

// Get handles GET /products/{slug}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	productSlug := chi.URLParam(r, "slug")
	viewerID := middleware.GetUserID(r.Context())
	isAdmin := middleware.GetRole(r.Context()) == "admin"

	row, err := h.service.GetBySlug(r.Context(), productSlug, viewerID, isAdmin)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		log.Error().Err(err).Msg("Failed to get product")
		response.InternalError(w)
		return
	}

	response.OK(w, ResponseFromRow(row))
}

// Mine handles GET /products/mine
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	rows, err := h.service.ListByOwner(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list own products")
		response.InternalError(w)
		return
	}

	items := make([]*Response, 0, len(rows))
	for _, row := range rows {
		items = append(items, ResponseFromRow(row))
	}
	response.OK(w, items)
}

// ToggleUpvote handles POST /products/{id}/upvote
func (h *Handler) ToggleUpvote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	result, err := h.service.ToggleUpvote(r.Context(), userID, productID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		log.Error().Err(err).Msg("Failed to toggle upvote")
		response.InternalError(w)
		return
	}

	response.OK(w, result)
}

func parseIntQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
