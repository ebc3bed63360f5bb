package comment

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/response"
	"github.com/nojast/nojast-api/internal/pkg/validator"
)

// Handler handles comment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates new comment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /products/{slug}/comments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	productSlug := chi.URLParam(r, "slug")

	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	c, err := h.service.Create(r.Context(), userID, productSlug, &req)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		log.Error().Err(err).Msg("Failed to create comment")
		response.InternalError(w)
		return
	}

	response.Created(w, map[string]interface{}{
		"id":     c.ID,
		"status": string(c.Status),
	})
}

// ListByProduct handles GET /products/{slug}/comments
func (h *Handler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productSlug := chi.URLParam(r, "slug")

	rows, err := h.service.ListByProduct(r.Context(), productSlug)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		log.Error().Err(err).Msg("Failed to list comments")
		response.InternalError(w)
		return
	}

	items := make([]*Response, 0, len(rows))
	for _, row := range rows {
		items = append(items, ResponseFromRow(row))
	}
	response.OK(w, items)
}

// Delete handles DELETE /comments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, commentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Comment not found")
			return
		}
		log.Error().Err(err).Msg("Failed to delete comment")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// Report handles POST /comments/{id}/report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid comment ID")
		return
	}

	var req ReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	rep, err := h.service.Report(r.Context(), userID, commentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Comment not found")
		case errors.Is(err, ErrAlreadyReported):
			response.Conflict(w, err.Error())
		default:
			log.Error().Err(err).Msg("Failed to report comment")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]interface{}{
		"id":     rep.ID,
		"status": string(rep.Status),
	})
}
