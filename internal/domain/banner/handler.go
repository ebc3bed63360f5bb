package banner

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

// Handler handles banner HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates new banner handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func placementFromQuery(r *http.Request) (Placement, bool) {
	p := r.URL.Query().Get("placement")
	if err := validator.ValidateVar(p, "required,placement"); err != nil {
		return "", false
	}
	return Placement(p), true
}

// List handles GET /banners?placement=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	placement, ok := placementFromQuery(r)
	if !ok {
		response.BadRequest(w, "Invalid placement")
		return
	}

	ads, err := h.service.ListForPlacement(r.Context(), placement)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list banners")
		response.InternalError(w)
		return
	}

	items := make([]*Response, 0, len(ads))
	for _, a := range ads {
		items = append(items, ToResponse(a))
	}
	response.OK(w, items)
}

// Rotate handles GET /banners/rotate?placement=
func (h *Handler) Rotate(w http.ResponseWriter, r *http.Request) {
	placement, ok := placementFromQuery(r)
	if !ok {
		response.BadRequest(w, "Invalid placement")
		return
	}

	ad, err := h.service.Rotate(r.Context(), placement)
	if err != nil {
		log.Error().Err(err).Msg("Failed to rotate banner")
		response.InternalError(w)
		return
	}
	if ad == nil {
		response.OK(w, nil)
		return
	}

	response.OK(w, ToResponse(ad))
}

// Click handles POST /banners/{id}/click
func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	adID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid banner ID")
		return
	}

	userID := middleware.GetUserID(r.Context())

	err = h.service.RecordClick(r.Context(), adID, userID, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Banner not found")
			return
		}
		log.Error().Err(err).Msg("Failed to record banner click")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// AdminCreate handles POST /admin/banners
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	a, err := h.service.Create(r.Context(), adminID, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidDates) {
			response.BadRequest(w, err.Error())
			return
		}
		log.Error().Err(err).Msg("Failed to create banner")
		response.InternalError(w)
		return
	}

	response.Created(w, map[string]interface{}{"id": a.ID})
}

// AdminList handles GET /admin/banners
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	ads, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list banners")
		response.InternalError(w)
		return
	}

	items := make([]*AdminResponse, 0, len(ads))
	for _, a := range ads {
		items = append(items, ToAdminResponse(a))
	}
	response.OK(w, items)
}

// AdminSetActive returns a handler for POST /admin/banners/{id}/activate and /deactivate
func (h *Handler) AdminSetActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			response.BadRequest(w, "Invalid banner ID")
			return
		}

		if err := h.service.SetActive(r.Context(), id, active); err != nil {
			if errors.Is(err, ErrNotFound) {
				response.NotFound(w, "Banner not found")
				return
			}
			log.Error().Err(err).Msg("Failed to toggle banner")
			response.InternalError(w)
			return
		}

		response.NoContent(w)
	}
}

// AdminDelete handles DELETE /admin/banners/{id}
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid banner ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Banner not found")
			return
		}
		log.Error().Err(err).Msg("Failed to delete banner")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
