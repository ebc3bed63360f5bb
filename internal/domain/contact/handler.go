package contact

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/response"
	"github.com/nojast/nojast-api/internal/pkg/validator"
)

// Handler handles contact HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates contact handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /contact
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	m := &Message{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Body:      req.Message,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if req.Phone != "" {
		m.Phone = sql.NullString{String: req.Phone, Valid: true}
	}
	// Link the message to the account when the sender is signed in.
	if userID := middleware.GetUserID(r.Context()); userID != uuid.Nil {
		m.UserID = uuid.NullUUID{UUID: userID, Valid: true}
	}

	if err := h.repo.Create(r.Context(), m); err != nil {
		log.Error().Err(err).Msg("Failed to save contact message")
		response.InternalError(w)
		return
	}

	response.Created(w, map[string]interface{}{"id": m.ID})
}

// AdminList handles GET /admin/messages
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list contact messages")
		response.InternalError(w)
		return
	}

	total, err := h.repo.Count(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to count contact messages")
		response.InternalError(w)
		return
	}

	items := make([]*Response, 0, len(messages))
	for _, m := range messages {
		items = append(items, ToResponse(m))
	}
	response.WithMeta(w, items, response.Meta{
		Total: total,
		Page:  offset/limit + 1,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	})
}

// AdminMarkRead handles POST /admin/messages/{id}/read
func (h *Handler) AdminMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid message ID")
		return
	}

	if err := h.repo.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Message not found")
			return
		}
		log.Error().Err(err).Msg("Failed to mark contact message read")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// AdminDelete handles DELETE /admin/messages/{id}
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid message ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Message not found")
			return
		}
		log.Error().Err(err).Msg("Failed to delete contact message")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
