package moderation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/domain/comment"
	"github.com/nojast/nojast-api/internal/domain/product"
	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/response"
	"github.com/nojast/nojast-api/internal/pkg/validator"
)

// Handler handles admin moderation requests
type Handler struct {
	service *Service
}

// NewHandler creates moderation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// decodeNote reads the optional decision body. An empty body is fine.
func decodeNote(r *http.Request) (string, bool) {
	var req DecisionRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", true
		}
		return "", false
	}
	if details := validator.Validate(&req); details != nil {
		return "", false
	}
	return req.Note, true
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, apply func(adminID, targetID uuid.UUID, note string) error) {
	adminID := middleware.GetUserID(r.Context())

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	note, ok := decodeNote(r)
	if !ok {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := apply(adminID, targetID, note); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			response.NotFound(w, "Product not found")
		case errors.Is(err, ErrCommentNotFound):
			response.NotFound(w, "Comment not found")
		case errors.Is(err, ErrReportNotFound):
			response.NotFound(w, "Report not found")
		default:
			log.Error().Err(err).Msg("Moderation decision failed")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// ApproveProduct handles POST /products/{id}/approve
func (h *Handler) ApproveProduct(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(adminID, id uuid.UUID, note string) error {
		return h.service.ApproveProduct(r.Context(), adminID, id, note)
	})
}

// RejectProduct handles POST /products/{id}/reject
func (h *Handler) RejectProduct(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(adminID, id uuid.UUID, note string) error {
		return h.service.RejectProduct(r.Context(), adminID, id, note)
	})
}

// ApproveComment handles POST /comments/{id}/approve
func (h *Handler) ApproveComment(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(adminID, id uuid.UUID, note string) error {
		return h.service.ApproveComment(r.Context(), adminID, id, note)
	})
}

// RejectComment handles POST /comments/{id}/reject
func (h *Handler) RejectComment(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(adminID, id uuid.UUID, note string) error {
		return h.service.RejectComment(r.Context(), adminID, id, note)
	})
}

// ResolveReport handles POST /reports/{id}/resolve
func (h *Handler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(adminID, id uuid.UUID, note string) error {
		return h.service.ResolveReport(r.Context(), adminID, id, note)
	})
}

// DismissReport handles POST /reports/{id}/dismiss
func (h *Handler) DismissReport(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(adminID, id uuid.UUID, note string) error {
		return h.service.DismissReport(r.Context(), adminID, id, note)
	})
}

func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ProductQueue handles GET /products?status=
func (h *Handler) ProductQueue(w http.ResponseWriter, r *http.Request) {
	status := product.Status(r.URL.Query().Get("status"))
	if status == "" {
		status = product.StatusPending
	}
	if !product.ValidStatus(string(status)) {
		response.BadRequest(w, "Invalid status")
		return
	}

	limit, offset := pagination(r)
	rows, total, err := h.service.ProductQueue(r.Context(), status, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list product queue")
		response.InternalError(w)
		return
	}

	items := make([]*product.Response, 0, len(rows))
	for _, row := range rows {
		items = append(items, product.ResponseFromRow(row))
	}
	response.WithMeta(w, items, response.Meta{
		Total: total,
		Page:  offset/limit + 1,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	})
}

// CommentQueue handles GET /comments?status=
func (h *Handler) CommentQueue(w http.ResponseWriter, r *http.Request) {
	status := comment.Status(r.URL.Query().Get("status"))
	if status == "" {
		status = comment.StatusPending
	}

	limit, offset := pagination(r)
	rows, total, err := h.service.CommentQueue(r.Context(), status, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list comment queue")
		response.InternalError(w)
		return
	}

	items := make([]*comment.Response, 0, len(rows))
	for _, row := range rows {
		items = append(items, comment.ResponseFromRow(row))
	}
	response.WithMeta(w, items, response.Meta{
		Total: total,
		Page:  offset/limit + 1,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	})
}

// ReportQueue handles GET /reports?status=
func (h *Handler) ReportQueue(w http.ResponseWriter, r *http.Request) {
	status := comment.ReportStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = comment.ReportPending
	}

	limit, offset := pagination(r)
	rows, total, err := h.service.ReportQueue(r.Context(), status, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list report queue")
		response.InternalError(w)
		return
	}

	items := make([]*comment.ReportResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, comment.ReportResponseFromRow(row))
	}
	response.WithMeta(w, items, response.Meta{
		Total: total,
		Page:  offset/limit + 1,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	})
}

// Stats handles GET /stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load moderation stats")
		response.InternalError(w)
		return
	}
	response.OK(w, stats)
}

// Logs handles GET /logs
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	logs, err := h.service.Logs(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load moderation logs")
		response.InternalError(w)
		return
	}

	items := make([]*LogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, ToLogResponse(l))
	}
	response.OK(w, items)
}
