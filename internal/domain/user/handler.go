package user

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/response"
	"github.com/nojast/nojast-api/internal/pkg/validator"
)

// Handler handles user HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates user handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetProfile handles GET /users/{username}
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	u, err := h.repo.GetByUsername(r.Context(), username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to load profile")
		response.InternalError(w)
		return
	}
	if u == nil {
		response.NotFound(w, "User not found")
		return
	}

	response.OK(w, NewProfileResponse(u))
}

// UpdateMe handles PATCH /users/me
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.repo.UpdateProfile(r.Context(), userID, req.FullName, req.Username, req.AvatarURL); err != nil {
		switch err {
		case ErrUsernameTaken:
			response.Conflict(w, "Username already taken")
		case ErrNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update profile")
			response.InternalError(w)
		}
		return
	}

	u, err := h.repo.GetByID(r.Context(), userID)
	if err != nil || u == nil {
		response.InternalError(w)
		return
	}

	response.OK(w, NewProfileResponse(u))
}

// AdminList handles GET /admin/users
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50)

	users, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	total, err := h.repo.Count(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]AdminUserResponse, len(users))
	for i, u := range users {
		items[i] = NewAdminUserResponse(u)
	}

	response.WithMeta(w, items, response.Meta{
		Total: total,
		Page:  offset/limit + 1,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	})
}

// AdminSetBanned handles POST /admin/users/{id}/ban and /unban
func (h *Handler) AdminSetBanned(banned bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			response.BadRequest(w, "Invalid user ID")
			return
		}

		if err := h.repo.SetBanned(r.Context(), id, banned); err != nil {
			if err == ErrNotFound {
				response.NotFound(w, "User not found")
			} else {
				log.Error().Err(err).Str("user_id", id.String()).Msg("failed to update ban flag")
				response.InternalError(w)
			}
			return
		}

		response.OK(w, map[string]bool{"is_banned": banned})
	}
}

func pagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
