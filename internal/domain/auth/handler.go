package auth

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/response"
	"github.com/nojast/nojast-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrEmailAlreadyExists:
			response.Conflict(w, "Email already registered")
		case ErrUsernameTaken:
			response.Conflict(w, "Username already taken")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("failed to register user")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		case ErrUserBanned:
			response.Forbidden(w, "Your account has been blocked")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("failed to log in user")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case ErrRefreshTokenRequired:
			response.BadRequest(w, "Refresh token is required")
		case ErrInvalidRefreshToken, ErrUserNotFound:
			response.Unauthorized(w, "Invalid or expired refresh token")
		case ErrUserBanned:
			response.Forbidden(w, "Your account has been blocked")
		default:
			log.Error().Err(err).Msg("failed to refresh tokens")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	_ = response.DecodeJSON(r.Body, &req)

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		log.Error().Err(err).Msg("failed to revoke refresh token")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"message": "Logged out"})
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	result, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		if err == ErrUserNotFound {
			response.NotFound(w, "User not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// ForgotPassword handles POST /auth/forgot-password
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := h.service.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to create reset token")
		response.InternalError(w)
		return
	}

	if token != "" {
		// Delivery is out of band; in development the token lands in the log.
		log.Debug().Str("email", req.Email).Str("token", token).Msg("password reset token issued")
	}

	// Same response whether or not the email exists.
	response.OK(w, map[string]string{"message": "If the email exists, a reset link was sent"})
}

// ResetPassword handles POST /auth/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		if err == ErrInvalidResetToken {
			response.BadRequest(w, "Invalid or expired reset token")
		} else {
			log.Error().Err(err).Msg("failed to reset password")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Password updated"})
}
