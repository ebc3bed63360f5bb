package notification

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/nojast/nojast-api/internal/middleware"
	"github.com/nojast/nojast-api/internal/pkg/jwt"
	"github.com/nojast/nojast-api/internal/pkg/response"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 32
)

// Handler handles notification HTTP requests
type Handler struct {
	service  *Service
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler creates notification handler
func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		jwt:     jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// List handles GET /notifications
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	notifications, err := h.service.List(r.Context(), userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list notifications")
		response.InternalError(w)
		return
	}

	items := make([]*Response, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, ToResponse(n))
	}
	response.OK(w, items)
}

// UnreadCount handles GET /notifications/unread-count
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	count, err := h.service.GetUnreadCount(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to count unread notifications")
		response.InternalError(w)
		return
	}

	response.OK(w, UnreadCountResponse{Count: count})
}

// MarkRead handles POST /notifications/{id}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	if err := h.service.MarkAsRead(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Notification not found")
			return
		}
		log.Error().Err(err).Msg("Failed to mark notification as read")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// MarkAllRead handles POST /notifications/read-all
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.service.MarkAllAsRead(r.Context(), userID); err != nil {
		log.Error().Err(err).Msg("Failed to mark notifications as read")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /notifications/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Notification not found")
			return
		}
		log.Error().Err(err).Msg("Failed to delete notification")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// Stream handles GET /notifications/ws. Browsers cannot attach headers to a
// WebSocket handshake, so the access token may also arrive as ?token=; an
// Authorization header (resolved into context upstream) works too.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		claims, err := h.jwt.ValidateAccessToken(r.URL.Query().Get("token"))
		if err != nil || claims.IsBanned {
			response.Unauthorized(w, "Invalid or missing token")
			return
		}
		userID = claims.UserID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &Connection{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
	}
	h.hub.Register(client)

	go h.wsReader(client)
	go h.wsWriter(client)
}

func (h *Handler) wsReader(client *Connection) {
	defer func() {
		h.hub.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The stream is push-only; reads just keep the connection alive until
	// the client disconnects.
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", client.UserID.String()).Msg("WebSocket read error")
			}
			break
		}
	}
}

func (h *Handler) wsWriter(client *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
