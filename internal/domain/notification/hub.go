package notification

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const userEventsChannel = "notifications:user_events"

type userEvent struct {
	UserID           string          `json:"user_id"`
	Payload          json.RawMessage `json:"payload"`
	SenderInstanceID string          `json:"sender_instance_id"`
}

// Connection represents one client's WebSocket stream.
type Connection struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub fans notification events out to connected clients. With Redis
// configured, events are relayed through Pub/Sub so every server instance
// reaches its own connections; without it the hub degrades to local-only
// delivery.
type Hub struct {
	connections map[uuid.UUID]map[*Connection]bool
	mu          sync.RWMutex

	redis  *redis.Client
	pubsub *redis.PubSub

	register   chan *Connection
	unregister chan *Connection

	ctx        context.Context
	cancel     context.CancelFunc
	instanceID string
}

// NewHub creates a notification hub.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		connections: make(map[uuid.UUID]map[*Connection]bool),
		redis:       redisClient,
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
		instanceID:  uuid.NewString(),
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, userEventsChannel)
	}

	return h
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.connections[conn.UserID] == nil {
				h.connections[conn.UserID] = make(map[*Connection]bool)
			}
			h.connections[conn.UserID][conn] = true
			h.mu.Unlock()
			log.Debug().Str("user_id", conn.UserID.String()).Msg("User connected to notification stream")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.connections[conn.UserID]; ok {
				if _, exists := conns[conn]; exists {
					delete(conns, conn)
					close(conn.Send)
				}
				if len(conns) == 0 {
					delete(h.connections, conn.UserID)
				}
			}
			h.mu.Unlock()
			log.Debug().Str("user_id", conn.UserID.String()).Msg("User disconnected from notification stream")
		}
	}
}

func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event userEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			if event.SenderInstanceID == h.instanceID {
				continue
			}
			userID, err := uuid.Parse(event.UserID)
			if err != nil {
				continue
			}
			h.sendLocal(userID, []byte(event.Payload))
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Publish delivers a payload to every connection the user has, on this
// instance directly and on the others via Redis.
func (h *Hub) Publish(userID uuid.UUID, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal notification event")
		return
	}

	h.sendLocal(userID, data)

	if h.redis == nil {
		return
	}

	event := userEvent{
		UserID:           userID.String(),
		Payload:          data,
		SenderInstanceID: h.instanceID,
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := h.redis.Publish(h.ctx, userEventsChannel, raw).Err(); err != nil {
		log.Error().Err(err).Msg("Redis publish failed for notification event")
	}
}

func (h *Hub) sendLocal(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections[userID] {
		select {
		case conn.Send <- data:
		default:
			// Buffer full, skip this message
			log.Warn().Str("user_id", userID.String()).Msg("Notification send buffer full")
		}
	}
}

// Shutdown stops the hub and its Redis subscription.
func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}
