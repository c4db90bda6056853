package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"facelog-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "recognition_events"

// Hub fans recognition outcomes out to everyone watching a session live
// (typically the instructor dashboard during class). Clients are grouped by
// the session they subscribed to; Redis relays payloads across instances so
// a viewer can be connected to any replica.
type Hub struct {
	// SessionID -> connected viewers
	sessions map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, may be nil
	rdb *redis.Client

	// instanceId tags published envelopes so this instance can skip its own
	// echo on the cluster channel.
	instanceId string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		sessions:   make(map[string][]*Client),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.sessions[client.SessionID] = append(h.sessions[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Viewer registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.sessions[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.sessions[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.sessions[client.SessionID]) == 0 {
					delete(h.sessions, client.SessionID)
					h.logger.Info("Hub", "Session has no more viewers", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToSession delivers a payload to local viewers of the session and
// relays it through Redis for viewers on other instances.
func (h *Hub) BroadcastToSession(sessionId string, payload []byte) {
	h.deliverLocal(sessionId, payload)

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"origin":     h.instanceId,
			"session_id": sessionId,
			"message":    json.RawMessage(payload),
		})
		h.rdb.Publish(context.Background(), clusterChannel, envelope)
	}
}

func (h *Hub) deliverLocal(sessionId string, payload []byte) {
	h.mu.RLock()
	clients := h.sessions[sessionId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("Hub", "Viewer buffer full, dropping connection", map[string]interface{}{"session_id": sessionId})
			close(client.Send)
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var envelope struct {
			Origin    string          `json:"origin"`
			SessionID string          `json:"session_id"`
			Message   json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		if envelope.Origin == h.instanceId {
			// Already delivered locally before publishing.
			continue
		}
		h.deliverLocal(envelope.SessionID, envelope.Message)
	}
}
