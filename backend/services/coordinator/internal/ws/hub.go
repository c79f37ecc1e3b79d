package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is one message on the dashboard feed.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Hub fans session events out to dashboard WebSocket subscribers. Broadcast
// never blocks the caller: each client has a bounded send queue and slow
// clients are dropped.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHub returns an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// HandleWS upgrades the request and registers the subscriber.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 16),
		hub:  h,
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()
}

// Broadcast sends an event to every subscriber. Subscribers whose queue is
// full miss the event rather than stalling the mutating call.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("failed to encode event", zap.String("type", eventType), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("dropping event for slow subscriber", zap.String("type", eventType))
		}
	}
}

// SubscriberCount returns the number of connected dashboards.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}
