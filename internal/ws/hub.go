package ws

import (
	"sync"

	"go.uber.org/zap"

	"smartpark/internal/models"
)

// conn is the subset of *websocket.Conn the hub needs.
type conn interface {
	WriteJSON(v any) error
	Close() error
}

// SlotUpdate is the message pushed to dashboard clients on every slot
// status transition.
type SlotUpdate struct {
	SlotNumber int               `json:"slotNumber"`
	Status     models.SlotStatus `json:"slotStatus"`
}

// client wraps a connection with a write lock. Broadcasts arrive from
// many request goroutines, and the websocket allows at most one
// concurrent writer per connection.
type client struct {
	mu   sync.Mutex
	conn conn
}

func (c *client) write(update SlotUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(update)
}

// Hub fans slot status transitions out to connected dashboard clients.
// It implements the engine's SlotNotifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[conn]*client
	logger  *zap.Logger
}

// NewHub builds an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[conn]*client),
		logger:  logger,
	}
}

// Add registers a client connection.
func (h *Hub) Add(c conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = &client{conn: c}
}

// Remove drops a client connection.
func (h *Hub) Remove(c conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SlotChanged broadcasts a committed slot transition. Clients that fail
// the write are closed and dropped.
func (h *Hub) SlotChanged(slotNumber int, status models.SlotStatus) {
	update := SlotUpdate{SlotNumber: slotNumber, Status: status}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	var dead []*client
	for _, c := range targets {
		if err := c.write(update); err != nil {
			h.logger.Warn("dropping slow slot feed client", zap.Error(err))
			dead = append(dead, c)
		}
	}

	if len(dead) == 0 {
		return
	}
	h.mu.Lock()
	for _, c := range dead {
		delete(h.clients, c.conn)
		_ = c.conn.Close()
	}
	h.mu.Unlock()
}
