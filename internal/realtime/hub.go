package realtime

import (
	"encoding/json"
	"sync"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains the connected clients of the entity change feed. Views are
// pollers; the feed just lets an open view refresh without waiting for its
// next poll.
type Hub struct {
	mu      sync.RWMutex
	clients map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{clients: make(map[Client]struct{})}
	})
	return hubInstance
}

// Register adds a client to the feed.
func (h *Hub) Register(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a client.
func (h *Hub) Unregister(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// Notify broadcasts an entity-change event to every connected client.
func (h *Hub) Notify(event string, id string) {
	payload, err := json.Marshal(map[string]any{
		"type": event,
		"id":   id,
	})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		// a failed write is cleaned up by the client's own handler
		c.Send(payload)
	}
}
