package traintracker

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/theoremus-urban-solutions/train-tracker/tracker"
)

// Hub maintains active WebSocket connections and broadcasts state views
// to all of them whenever the tracker applies a change.
type Hub struct {
	// Registered clients (client id -> client)
	clients map[string]*wsClient

	// Outbound state updates to fan out
	broadcast chan []byte

	// Register requests from clients
	register chan *wsClient

	// Unregister requests from clients
	unregister chan *wsClient

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*wsClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
	}
}

// Run starts the hub's main loop. It exits when ctx is cancelled, closing
// every remaining client connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("ws client connected: %s (%d total)", client.id, total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			remaining := len(h.clients)
			h.mu.Unlock()
			log.Printf("ws client disconnected: %s (%d remaining)", client.id, remaining)

		case data := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Client buffer full, disconnect
					close(client.send)
					delete(h.clients, id)
					log.Printf("ws client buffer full, disconnecting: %s", id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a state view for fan-out to all connected clients.
// It never blocks the caller; under backpressure the update is dropped,
// the next change will carry the fresher state anyway.
func (h *Hub) Broadcast(view tracker.StateView) {
	data, err := json.Marshal(view)
	if err != nil {
		log.Printf("failed to marshal state view: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
