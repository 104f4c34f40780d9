package notifications

import (
	"context"
	"errors"
	"slices"
	"sync"

	"socialnet/internal/middleware"
	"socialnet/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max total connections
	maxTotalConns = 10000
)

// ErrHubClosed is returned by Register after Shutdown.
var ErrHubClosed = errors.New("event hub is shut down")

// Hub tracks websocket clients and routes events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register adds a connection following the given user id ("" for every event).
func (h *Hub) Register(conn *websocket.Conn, follow string) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if len(h.clients) >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	client := newClient(h, conn, follow)
	h.clients[client] = struct{}{}
	observability.WebSocketConnectionsTotal.Inc()
	return client, nil
}

// Unregister removes client and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	observability.WebSocketConnectionsTotal.Dec()
}

// Len reports the number of registered clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Deliver routes an encoded event to every client that follows one of its subjects
// or follows nothing.
func (h *Hub) Deliver(data []byte) {
	env, err := decodeEnvelope(data)
	if err != nil {
		middleware.Logger.Warn("dropping malformed event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.Follow == "" || slices.Contains(env.Subjects, c.Follow) {
			c.TrySend(data)
		}
	}
}

// Shutdown gracefully closes all websocket connections
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for client := range h.clients {
		if client.Conn != nil {
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				middleware.Logger.Debug("failed to write close message", "error", err)
			}
		}
		close(client.Send)
		observability.WebSocketConnectionsTotal.Dec()
	}
	h.clients = make(map[*Client]struct{})
	return nil
}
