package notify

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event describes an entity mutation pushed to connected clients.
type Event struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     uint   `json:"id"`
}

const writeWait = 5 * time.Second

// Hub fans entity-change events out to registered websocket connections.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// Broadcast sends the event to every client. Connections that miss the write
// deadline are dropped.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			log.Printf("notify: dropping client: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
