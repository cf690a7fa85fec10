package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"store-pos/pkg/logger"
)

// Event is pushed to every connected staff client.
type Event struct {
	Type    string      `json:"type"`   // e.g. "stock_update"
	Action  string      `json:"action"` // e.g. "sale_registered"
	Data    interface{} `json:"data,omitempty"`
	Actor   string      `json:"actor,omitempty"`
	Message string      `json:"message,omitempty"`
}

type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	done       chan struct{} // closed when Run returns
	mutex      sync.Mutex
	log        logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Publish queues ev for broadcast. Events are dropped when the queue is full.
func (h *Hub) Publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Errorf(err, "ws: marshal %s event", ev.Action)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warnf("ws: broadcast queue full, dropping %s event", ev.Action)
	}
}

// Serve keeps conn registered until the peer disconnects or the hub stops.
func (h *Hub) Serve(conn *websocket.Conn) {
	if !h.join(conn) {
		return
	}
	defer h.leave(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// join reports false once the hub has stopped.
func (h *Hub) join(conn *websocket.Conn) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(conn *websocket.Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			h.log.Infof("ws: client connected")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
