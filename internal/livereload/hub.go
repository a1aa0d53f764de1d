// Package livereload tells open catalog pages to reload when section files
// change on disk.
package livereload

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shellmarks/catalog/internal/logging"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 4
)

// Message is sent to every connected page.
type Message struct {
	Type string `json:"type"` // "reload"
	Path string `json:"path,omitempty"`
}

// Broadcaster delivers a message to connected pages.
type Broadcaster interface {
	Broadcast(Message)
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks websocket clients and fans messages out to them.
type Hub struct {
	// CheckOrigin decides which pages may connect. When nil only pages
	// served from the same host are accepted.
	CheckOrigin func(r *http.Request) bool

	mu      sync.Mutex
	clients map[*client]struct{}
	logger  *slog.Logger
}

// NewHub creates an empty Hub. A nil logger discards output.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hub{clients: make(map[*client]struct{}), logger: logger}
}

// Clients returns the number of connected pages.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast implements Broadcaster. Clients whose buffer is full miss the
// message; the next one reloads them anyway.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encoding reload message", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("dropping reload message for slow client")
		}
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the page goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: h.CheckOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)
	defer h.unregister(c)

	done := make(chan struct{})
	go h.writeLoop(c, done)

	// Pages never send anything; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read", "error", err)
			}
			break
		}
	}
	close(done)
}

func (h *Hub) writeLoop(c *client, done <-chan struct{}) {
	defer c.conn.Close()
	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Debug("websocket write", "error", err)
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("live reload client connected", "clients", n)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}
