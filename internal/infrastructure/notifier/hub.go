package notifier

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/oysy-network/oysy-wallet/internal/core/ports"
)

const (
	EventNotification = "notification"
	EventProgress     = "progress"

	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBuffer   = 16
)

// Event is the message pushed to every websocket client.
type Event struct {
	Type       string `json:"type"`
	Severity   string `json:"severity,omitempty"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"durationMs,omitempty"`
	Force      bool   `json:"force,omitempty"`
}

// Hub pushes notifications and progress events to the connected websocket
// clients.
type Hub struct {
	upgrader websocket.Upgrader
	lock     *sync.RWMutex
	clients  map[string]*client
	closed   bool
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		lock:    &sync.RWMutex{},
		clients: make(map[string]*client),
	}
}

// ServeHTTP upgrades the connection and registers the client until it goes
// away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("websocket upgrade failed")
		return
	}

	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	if !h.register(c) {
		conn.Close()
		return
	}
	log.WithField("client", c.id).Debug("websocket client connected")

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) Notify(n ports.Notification) {
	h.broadcast(Event{
		Type:       EventNotification,
		Severity:   n.Severity.String(),
		Message:    n.Message,
		DurationMs: n.Duration.Milliseconds(),
	})
}

func (h *Hub) Done(force bool) {
	h.broadcast(Event{Type: EventProgress, Force: force})
}

// NumOfClients returns the number of connected clients.
func (h *Hub) NumOfClients() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.clients)
}

// Close disconnects all clients and refuses new ones.
func (h *Hub) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.closed = true
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}

func (h *Hub) register(c *client) bool {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.closed {
		return false
	}
	h.clients[c.id] = c
	return true
}

func (h *Hub) unregister(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if _, ok := h.clients[c.id]; ok {
		close(c.send)
		delete(h.clients, c.id)
	}
}

func (h *Hub) broadcast(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Warn("failed to serialize event")
		return
	}

	h.lock.RLock()
	defer h.lock.RUnlock()

	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.WithField("client", c.id).Warn("client too slow, event dropped")
		}
	}
}

// readLoop discards incoming messages and returns once the client goes away.
func (h *Hub) readLoop(c *client) {
	defer h.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseNormalClosure,
			) {
				log.WithError(err).WithField("client", c.id).Debug("websocket closed")
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
