package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"jarvisgw/internal/models"
	"jarvisgw/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	idleTimeout    = 30 * time.Second
	maxMessageSize = 64 * 1024

	welcomeMessage = "Connected to JARVIS Unified Backend"
)

var errClientGone = errors.New("websocket client not registered")

// Conn is the part of *websocket.Conn the hub writes through. Handles are
// compared by identity.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// client serializes writes to one connection; gorilla allows a single
// concurrent writer per conn.
type client struct {
	conn Conn
	mu   sync.Mutex
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Hub is the registry of live realtime clients and fans messages out to them.
type Hub struct {
	clients     map[Conn]*client
	mutex       sync.RWMutex
	logger      *utils.Logger
	upgrader    websocket.Upgrader
	idleTimeout time.Duration
}

// NewHub builds a hub whose upgrader accepts the given origins ("*" for any).
func NewHub(logger *utils.Logger, allowedOrigins []string) *Hub {
	h := &Hub{
		clients:     make(map[Conn]*client),
		logger:      logger,
		idleTimeout: idleTimeout,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if !OriginAllowed(allowedOrigins, origin) {
				h.logf("WebSocket origin rejected: %s", origin)
				return false
			}
			return true
		},
	}
	return h
}

// Register adds a connection. Registering the same handle twice is a no-op.
func (h *Hub) Register(conn Conn) {
	h.mutex.Lock()
	if _, ok := h.clients[conn]; ok {
		h.mutex.Unlock()
		return
	}
	h.clients[conn] = &client{conn: conn}
	count := len(h.clients)
	h.mutex.Unlock()
	h.logf("WebSocket client connected (%d active)", count)
}

// Unregister removes and closes a connection. Unknown handles are ignored.
func (h *Hub) Unregister(conn Conn) {
	h.mutex.Lock()
	_, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
	}
	count := len(h.clients)
	h.mutex.Unlock()
	if !ok {
		return
	}
	_ = conn.Close()
	h.logf("WebSocket client disconnected (%d active)", count)
}

// Broadcast writes payload to every registered client and returns the number
// of successful deliveries. Clients whose write fails are dropped in one batch
// after the sweep; the failure never reaches the caller.
func (h *Hub) Broadcast(payload []byte) int {
	h.mutex.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mutex.RUnlock()

	delivered := 0
	var failed []*client
	for _, c := range targets {
		if err := c.write(payload); err != nil {
			h.logf("WebSocket write error: %v", err)
			failed = append(failed, c)
			continue
		}
		delivered++
	}
	if len(failed) > 0 {
		h.prune(failed)
	}
	return delivered
}

// BroadcastJSON marshals v once and broadcasts it.
func (h *Hub) BroadcastJSON(v interface{}) int {
	payload, err := json.Marshal(v)
	if err != nil {
		h.logf("WebSocket broadcast marshal error: %v", err)
		return 0
	}
	return h.Broadcast(payload)
}

// Send writes v to a single registered connection.
func (h *Hub) Send(conn Conn, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal websocket message: %w", err)
	}
	c := h.lookup(conn)
	if c == nil {
		return errClientGone
	}
	return c.write(payload)
}

// Ping sends a ping control frame to a single registered connection.
func (h *Hub) Ping(conn Conn) error {
	c := h.lookup(conn)
	if c == nil {
		return errClientGone
	}
	return c.ping()
}

// GetClientCount returns the number of registered clients.
func (h *Hub) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) lookup(conn Conn) *client {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.clients[conn]
}

func (h *Hub) prune(failed []*client) {
	h.mutex.Lock()
	removed := make([]*client, 0, len(failed))
	for _, c := range failed {
		if current, ok := h.clients[c.conn]; ok && current == c {
			delete(h.clients, c.conn)
			removed = append(removed, c)
		}
	}
	count := len(h.clients)
	h.mutex.Unlock()

	for _, c := range removed {
		_ = c.conn.Close()
	}
	if len(removed) > 0 {
		h.logf("WebSocket pruned %d dead client(s) (%d active)", len(removed), count)
	}
}

// HandleWebSocket upgrades the request and runs the connection until the
// client goes away.
func (h *Hub) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logf("WebSocket upgrade error: %v", err)
			return
		}
		h.serve(conn)
	}
}

func (h *Hub) serve(conn *websocket.Conn) {
	done := make(chan struct{})
	h.Register(conn)
	defer func() {
		close(done)
		h.Unregister(conn)
		_ = conn.Close()
	}()

	welcome := models.NewBroadcastMessage("connect", models.SourceSystem, models.LevelSuccess, welcomeMessage)
	if err := h.Send(conn, welcome); err != nil {
		h.logf("WebSocket welcome failed: %v", err)
		return
	}

	frames := make(chan []byte)
	go h.readFrames(conn, frames, done)

	idle := time.NewTimer(h.idleTimeout)
	defer idle.Stop()
	for {
		select {
		case data, ok := <-frames:
			if !ok {
				return
			}
			echo := models.NewBroadcastMessage("echo", models.SourceEcho, models.LevelInfo, "Received: "+string(data))
			if err := h.Send(conn, echo); err != nil {
				h.logf("WebSocket echo failed: %v", err)
				return
			}
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(h.idleTimeout)
		case <-idle.C:
			// Keepalive poll: an idle client is pinged, not closed.
			if err := h.Ping(conn); err != nil {
				h.logf("WebSocket ping error: %v", err)
				return
			}
			idle.Reset(h.idleTimeout)
		}
	}
}

// readFrames owns every read-side call on conn and closes frames when the
// connection fails or the peer closes it.
func (h *Hub) readFrames(conn *websocket.Conn, frames chan<- []byte, done <-chan struct{}) {
	defer close(frames)
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				h.logf("WebSocket error: %v", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		select {
		case frames <- data:
		case <-done:
			return
		}
	}
}

func (h *Hub) logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if h.logger != nil {
		h.logger.Write(msg)
		return
	}
	log.Println(msg)
}
