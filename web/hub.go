package web

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeWait = 5 * time.Second

// Server actions pushed to the page.
const (
	ActionPiecePlaced = "piece_placed"
	ActionGameWon     = "game_won"
	ActionGameTied    = "game_tied"
	ActionTurnChanged = "turn_changed"
	ActionReset       = "reset"
	ActionInvalidMove = "invalid_move"
	ActionState       = "state"
	ActionPreview     = "preview"
	ActionError       = "error"
)

// Message is the envelope for every websocket frame sent by the server.
type Message struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data,omitempty"`
}

// client wraps a connection; gorilla allows one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Hub tracks the websocket connections of every session.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*client]struct{}
	upgrader websocket.Upgrader
	allowed  []string
	log      zerolog.Logger
}

func NewHub(allowedOrigins []string, log zerolog.Logger) *Hub {
	h := &Hub{
		sessions: make(map[string]map[*client]struct{}),
		allowed:  allowedOrigins,
		log:      log.With().Str("component", "hub").Logger(),
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// checkOrigin accepts same-host pages and any configured origin ("*" for all).
func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range h.allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func (h *Hub) upgrade(w http.ResponseWriter, r *http.Request, sessionID string) (*client, error) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	c := &client{conn: conn}

	h.mu.Lock()
	if _, ok := h.sessions[sessionID]; !ok {
		h.sessions[sessionID] = make(map[*client]struct{})
	}
	h.sessions[sessionID][c] = struct{}{}
	h.mu.Unlock()

	h.log.Debug().Str("session", sessionID).Msg("websocket connected")
	return c, nil
}

func (h *Hub) remove(sessionID string, c *client) {
	h.mu.Lock()
	if clients, ok := h.sessions[sessionID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.sessions, sessionID)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Broadcast sends action to every page watching the session.
func (h *Hub) Broadcast(sessionID string, action string, data interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.sessions[sessionID]))
	for c := range h.sessions[sessionID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	msg := Message{Action: action, Data: data}
	for _, c := range clients {
		if err := c.send(msg); err != nil {
			h.log.Warn().Err(err).Str("session", sessionID).Str("action", action).Msg("failed to send message")
			h.remove(sessionID, c)
		}
	}
}

// CloseSession disconnects every page watching the session.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	clients := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	for c := range clients {
		_ = c.conn.Close()
	}
}

// Clients returns the number of connections watching the session.
func (h *Hub) Clients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}
