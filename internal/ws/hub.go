package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is one change-notification frame pushed to connected clients.
// The leaderboard UI consumes user_updated; the rest drive per-player
// cosmetic state (milestones, click effects, the suspension overlay).
type Event struct {
	Type    string `json:"type"`
	UserID  string `json:"user_id,omitempty"`
	Score   int64  `json:"score,omitempty"`
	Message string `json:"message,omitempty"`
	X       int    `json:"x,omitempty"`
	Y       int    `json:"y,omitempty"`
}

const (
	EventUserUpdated      = "user_updated"
	EventMilestone        = "milestone"
	EventMilestoneCleared = "milestone_cleared"
	EventClickEffect      = "click_effect"
	EventClickEffectClear = "click_effect_cleared"
	EventUserSuspended    = "user_suspended"
)

// sendBuffer is the per-client outbound queue; a client that falls this
// far behind is dropped rather than blocking the broadcast loop
const sendBuffer = 64

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans change events out to every connected websocket client.
// It satisfies service.Notifier.
type Hub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	register   chan *client
	unregister chan *client
	broadcast  chan Event
	clients    map[*client]struct{}
}

// NewHub creates a new hub. Run must be started before handling
// connections.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Event, sendBuffer),
		clients:    make(map[*client]struct{}),
	}
}

// Run owns the client set until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				close(c.send)
				delete(h.clients, c)
			}

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("Failed to marshal event", zap.Error(err))
				continue
			}
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					// Slow consumer, drop it
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// ServeHTTP upgrades an HTTP request to a websocket subscription
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	h.register <- c

	go c.writeLoop()
	go c.readLoop(h)
}

func (c *client) writeLoop() {
	defer c.conn.Close()

	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}

// readLoop discards inbound frames; the feed is one-way. A read error
// means the client went away.
func (c *client) readLoop(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("Dropping event, broadcast queue full",
			zap.String("type", event.Type),
		)
	}
}

// ScoreUpdated announces a persisted score change
func (h *Hub) ScoreUpdated(userID string, score int64) {
	h.publish(Event{Type: EventUserUpdated, UserID: userID, Score: score})
}

// Milestone announces a combo milestone message
func (h *Hub) Milestone(userID, message string) {
	h.publish(Event{Type: EventMilestone, UserID: userID, Message: message})
}

// MilestoneCleared retires a milestone message after its display time
func (h *Hub) MilestoneCleared(userID string) {
	h.publish(Event{Type: EventMilestoneCleared, UserID: userID})
}

// ClickEffect anchors a transient "+1" effect at the click coordinates
func (h *Hub) ClickEffect(userID string, x, y int) {
	h.publish(Event{Type: EventClickEffect, UserID: userID, X: x, Y: y})
}

// ClickEffectCleared retires an expired click effect
func (h *Hub) ClickEffectCleared(userID string) {
	h.publish(Event{Type: EventClickEffectClear, UserID: userID})
}

// Suspended announces the blocking overlay for a suspended player
func (h *Hub) Suspended(userID string) {
	h.publish(Event{Type: EventUserSuspended, UserID: userID})
}
