// Package realtime pushes change events to connected WebSocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/utils"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// client owns one connection. Only its write loop writes to conn.
type client struct {
	conn     *websocket.Conn
	username string
	send     chan []byte
}

// Hub tracks open connections by username. Publish only queues messages, so a
// slow client never holds up the request that produced the event.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

// Register starts delivering events to conn on behalf of username.
func (h *Hub) Register(conn *websocket.Conn, username string) {
	c := &client{conn: conn, username: username, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = c
	h.mutex.Unlock()

	go h.writeLoop(c)
}

// Unregister stops delivery. The write loop closes the connection once its queue is closed.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.remove(conn)
}

// remove must be called with the mutex held.
func (h *Hub) remove(conn *websocket.Conn) {
	if c, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(c.send)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish queues ev for every client allowed to see it: menu events go to
// everyone, owned events only to the owner's connections. A client whose queue
// is full is dropped.
func (h *Hub) Publish(_ context.Context, ev events.Event) error {
	data, err := json.Marshal(Message{Event: ev.Name(), Data: ev.Data})
	if err != nil {
		return fmt.Errorf("marshal realtime message: %w", err)
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, c := range h.clients {
		if ev.Owner != "" && ev.Owner != c.username {
			continue
		}
		select {
		case c.send <- data:
		default:
			utils.ErrorLogger.WithField("user", c.username).Error("websocket client too slow, dropping")
			h.remove(conn)
		}
	}
	return nil
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			utils.ErrorLogger.WithError(err).WithField("user", c.username).Error("websocket write failed")
			h.Unregister(c.conn)
			return
		}
	}

	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}
