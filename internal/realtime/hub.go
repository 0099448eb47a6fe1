package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// client owns a buffered outbox drained by its writePump. Only the hub closes
// send, and only while removing the client under its lock.
type client struct {
	conn   *websocket.Conn
	userID uint
	send   chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Failed to write to user %d: %v", c.userID, err)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for user %d: %v", c.userID, err)
				return
			}
		}
	}
}

// Hub fans task events out to every connected websocket client.
type Hub struct {
	clients map[*client]struct{}
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues message for every client without waiting on the network.
// A client whose outbox is full is dropped.
func (h *Hub) Broadcast(message interface{}) {
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to encode broadcast: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			log.Printf("Dropping slow websocket client for user %d", c.userID)
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Serve registers conn and blocks until the peer goes away.
func (h *Hub) Serve(conn *websocket.Conn, userID uint) {
	c := &client{conn: conn, userID: userID, send: make(chan []byte, sendBufferSize)}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	welcome, err := json.Marshal(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
	})
	if err != nil {
		log.Printf("Failed to encode welcome message: %v", err)
		conn.Close()
		return
	}
	c.send <- welcome

	h.add(c)
	go c.writePump()

	defer func() {
		h.remove(c)
		log.Printf("WebSocket connection closed for user %d", userID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for user %d: %v", userID, err)
			}
			return
		}
	}
}
