package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type state int

const (
	stateOpen state = iota
	stateRegistered
	stateClosed
)

// Client owns one websocket connection. It stays OPEN until a valid register
// frame arrives, is REGISTERED until the socket closes, then CLOSED. Closing
// always deregisters.
type Client struct {
	registry *Registry
	conn     *websocket.Conn

	send chan []byte

	mu     sync.Mutex
	state  state
	userID string

	closeOnce sync.Once
}

// Serve upgrades the request and starts the connection's pumps.
func Serve(registry *Registry, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	c := &Client{
		registry: registry,
		conn:     conn,
		send:     make(chan []byte, 16),
	}
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer c.shutdown()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			return
		}
		c.handleFrame(message)
	}
}

// handleFrame applies one client frame. Malformed frames are logged and
// dropped; they neither register nor close the connection.
//
// A connection that sends a second register frame with a different userId is
// mapped under the new id without clearing the old one; close then removes
// only the first matching entry. Clients re-register on the same id after a
// reconnect, so the stale mapping is short-lived and the extra lookup misses
// are harmless.
func (c *Client) handleFrame(raw []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		log.Printf("ws invalid frame: %v", err)
		return
	}
	if frame.Type != TypeRegister {
		log.Printf("ws frame type %q ignored", frame.Type)
		return
	}
	userID := normalizeUserID(frame.UserID)
	if userID == "" {
		log.Printf("ws register frame without userId ignored")
		return
	}

	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		return
	}
	c.state = stateRegistered
	c.userID = userID
	c.mu.Unlock()

	c.registry.Register(userID, c)
	log.Printf("ws registered user %s", userID)

	ack, _ := json.Marshal(RegisteredAck{Type: TypeRegistered, Message: "connection registered"})
	c.enqueue(ack)
}

func normalizeUserID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	default:
		return ""
	}
}

// enqueue hands a frame to the write pump without blocking. A full buffer or
// a closed connection drops the frame.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == stateClosed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// shutdown runs once when the read pump exits: deregister first, then mark
// closed and stop the write pump. The state flip happens under the client
// mutex before the send channel closes, so enqueue can never hit a closed
// channel.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		c.registry.Unregister(c)
		c.mu.Lock()
		c.state = stateClosed
		c.mu.Unlock()
		close(c.send)
		c.conn.Close()
		c.mu.Lock()
		if c.userID != "" {
			log.Printf("ws unregistered user %s", c.userID)
		}
		c.mu.Unlock()
	})
}
