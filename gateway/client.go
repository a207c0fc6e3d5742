package gateway

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second    // Time allowed to write a message to the peer.
	pongWait       = 60 * time.Second    // Time allowed to read the next pong message from the peer.
	pingPeriod     = (pongWait * 9) / 10 // Must be less than pongWait.
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Client is the middleman between one websocket connection and the hub.
// Its inbound events are handled serially inside readPump, which gives
// every connection program-order handling without blocking the others.
type Client struct {
	id       string
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{}
	doneOnce sync.Once
	handler  *Handler
}

// shutdown signals writePump and in-flight sends that the connection is gone.
// The send channel itself is never closed: a broadcast racing a disconnect
// must not panic, so the channel stays open and done gates delivery instead.
func (c *Client) shutdown() {
	c.doneOnce.Do(func() { close(c.done) })
}

// trySend queues an outbound frame, dropping it when the buffer is full
// or the connection has already shut down.
func (c *Client) trySend(data []byte, log *slog.Logger) {
	select {
	case <-c.done:
	case c.send <- data:
	default:
		log.Warn("Slow consumer, event dropped", "clientId", c.id)
	}
}

func (c *Client) readPump(hub *Hub, log *slog.Logger) {
	defer func() {
		hub.remove(c.id)
		c.handler.OnDisconnect(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Warn("Connection read failed", "clientId", c.id, "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Debug("Malformed frame ignored", "clientId", c.id, "error", err)
			continue
		}
		c.handler.Dispatch(c.id, env.Event, env.Data)
	}
}

func (c *Client) writePump(log *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug("Connection write failed", "clientId", c.id, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
