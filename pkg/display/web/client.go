package web

import (
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type client struct {
	hub  *hub
	conn *websocket.Conn
	send chan []byte
	id   uint8

	remoteAddr  string
	userAgent   string
	connectedAt time.Time

	mu         sync.Mutex
	avgLatency uint16
}

// readPump forwards messages from the connection to the hub until
// the connection closes.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.stop:
		}
		c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if len(data) == 0 {
			continue
		}
		if data[0] == Closing {
			return
		}
		select {
		case c.hub.input <- message{from: c, data: data}:
		case <-c.hub.stop:
			return
		}
	}
}

// writePump writes queued messages to the connection, sampling the
// round trip time after each.
func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return
		}

		if conn, ok := c.conn.UnderlyingConn().(*net.TCPConn); ok {
			if rtt, err := roundTrip(conn); err == nil {
				c.mu.Lock()
				c.avgLatency = (c.avgLatency*9 + uint16(rtt/time.Millisecond)) / 10
				c.mu.Unlock()
			}
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *client) latency() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.avgLatency
}
