package web

import (
	"encoding/binary"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gochip8/pkg/log"
)

// hub tracks the connected clients and fans messages out to them.
type hub struct {
	clients map[*client]bool

	broadcast            chan []byte
	register, unregister chan *client
	// input carries messages received from clients, joined carries
	// newly registered clients.
	input  chan message
	joined chan *client
	stop   chan struct{}

	currentID uint8
	mu        sync.Mutex

	log.Logger
}

type message struct {
	from *client
	data []byte
}

func newHub(l log.Logger) *hub {
	return &hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
		input:      make(chan message, 64),
		joined:     make(chan *client, 4),
		stop:       make(chan struct{}),
		Logger:     l,
	}
}

// ServeHTTP upgrades the connection to a websocket and registers a
// client for it.
func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Errorf("websocket upgrade from %s: %v", r.RemoteAddr, err)
		return
	}

	c := h.newClient(conn, r)
	select {
	case h.register <- c:
	case <-h.stop:
		conn.Close()
		return
	}
	go c.readPump()
	go c.writePump()
}

// close stops the hub, disconnecting every client.
func (h *hub) close() {
	close(h.stop)
}

// run services the hub until it is closed.
func (h *hub) run() {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	// clients waiting to be handed to the driver on joined, which
	// must never block the hub while the driver is broadcasting
	var pending []*client
	for {
		var joined chan<- *client
		var next *client
		if len(pending) > 0 {
			joined, next = h.joined, pending[0]
		}

		select {
		case <-h.stop:
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.Infof("client %d connected from %s", c.id, c.remoteAddr)
			pending = append(pending, c)
		case joined <- next:
			pending = pending[1:]
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.Infof("client %d disconnected", c.id)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// too slow to keep up
					close(c.send)
					delete(h.clients, c)
				}
			}
		case <-t.C:
			// latency is reported in milliseconds, per client
			var data []byte
			for c := range h.clients {
				latency := make([]byte, 2)
				binary.LittleEndian.PutUint16(latency, c.latency())
				data = append(data, c.id)
				data = append(data, latency...)
			}
			for c := range h.clients {
				select {
				case c.send <- append([]byte{ServerInfo}, data...):
				default:
				}
			}
		}
	}
}

// newClient creates a new client for conn.
func (h *hub) newClient(conn *websocket.Conn, r *http.Request) *client {
	h.mu.Lock()
	h.currentID++
	id := h.currentID
	h.mu.Unlock()

	c := &client{
		hub:         h,
		conn:        conn,
		send:        make(chan []byte, 256),
		id:          id,
		remoteAddr:  r.RemoteAddr,
		userAgent:   r.Header.Get("User-Agent"),
		connectedAt: time.Now(),
	}
	return c
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
