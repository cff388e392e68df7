// Package wshub is the subject for the WebSocket lessons: a broadcast hub
// that fans messages out to every connected client over gorilla/websocket.
// The tests dial real connections through httptest.NewServer and verify
// with goleak that the hub tears every goroutine down on Stop.
package wshub

import (
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/gotestbook/gotestbook/pkg/logger"
)

// Message is the broadcast payload. From is stamped by the hub from the
// connection's identity, so clients cannot impersonate each other.
type Message struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// Hub fans broadcast messages out to all connected clients. The run loop
// owns the client set; registration, removal, and broadcasts all go through
// its channels.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan Message
	register   chan *client
	unregister chan *client

	clientCount atomic.Int64

	log *logger.Logger

	stopped  atomic.Bool
	stopOnce sync.Once
	stopChan chan struct{}
	doneChan chan struct{}

	// pumps tracks the per-client goroutines so Stop can wait them out.
	pumps sync.WaitGroup
}

// New creates a Hub and starts its run loop. log may be nil.
func New(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.New(io.Discard, "info")
	}

	h := &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *client),
		unregister: make(chan *client, 256),
		log:        log,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}

	go h.run()

	return h
}

// Broadcast queues a message for delivery to every connected client.
// Messages sent after Stop, or while the queue is full, are dropped.
func (h *Hub) Broadcast(msg Message) {
	if h.stopped.Load() {
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("broadcast queue full, message dropped", "from", msg.From)
	}
}

// ClientCount reports how many clients are currently connected.
func (h *Hub) ClientCount() int {
	return int(h.clientCount.Load())
}

// Stop disconnects all clients, stops the run loop, and waits for every
// connection goroutine to exit. It is safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.stopped.Store(true)
		close(h.stopChan)
		<-h.doneChan
		h.pumps.Wait()
	})
}

func (h *Hub) run() {
	defer close(h.doneChan)

	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.clientCount.Add(1)
			h.log.Debug("client joined", "user", c.user)

		case c := <-h.unregister:
			h.removeClient(c)

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// A client that cannot keep up is dropped rather
					// than allowed to stall everyone else.
					h.log.Warn("slow client dropped", "user", c.user)
					h.removeClient(c)
				}
			}

		case <-h.stopChan:
			for c := range h.clients {
				h.removeClient(c)
			}
			return
		}
	}
}

// removeClient closes the client's send channel exactly once. The double
// check matters: a client can be evicted for slowness and later unregister
// itself when its read pump exits.
func (h *Hub) removeClient(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.clientCount.Add(-1)
	h.log.Debug("client left", "user", c.user)
}

// ServeHTTP upgrades the request to a WebSocket connection and joins it to
// the hub. The user query parameter identifies the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.stopped.Load() {
		http.Error(w, "hub is shutting down", http.StatusServiceUnavailable)
		return
	}

	user := r.URL.Query().Get("user")
	if user == "" {
		http.Error(w, "user required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "error", err.Error())
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan Message, 256),
		user: user,
	}

	// Add before the register handoff so Stop's Wait can never observe a
	// registered client whose pumps are not yet counted.
	h.pumps.Add(2)
	select {
	case h.register <- c:
	case <-h.stopChan:
		_ = conn.Close()
		h.pumps.Done()
		h.pumps.Done()
		return
	}

	go c.writePump()
	go c.readPump()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
