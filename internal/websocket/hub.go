// Package websocket broadcasts analysis events to connected clients.
package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vrnd369/dataanalyzer-pro-Test16/internal/metrics"
)

const writeTimeout = 5 * time.Second

// Event is pushed to every connected client when an analysis completes.
type Event struct {
	Type      string    `json:"type"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Summary   any       `json:"summary,omitempty"`
}

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct {
	doneCh chan struct{}
}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		sendCh: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg, ok := <-cw.sendCh:
			if !ok {
				return
			}
			cw.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	cw.conn.Close()
}

// --- Hub ---

// Hub fans analysis events out to all connected clients. All state is owned
// by the actor goroutine; the public API communicates through the command
// channel.
type Hub struct {
	cmdCh      chan hubCmd
	clients    map[*websocket.Conn]*clientWriter
	maxClients int
	stopOnce   sync.Once
}

// NewHub creates and starts a hub that accepts up to maxClients connections.
func NewHub(maxClients int) *Hub {
	hub := &Hub{
		cmdCh:      make(chan hubCmd, 256),
		clients:    make(map[*websocket.Conn]*clientWriter),
		maxClients: maxClients,
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.conn)
		case cmdBroadcast:
			h.handleBroadcast(c.data)
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			for conn, cw := range h.clients {
				cw.stop()
				delete(h.clients, conn)
			}
			metrics.WebsocketClients.Set(0)
			close(c.doneCh)
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if len(h.clients) >= h.maxClients {
		slog.Warn("Rejecting websocket client: connection limit reached", "limit", h.maxClients)
		c.conn.Close()
		c.errCh <- fmt.Errorf("max websocket connections (%d) reached", h.maxClients)
		return
	}

	h.clients[c.conn] = newClientWriter(c.conn)
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	slog.Debug("Websocket client registered", "clients", len(h.clients))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, ok := h.clients[conn]
	if !ok {
		return
	}
	cw.stop()
	delete(h.clients, conn)
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	slog.Debug("Websocket client unregistered", "clients", len(h.clients))
}

func (h *Hub) handleBroadcast(data []byte) {
	var slow []*websocket.Conn
	for conn, cw := range h.clients {
		select {
		case cw.sendCh <- data:
		default:
			// Send buffer full; the client cannot keep up.
			slow = append(slow, conn)
		}
	}
	for _, conn := range slow {
		slog.Warn("Disconnecting slow websocket client")
		h.handleUnregister(conn)
	}
}

// --- Public API ---

// Register adds a connection to the hub, closing it if the limit is reached.
func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- cmdRegister{conn: conn, errCh: errCh}
	return <-errCh
}

// Unregister removes a connection and stops its writer.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- cmdUnregister{conn: conn}
}

// Publish broadcasts an analysis event to all clients. A zero RequestID is
// replaced with a fresh one.
func (h *Hub) Publish(event Event) {
	if event.RequestID == "" {
		event.RequestID = uuid.NewString()
	}
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal websocket event", "error", err, "type", event.Type)
		return
	}
	h.cmdCh <- cmdBroadcast{data: data}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{replyCh: replyCh}
	return <-replyCh
}

// Stop disconnects all clients and shuts the hub down. Safe to call more
// than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		doneCh := make(chan struct{})
		h.cmdCh <- cmdStop{doneCh: doneCh}
		<-doneCh
	})
}
