// Package ws provides the WebSocket fan-out hub for horizond events.
// Components publish JSON payloads; every attached client receives them in
// real time, and keepalive pings weed out stale connections.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pingInterval  = 20 * time.Second
	writeDeadline = 3 * time.Second
	readDeadline  = 60 * time.Second
)

// Hub fans broadcast messages out to every attached WebSocket client. All
// state is confined to the Run loop; attach, detach, and publish traffic
// goes through channels, so the hub is safe for concurrent use.
type Hub struct {
	conns    map[*websocket.Conn]struct{}
	attach   chan *websocket.Conn
	detach   chan *websocket.Conn
	outgoing chan []byte
	upgrader websocket.Upgrader
}

// NewHub allocates a hub. Call Run in a goroutine to start the event loop.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[*websocket.Conn]struct{}),
		attach:   make(chan *websocket.Conn, 16),
		detach:   make(chan *websocket.Conn, 16),
		outgoing: make(chan []byte, 256),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Run processes attachments, detachments, broadcasts, and keepalive pings
// in a single select loop. It closes every client when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.conns {
				_ = c.Close()
			}
			return

		case c := <-h.attach:
			h.conns[c] = struct{}{}

		case c := <-h.detach:
			delete(h.conns, c)
			_ = c.Close()

		case msg := <-h.outgoing:
			for c := range h.conns {
				_ = c.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					delete(h.conns, c)
					_ = c.Close()
				}
			}

		case <-ping.C:
			for c := range h.conns {
				_ = c.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
					delete(h.conns, c)
					_ = c.Close()
				}
			}
		}
	}
}

// Handler returns an http.Handler that upgrades requests to WebSocket
// connections and attaches them to the hub. Each connection gets a reader
// goroutine whose only job is noticing disconnects and refreshing the read
// deadline on pongs.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
			return
		}
		h.attach <- conn

		go func() {
			defer func() { h.detach <- conn }()
			_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
			conn.SetPongHandler(func(string) error {
				_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
				return nil
			})

			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})
}

// BroadcastJSON marshals v and queues it for delivery to every attached
// client. When the queue is full the message is dropped rather than
// blocking the publisher.
func (h *Hub) BroadcastJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case h.outgoing <- b:
	default:
	}
}
