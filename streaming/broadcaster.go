// Package streaming re-emits a kernel.Bus's events to connected WebSocket
// clients, grounded on the pack's gorilla/websocket usage for a
// connection-per-client push surface.
package streaming

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jtomasevic/synar/kernel"
)

// event is what each connected client receives, one JSON object per bus
// emission.
type event struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Broadcaster fans out every topic it is told to watch from a kernel's Bus
// to every currently-connected client.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewBroadcaster subscribes to topics on bus and returns a Broadcaster ready
// to accept WebSocket upgrades via ServeHTTP.
func NewBroadcaster(bus *kernel.Bus, topics ...string) *Broadcaster {
	b := &Broadcaster{clients: make(map[*websocket.Conn]struct{})}
	for _, topic := range topics {
		t := topic
		bus.On(t, func(payload any) {
			b.broadcast(t, payload)
		})
	}
	return b
}

// ServeHTTP upgrades the request to a WebSocket connection and registers it
// as a broadcast target until the client disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	b.mu.Lock()
	b.clients[conn] = struct{}{}
	b.mu.Unlock()

	// Clients only ever receive; drain and discard reads so the
	// connection's read deadline machinery stays serviced until close.
	go func() {
		defer b.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (b *Broadcaster) drop(conn *websocket.Conn) {
	b.mu.Lock()
	delete(b.clients, conn)
	b.mu.Unlock()
	conn.Close()
}

func (b *Broadcaster) broadcast(topic string, payload any) {
	msg, err := json.Marshal(event{Topic: topic, Payload: payload})
	if err != nil {
		return
	}
	b.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(b.clients))
	for c := range b.clients {
		conns = append(conns, c)
	}
	b.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			b.drop(c)
		}
	}
}
