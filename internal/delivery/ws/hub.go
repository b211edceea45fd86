package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Vovarama1992/voicelab/internal/ports"
)

const writeWait = 5 * time.Second

// client serializes writes to one connection; a websocket.Conn allows only one
// concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Hub fans transcription progress out to the websocket clients of each session.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]*client
}

func NewHub() *Hub {
	log.Printf("[hub] init")
	return &Hub{
		rooms: make(map[string]map[*websocket.Conn]*client),
	}
}

func (h *Hub) Register(session string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[session]; !ok {
		h.rooms[session] = make(map[*websocket.Conn]*client)
		log.Printf("[hub] create session=%s", session)
	}

	h.rooms[session][conn] = &client{conn: conn}
	log.Printf("[hub] register session=%s conns=%d", session, len(h.rooms[session]))
}

func (h *Hub) Unregister(session string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.rooms[session]
	if !ok {
		return
	}

	if _, ok := conns[conn]; ok {
		delete(conns, conn)
		conn.Close()
		log.Printf("[hub] unregister session=%s conns=%d", session, len(conns))
	}

	if len(conns) == 0 {
		delete(h.rooms, session)
	}
}

// Conns returns the number of clients listening on session.
func (h *Hub) Conns(session string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[session])
}

func (h *Hub) clients(session string) []*client {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*client, 0, len(h.rooms[session]))
	for _, c := range h.rooms[session] {
		out = append(out, c)
	}
	return out
}

// SendToRoom writes msg to every client of session. The hub lock is only held
// to snapshot the clients, so a slow socket delays its own session alone.
func (h *Hub) SendToRoom(session string, msg []byte) {
	for _, c := range h.clients(session) {
		if err := c.write(msg); err != nil {
			log.Printf("[hub][SEND-ERR] session=%s err=%v", session, err)
		}
	}
}

type chunkMessage struct {
	Chunk  int    `json:"chunk"`
	Total  int    `json:"total"`
	Status string `json:"status"`
	Text   string `json:"text,omitempty"`
}

// Run forwards chunk events to their session until ctx is done or events is closed.
func (h *Hub) Run(ctx context.Context, events <-chan ports.ChunkEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			payload, err := json.Marshal(chunkMessage{
				Chunk:  ev.Chunk,
				Total:  ev.Total,
				Status: ev.Status,
				Text:   ev.Text,
			})
			if err != nil {
				log.Printf("[hub][ERR] marshal event: %v", err)
				continue
			}
			h.SendToRoom(ev.Session, payload)
		}
	}
}

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
