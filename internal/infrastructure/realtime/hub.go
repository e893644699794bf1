package realtime

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"github.com/valyala/bytebufferpool"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
	publishBuffer  = 256
)

// Message is the frame pushed to subscribers of a tournament room.
type Message struct {
	Type         string `json:"type"`
	TournamentID string `json:"tournament_id"`
	Payload      any    `json:"payload"`
	SentAt       string `json:"sent_at"`
}

type outbound struct {
	room string
	data []byte
}

// Hub fans tournament events out to websocket clients grouped in rooms by tournament id.
type Hub struct {
	upgrader   websocket.Upgrader
	rooms      map[string]map[*client]struct{}
	mu         sync.RWMutex
	register   chan *client
	unregister chan *client
	broadcast  chan outbound
	done       chan struct{}
	logger     *logging.Logger
	now        func() time.Time
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	room string
	send chan []byte
}

func NewHub(allowedOrigins []string, logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}

	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		rooms:      make(map[string]map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan outbound, publishBuffer),
		done:       make(chan struct{}),
		logger:     logger,
		now:        time.Now,
	}
}

// Run owns room membership until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for room, clients := range h.rooms {
				for c := range clients {
					close(c.send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			clients, ok := h.rooms[c.room]
			if !ok {
				clients = make(map[*client]struct{})
				h.rooms[c.room] = clients
			}
			clients[c] = struct{}{}
			size := len(clients)
			h.mu.Unlock()
			h.logger.Debug("realtime client joined", "tournament_id", c.room, "room_size", size)

		case c := <-h.unregister:
			h.removeClient(c)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*client
			for c := range h.rooms[msg.room] {
				select {
				case c.send <- msg.data:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range slow {
				h.logger.Warn("dropping slow realtime client", "tournament_id", c.room)
				h.removeClient(c)
			}
		}
	}
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.rooms, c.room)
	}
}

// Publish queues an event for the tournament room. It never blocks the caller;
// events are dropped when the hub is saturated.
func (h *Hub) Publish(ctx context.Context, tournamentID, eventType string, payload any) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return
	}

	data, err := encodeMessage(Message{
		Type:         eventType,
		TournamentID: tournamentID,
		Payload:      payload,
		SentAt:       h.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "encode realtime message failed", "event_type", eventType, "error", err)
		return
	}

	select {
	case h.broadcast <- outbound{room: tournamentID, data: data}:
	default:
		h.logger.WarnContext(ctx, "realtime broadcast queue full, event dropped", "tournament_id", tournamentID, "event_type", eventType)
	}
}

// RoomSize reports how many clients are subscribed to the tournament.
func (h *Hub) RoomSize(tournamentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[tournamentID])
}

// ServeRoom upgrades the request and subscribes the connection to tournamentID.
func (h *Hub) ServeRoom(w http.ResponseWriter, r *http.Request, tournamentID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return crerr.Wrap(err, "upgrade websocket")
	}

	c := &client{
		hub:  h,
		conn: conn,
		room: tournamentID,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return crerr.New("realtime hub is stopped")
	case <-r.Context().Done():
		_ = conn.Close()
		return r.Context().Err()
	}

	go c.writePump()
	go c.readPump()
	return nil
}

func encodeMessage(msg Message) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(msg); err != nil {
		return nil, crerr.Wrap(err, "encode message")
	}
	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

func originChecker(allowed []string) func(r *http.Request) bool {
	origins := make(map[string]struct{}, len(allowed))
	wildcard := false
	for _, origin := range allowed {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "*" {
			wildcard = true
		}
		if origin != "" {
			origins[origin] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || wildcard {
			return true
		}
		_, ok := origins[strings.TrimRight(origin, "/")]
		return ok
	}
}

// readPump only services control frames; subscribers never send data.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("realtime client read error", "tournament_id", c.room, "error", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
