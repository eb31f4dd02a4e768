package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// RunEvent is one lifecycle message on the progress feed.
type RunEvent struct {
	Type      string    `json:"type"` // run_started | run_completed
	RunID     string    `json:"run_id,omitempty"`
	DatasetID string    `json:"dataset_id"`
	ModelID   string    `json:"model_id"`
	Explainer string    `json:"explainer"`
	Metric    string    `json:"metric"`
	Score     float64   `json:"score,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// RunHub fans run lifecycle events out to websocket subscribers.
type RunHub struct {
	clients    map[*wsClient]bool
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
	upgrader   websocket.Upgrader
	logger     *zap.Logger
	mu         sync.RWMutex
}

func NewRunHub(logger *zap.Logger) *RunHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RunHub{
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// Run processes register/unregister/broadcast until the channel world
// shuts down with the process.
func (h *RunHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws client connected", zap.Int("total", count))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws client disconnected", zap.Int("total", count))

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// slow consumer, drop the message
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues an event for every subscriber. Never blocks the
// caller; with no hub goroutine running the buffered channel absorbs a
// backlog and further events are dropped.
func (h *RunHub) Broadcast(event RunEvent) {
	event.Timestamp = time.Now().UTC()
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- payload:
	default:
	}
}

// ServeWS upgrades the connection and subscribes it to the feed.
func (h *RunHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 64)}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *RunHub) writePump(client *wsClient) {
	defer client.conn.Close()
	for message := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// readPump discards inbound frames; its job is to notice the disconnect.
func (h *RunHub) readPump(client *wsClient) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
