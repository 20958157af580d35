// Package previewws streams stage-completion events from a running
// generation to connected browsers, for `mapgen serve`'s dev preview. It is
// a near-verbatim adapt of the teacher's internal/ws/hub.go: one hub per
// process, one room per in-flight generation (keyed by uuid.UUID instead of
// game id), broadcast-only (no per-client customization, since a generation
// has no concept of per-player visibility).
package previewws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one connected browser watching a single generation run.
type Client struct {
	ID   uuid.UUID
	RunID uuid.UUID
	Conn *websocket.Conn
	Send chan []byte
	hub  *Hub
}

// Hub manages every connected preview client, grouped into rooms by run id.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	rooms      map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMessage
}

type broadcastMessage struct {
	RunID   uuid.UUID
	Message any
}

// NewHub creates an empty Hub. Call Run in its own goroutine to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMessage, 256),
	}
}

// Run is the hub's main loop; it blocks until the passed channel closes.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case msg := <-h.broadcast:
			h.broadcastToRoom(msg)
		}
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	if h.rooms[c.RunID] == nil {
		h.rooms[c.RunID] = make(map[*Client]bool)
	}
	h.rooms[c.RunID][c] = true
	log.Printf("preview client %s watching run %s", c.ID, c.RunID)
}

func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.Send)
	if room, ok := h.rooms[c.RunID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.RunID)
		}
	}
}

func (h *Hub) broadcastToRoom(msg broadcastMessage) {
	h.mu.RLock()
	room, ok := h.rooms[msg.RunID]
	if !ok {
		h.mu.RUnlock()
		return
	}
	clients := make([]*Client, 0, len(room))
	for c := range room {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(msg.Message)
	if err != nil {
		log.Printf("preview: failed to marshal broadcast message: %v", err)
		return
	}
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
			h.unregister <- c
		}
	}
}

// Register adds a new client to the hub.
func (h *Hub) Register(c *Client) { h.register <- c }

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// StageEvent is broadcast once per completed pipeline stage (spec §2's
// eleven-stage table). `mapgen serve` sends all eleven events after
// Generate has returned successfully.
type StageEvent struct {
	Type    string  `json:"type"`
	Stage   string  `json:"stage"`
	Percent float64 `json:"percent"`
}

// BroadcastStage sends a StageEvent to every client watching runID.
func (h *Hub) BroadcastStage(runID uuid.UUID, stage string, percent float64) {
	h.broadcast <- broadcastMessage{RunID: runID, Message: StageEvent{Type: "stage", Stage: stage, Percent: percent}}
}

// GetRoomClientCount returns how many clients are watching a run.
func (h *Hub) GetRoomClientCount(runID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[runID])
}
