// Package gateway is the websocket transport: it accepts connections,
// tags them with rooms, and delivers the events the core fans out.
package gateway

import (
	"encoding/json"
	"log/slog"
	"sync"

	"chatrooms/contract"
)

type set map[string]struct{}

// Hub tracks live connections and their room tags. It implements
// contract.Broadcaster; the core never sees a raw connection.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client // clientID -> connection
	rooms   map[string]set     // roomID -> member clientIDs
	log     *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]set),
		log:     log,
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

// remove drops the connection and every room tag it held.
func (h *Hub) remove(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	delete(h.clients, clientID)
	c.shutdown()

	for roomID, members := range h.rooms {
		delete(members, clientID)
		if len(members) == 0 {
			// No empty sets left behind; rooms come and go over time.
			delete(h.rooms, roomID)
		}
	}
}

// JoinChannel tags a connection with a room so Broadcast can reach it.
func (h *Hub) JoinChannel(clientID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[clientID]; !ok {
		return
	}
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(set)
	}
	h.rooms[roomID][clientID] = struct{}{}
}

func (h *Hub) LeaveChannel(clientID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[roomID]; ok {
		delete(members, clientID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// Emit delivers one event to one connection. Best-effort: a slow consumer
// whose buffer is full loses the event rather than stalling the caller.
func (h *Hub) Emit(clientID, event string, payload any) {
	data, err := encodeEnvelope(event, payload)
	if err != nil {
		h.log.Error("Event encoding failed", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	c, ok := h.clients[clientID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	c.trySend(data, h.log)
}

// Broadcast delivers an event to every connection tagged with roomID, or to
// everyone when roomID is contract.BroadcastAllRooms.
func (h *Hub) Broadcast(roomID, event string, payload any) {
	data, err := encodeEnvelope(event, payload)
	if err != nil {
		h.log.Error("Event encoding failed", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	var targets []*Client
	if roomID == contract.BroadcastAllRooms {
		for _, c := range h.clients {
			targets = append(targets, c)
		}
	} else {
		for clientID := range h.rooms[roomID] {
			if c, ok := h.clients[clientID]; ok {
				targets = append(targets, c)
			}
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.trySend(data, h.log)
	}
}

func encodeEnvelope(event string, payload any) ([]byte, error) {
	return json.Marshal(struct {
		Event string `json:"event"`
		Data  any    `json:"data,omitempty"`
	}{Event: event, Data: payload})
}
