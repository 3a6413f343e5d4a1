package ws

import (
	"encoding/json"
	"log"
	"sync"

	"nexus/internal/domain"
	"nexus/internal/presence"
)

// Hub tracks all admitted WebSocket clients and delivers events to
// per-identity private queues and broadcast topics. Delivery is
// non-blocking: a client whose buffer is full is evicted.
type Hub struct {
	registry *presence.Registry

	mu sync.RWMutex
	// clients maps username → that identity's open connections.
	clients map[string]map[*Client]struct{}
	// anon holds admitted connections with no bound identity. They
	// receive topic broadcasts only.
	anon map[*Client]struct{}
}

func NewHub(registry *presence.Registry) *Hub {
	return &Hub{
		registry: registry,
		clients:  make(map[string]map[*Client]struct{}),
		anon:     make(map[*Client]struct{}),
	}
}

// Register admits a client. The first connection of an identity marks
// it online and broadcasts a presence update.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if c.username == "" {
		h.anon[c] = struct{}{}
		h.mu.Unlock()
		log.Printf("ws hub: anonymous connection admitted")
		return
	}
	set, ok := h.clients[c.username]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.username] = set
	}
	set[c] = struct{}{}
	total := len(set)
	h.mu.Unlock()

	log.Printf("ws hub: user %s connected (%d connections)", c.username, total)
	if h.registry.MarkOnline(c.username) {
		h.broadcastPresence(c.username, true)
	}
}

// Unregister removes a client. The identity goes offline, with a
// presence broadcast, only when its last connection closes. The done
// channel is closed under the write lock; membership guards make the
// close happen at most once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if c.username == "" {
		if _, ok := h.anon[c]; !ok {
			h.mu.Unlock()
			return
		}
		delete(h.anon, c)
		close(c.done)
		h.mu.Unlock()
		return
	}
	set, ok := h.clients[c.username]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := set[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.username)
	}
	close(c.done)
	h.mu.Unlock()

	log.Printf("ws hub: user %s disconnected", c.username)
	if h.registry.MarkOffline(c.username) {
		h.broadcastPresence(c.username, false)
	}
}

// SendToUser delivers an event to every open connection of one
// identity. Unknown identities are a silent no-op.
func (h *Hub) SendToUser(username string, evt *Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[username]))
	for c := range h.clients[username] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.deliver(c, data)
	}
}

// Broadcast delivers an event to every admitted connection, anonymous
// ones included.
func (h *Hub) Broadcast(evt *Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.anon))
	for _, set := range h.clients {
		for c := range set {
			targets = append(targets, c)
		}
	}
	for c := range h.anon {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.deliver(c, data)
	}
}

func (h *Hub) deliver(c *Client, data []byte) {
	select {
	case c.send <- data:
	case <-c.done:
		// Client already tearing down.
	default:
		// Buffer full - the client cannot keep up, evict it. Fan-out
		// never blocks.
		log.Printf("ws hub: evicting slow client %q", c.username)
		h.Unregister(c)
	}
}

func (h *Hub) broadcastPresence(username string, online bool) {
	evt, err := NewEvent(EventTypePresence, TopicPresence, domain.PresenceUpdate{
		Username: username,
		Online:   online,
	})
	if err != nil {
		return
	}
	h.Broadcast(evt)
}
