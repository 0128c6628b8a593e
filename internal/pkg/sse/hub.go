package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to a connected recipient.
// Routing is by the recipient id handed to Publish; the event itself
// only carries the payload.
type Event struct {
	Event string
	Data  interface{}
}

// Hub manages SSE connections and per-recipient event delivery
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int64]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]map[chan Event]struct{}),
	}
}

// Subscribe registers a connection for a recipient and returns the event
// channel and a cleanup function. A recipient may hold multiple
// connections; each gets its own channel.
func (h *Hub) Subscribe(recipientID int64) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[recipientID] == nil {
		h.subscribers[recipientID] = make(map[chan Event]struct{})
	}
	h.subscribers[recipientID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[recipientID], ch)
		close(ch)
		if len(h.subscribers[recipientID]) == 0 {
			delete(h.subscribers, recipientID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every connection of a recipient. Delivery is
// best effort: a connection whose buffer is full is skipped rather than
// blocking the publisher.
func (h *Hub) Publish(recipientID int64, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[recipientID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of open connections for a recipient
func (h *Hub) SubscriberCount(recipientID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[recipientID]; ok {
		return len(subs)
	}
	return 0
}
