package events

import (
	"sync"
)

// Event is one progress notification from a bulk attendance run. The final
// BatchResult returned by the coordinator stays the source of truth; these
// events only let an operator UI show per-row progress while the run lasts.
type Event struct {
	BatchID    string `json:"batch_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Outcome    string `json:"outcome"` // "succeeded" or "failed"
	Reason     string `json:"reason,omitempty"`
}

// Hub fans batch progress events out to subscribed operators.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a listener and returns its channel plus a cleanup
// function. The channel is buffered; slow listeners drop events rather than
// stalling the batch.
func (h *Hub) Subscribe() (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 64)
	h.subscribers[ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}

	return ch, cleanup
}

// Publish delivers an event to every subscriber, skipping any whose buffer
// is full.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount reports how many listeners are attached.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
