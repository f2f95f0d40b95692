package hub

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/Sonukumar0009/Farmart/internal/model"
)

const subscriberBuffer = 256

// Hub fans extraction events out to any number of subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan model.Event]struct{}
	closed      bool
	dropped     atomic.Int64
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{subscribers: make(map[chan model.Event]struct{})}
}

// Subscribe returns a buffered channel that will receive every published event.
// The channel is closed by Unsubscribe or Close.
func (h *Hub) Subscribe() <-chan model.Event {
	ch := make(chan model.Event, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(sub <-chan model.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		if ch == sub {
			delete(h.subscribers, ch)
			close(ch)
			return
		}
	}
}

// Len returns the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Dropped returns the total number of events dropped due to slow consumers.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Publish sends ev to all subscribers without blocking.
// If a subscriber's channel is full, the event is dropped for that subscriber.
func (h *Hub) Publish(ev model.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			n := h.dropped.Add(1)
			log.Printf("hub: dropped event for slow consumer (total dropped: %d)", n)
		}
	}
}

// Close closes all subscriber channels. Later subscriptions get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = make(map[chan model.Event]struct{})
	h.closed = true
}
