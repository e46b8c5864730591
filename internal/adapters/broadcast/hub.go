// Package broadcast fans change events out to in-process observers.
package broadcast

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/example/dispatch/internal/ports/secondary"
)

// DefaultBuffer is the per-subscriber queue depth.
const DefaultBuffer = 64

// Hub implements secondary.ChangePublisher. Each subscriber owns a buffered
// channel; a full buffer drops the event for that subscriber only.
type Hub struct {
	mu      sync.RWMutex
	subs    map[int]chan secondary.ChangeEvent
	next    int
	dropped atomic.Int64
	logger  *slog.Logger
}

// NewHub creates a hub with no subscribers.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[int]chan secondary.ChangeEvent),
		logger: logger,
	}
}

// Subscribe registers an observer. The returned cancel func closes the
// channel and must be called once the observer stops reading.
func (h *Hub) Subscribe(buffer int) (<-chan secondary.ChangeEvent, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan secondary.ChangeEvent, buffer)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers change to every subscriber without blocking.
func (h *Hub) Publish(ctx context.Context, change secondary.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- change:
		default:
			h.dropped.Add(1)
			h.logger.Warn("dropped change for slow subscriber",
				"subscriber", id, "kind", change.Kind, "entity", change.EntityID)
		}
	}
}

// Subscribers returns the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were dropped so far.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Ensure Hub implements the interface
var _ secondary.ChangePublisher = (*Hub)(nil)
