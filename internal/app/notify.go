package app

import (
	"sync"

	"millcreek_parks/internal/domain"
)

// Hub fans persisted reviews out to live-update consumers (the SSE stream).
// Publishing never blocks: a subscriber that falls behind loses events rather
// than stalling the ingestion path. Aggregation stays pull-based; the hub
// only signals that a re-read is worthwhile.
type Hub struct {
	mu   sync.Mutex
	subs map[chan domain.Review]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan domain.Review]struct{})}
}

// Subscribe registers a consumer. The returned cancel func must be called to
// release the channel.
func (h *Hub) Subscribe(buffer int) (<-chan domain.Review, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.Review, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Publish(r domain.Review) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- r:
		default: // slow consumer, drop
		}
	}
}
