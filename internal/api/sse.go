package api

import (
	"fmt"
	"net/http"
	"sync"

	"huonganh/internal/events"
)

// streamHub fans booking events out to connected dashboard clients. It
// subscribes to the bus once; connections come and go on their own.
type streamHub struct {
	mu      sync.Mutex
	nextID  int64
	clients map[int64]chan *events.Event
}

func newStreamHub(bus *events.EventBus) *streamHub {
	h := &streamHub{clients: make(map[int64]chan *events.Event)}
	if bus != nil {
		bus.SubscribeAll(h.broadcast)
	}
	return h
}

func (h *streamHub) broadcast(event *events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		// Slow clients drop events rather than stall the publisher.
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (h *streamHub) register() (int64, chan *events.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	ch := make(chan *events.Event, 16)
	h.clients[id] = ch
	return id, ch
}

func (h *streamHub) unregister(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// handleNotificationStream pushes booking events to the dashboard over
// Server-Sent Events so the bell badge updates without polling.
func (s *HTTPServer) handleNotificationStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id, ch := s.streams.register()
	defer s.streams.unregister(id)

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-ch:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Payload)
			flusher.Flush()
		}
	}
}
