package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Event is one message on the server-sent event / websocket streams
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// SSEHub fans events out to connected clients
type SSEHub struct {
	clients    map[chan Event]bool
	broadcast  chan Event
	register   chan chan Event
	unregister chan chan Event
	mu         sync.RWMutex
}

// NewSSEHub creates a new hub
func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients:    make(map[chan Event]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan chan Event),
		unregister: make(chan chan Event),
	}
}

// Run dispatches events until ctx is cancelled
func (h *SSEHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client <- event:
				default:
					// Slow client: drop it rather than block the hub
					close(client)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues an event for all clients
func (h *SSEHub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
	}
}

func (s *Server) sseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		client := make(chan Event, 16)
		s.sseHub.register <- client

		notify := r.Context().Done()
		go func() {
			<-notify
			s.sseHub.unregister <- client
		}()

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming not supported", http.StatusInternalServerError)
			return
		}
		// push headers out so clients see the stream open immediately
		flusher.Flush()

		for event := range client {
			data, _ := json.Marshal(event)
			fmt.Fprintf(w, "event: %s\n", event.Type)
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
