package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsHandler streams the same events as the SSE endpoint over a
// websocket connection, for clients that prefer a bidirectional
// transport.
func (s *Server) wsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		client := make(chan Event, 16)
		s.sseHub.register <- client
		defer func() { s.sseHub.unregister <- client }()

		// Drain reads so close frames and pings are processed
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case event, ok := <-client:
				if !ok {
					return
				}
				if err := conn.WriteJSON(event); err != nil {
					return
				}
			}
		}
	}
}
