// Package api exposes the task queue, batch coordinator and pane state
// over a JSON HTTP API with SSE and websocket event feeds.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/houhuawei23/text-processing-tool/internal/coordinator"
	"github.com/houhuawei23/text-processing-tool/internal/domain"
	"github.com/houhuawei23/text-processing-tool/internal/panes"
	"github.com/houhuawei23/text-processing-tool/internal/prompts"
	"github.com/houhuawei23/text-processing-tool/internal/queue"
	"github.com/houhuawei23/text-processing-tool/internal/taskstore"
	"github.com/houhuawei23/text-processing-tool/internal/translate"
)

// Server is the HTTP API server
type Server struct {
	queue       *queue.Queue
	coordinator *coordinator.Coordinator
	manager     *panes.Manager
	translator  *translate.Service
	prompts     *prompts.Loader
	history     *taskstore.Store

	addr   string
	mux    *http.ServeMux
	sseHub *SSEHub
}

// NewServer creates the API server and wires it into the queue's update
// stream so every task state change is broadcast to connected clients.
func NewServer(addr string, q *queue.Queue, c *coordinator.Coordinator, m *panes.Manager, t *translate.Service, p *prompts.Loader, h *taskstore.Store) *Server {
	s := &Server{
		queue:       q,
		coordinator: c,
		manager:     m,
		translator:  t,
		prompts:     p,
		history:     h,
		addr:        addr,
		mux:         http.NewServeMux(),
		sseHub:      NewSSEHub(),
	}
	s.setupRoutes()

	q.Subscribe(func(task *domain.Task) {
		s.Broadcast(Event{Type: "task_update", Data: taskToResponse(task)})
	})

	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/status", s.statusHandler())
	s.mux.HandleFunc("/api/batches", s.submitBatchHandler())
	s.mux.HandleFunc("/api/batches/latest", s.latestBatchHandler())
	s.mux.HandleFunc("/api/batches/latest/render", s.renderBatchHandler())
	s.mux.HandleFunc("/api/tasks", s.listTasksHandler())
	s.mux.HandleFunc("/api/tasks/clear-completed", s.clearCompletedHandler())
	s.mux.HandleFunc("/api/tasks/", s.getTaskHandler())
	s.mux.HandleFunc("/api/panes", s.listPanesHandler())
	s.mux.HandleFunc("/api/panes/input", s.inputPaneHandler())
	s.mux.HandleFunc("/api/panes/input/text", s.setInputTextHandler())
	s.mux.HandleFunc("/api/panes/output", s.outputPaneHandler())
	s.mux.HandleFunc("/api/display-mode", s.displayModeHandler())
	s.mux.HandleFunc("/api/services", s.servicesHandler())
	s.mux.HandleFunc("/api/prompts", s.promptsHandler())
	s.mux.HandleFunc("/api/history", s.historyHandler())
	s.mux.HandleFunc("/api/events", s.sseHandler())
	s.mux.HandleFunc("/ws", s.wsHandler())
}

// Handler returns the route handler (tests)
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start runs the SSE hub and serves HTTP until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	go s.sseHub.Run(ctx)

	srv := &http.Server{Addr: s.addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Broadcast sends an event to all SSE and websocket clients
func (s *Server) Broadcast(event Event) {
	s.sseHub.Broadcast(event)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
