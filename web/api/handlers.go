package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
	"github.com/houhuawei23/text-processing-tool/internal/panes"
)

// TaskResponse is the API representation of a task
type TaskResponse struct {
	ID         int64         `json:"id"`
	Kind       string        `json:"kind"`
	Title      string        `json:"title"`
	Status     string        `json:"status"`
	Progress   int           `json:"progress"`
	Text       string        `json:"text,omitempty"`
	Result     domain.Result `json:"result,omitempty"`
	Error      string        `json:"error,omitempty"`
	CreatedAt  string        `json:"created_at"`
	FinishedAt string        `json:"finished_at,omitempty"`
}

// StatusResponse aggregates queue counts
type StatusResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// BatchRequest is the submit-batch payload. Inputs may be given
// directly or taken from the current input panes when omitted.
type BatchRequest struct {
	Inputs     []string           `json:"inputs"`
	Kind       string             `json:"kind"`
	Operations []string           `json:"operations,omitempty"`
	Rules      []domain.RegexRule `json:"rules,omitempty"`
	Prompt     string             `json:"prompt,omitempty"`
	Service    string             `json:"service,omitempty"`
}

// PanesResponse is the pane listing
type PanesResponse struct {
	Inputs           []panes.InputPane  `json:"inputs"`
	Outputs          []panes.OutputPane `json:"outputs"`
	Mode             string             `json:"mode"`
	InputRemoveable  bool               `json:"input_removeable"`
	OutputRemoveable bool               `json:"output_removeable"`
}

func taskToResponse(t *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:        t.ID,
		Kind:      string(t.Kind),
		Title:     t.Title,
		Status:    string(t.Status),
		Progress:  t.Progress,
		Error:     t.Err,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	if t.Result != nil {
		resp.Result = t.Result
		resp.Text = t.Result.DisplayText()
	}
	if !t.FinishedAt.IsZero() {
		resp.FinishedAt = t.FinishedAt.Format(time.RFC3339)
	}
	return resp
}

func (s *Server) statusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		counts := s.queue.Counts()
		resp := StatusResponse{
			Pending:    counts[domain.StatusPending],
			Processing: counts[domain.StatusProcessing],
			Completed:  counts[domain.StatusCompleted],
			Failed:     counts[domain.StatusFailed],
		}
		resp.Total = resp.Pending + resp.Processing + resp.Completed + resp.Failed

		writeJSON(w, resp)
	}
}

func (s *Server) submitBatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req BatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		inputs := req.Inputs
		if inputs == nil {
			inputs = s.manager.InputTexts()
		}

		params := domain.Params{
			Rules:   req.Rules,
			Prompt:  req.Prompt,
			Service: req.Service,
		}
		for _, op := range req.Operations {
			params.Operations = append(params.Operations, domain.Operation(op))
		}

		info, err := s.coordinator.SubmitBatch(r.Context(), inputs, domain.TaskKind(req.Kind), params)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeJSON(w, info)
	}
}

func (s *Server) latestBatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		batchID, tasks := s.coordinator.LatestBatch()
		responses := make([]TaskResponse, len(tasks))
		for i, t := range tasks {
			responses[i] = taskToResponse(t)
		}

		writeJSON(w, map[string]interface{}{
			"batch_id": batchID,
			"tasks":    responses,
		})
	}
}

func (s *Server) renderBatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		s.coordinator.RenderLatest()
		s.Broadcast(Event{Type: "panes_update", Data: s.panesResponse()})

		writeJSON(w, map[string]string{"status": "rendered"})
	}
}

func (s *Server) listTasksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		tasks := s.queue.Snapshot()
		responses := make([]TaskResponse, len(tasks))
		for i, t := range tasks {
			responses[i] = taskToResponse(t)
		}

		writeJSON(w, responses)
	}
}

func (s *Server) getTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
		id, err := strconv.ParseInt(path, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid task ID")
			return
		}

		task, ok := s.queue.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}

		writeJSON(w, taskToResponse(task))
	}
}

func (s *Server) clearCompletedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		removed := s.queue.ClearCompleted()
		writeJSON(w, map[string]int{"removed": removed})
	}
}

func (s *Server) panesResponse() PanesResponse {
	return PanesResponse{
		Inputs:           s.manager.Inputs(),
		Outputs:          s.manager.Outputs(),
		Mode:             string(s.manager.Mode()),
		InputRemoveable:  s.manager.CanRemoveInput(),
		OutputRemoveable: s.manager.CanRemoveOutput(),
	}
}

func (s *Server) listPanesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, s.panesResponse())
	}
}

func (s *Server) inputPaneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			pane := s.manager.AddInput()
			s.Broadcast(Event{Type: "panes_update", Data: s.panesResponse()})
			writeJSON(w, pane)
		case http.MethodDelete:
			if err := s.manager.RemoveInput(); err != nil {
				writeError(w, http.StatusConflict, err.Error())
				return
			}
			s.Broadcast(Event{Type: "panes_update", Data: s.panesResponse()})
			writeJSON(w, map[string]string{"status": "removed"})
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

func (s *Server) outputPaneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			pane := s.manager.AddOutput()
			s.Broadcast(Event{Type: "panes_update", Data: s.panesResponse()})
			writeJSON(w, pane)
		case http.MethodDelete:
			if err := s.manager.RemoveOutput(); err != nil {
				writeError(w, http.StatusConflict, err.Error())
				return
			}
			s.Broadcast(Event{Type: "panes_update", Data: s.panesResponse()})
			writeJSON(w, map[string]string{"status": "removed"})
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

func (s *Server) setInputTextHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req struct {
			Key  string `json:"key"`
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := s.manager.SetInputText(req.Key, req.Text); err != nil {
			if errors.Is(err, panes.ErrUnknownPane) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, map[string]string{"status": "updated"})
	}
}

func (s *Server) displayModeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req struct {
			Mode string `json:"mode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		mode := domain.DisplayMode(req.Mode)
		if !mode.Valid() {
			writeError(w, http.StatusBadRequest, "unknown display mode")
			return
		}

		s.manager.SetMode(mode)
		s.Broadcast(Event{Type: "panes_update", Data: s.panesResponse()})

		writeJSON(w, map[string]string{"mode": req.Mode})
	}
}

func (s *Server) servicesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		writeJSON(w, map[string]interface{}{
			"services": s.translator.Services(),
			"default":  s.translator.DefaultService(),
		})
	}
}

func (s *Server) promptsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		presets, err := s.prompts.Presets()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, presets)
	}
}

func (s *Server) historyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		limit := 100
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		entries, err := s.history.List(limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, entries)
	}
}
