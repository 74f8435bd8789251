// Package tui renders a live dashboard of the task queue by polling
// the API server.
package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TaskRow is one task as reported by the API
type TaskRow struct {
	ID       int64  `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Error    string `json:"error,omitempty"`
}

// Status is the aggregate queue status from the API
type Status struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// Model is the TUI application model
type Model struct {
	addr   string
	client *http.Client

	tasks  []TaskRow
	status Status
	err    error

	width       int
	height      int
	selectedRow int
	scroll      int

	lastRefresh time.Time
}

// NewModel creates a dashboard polling the given API address
func NewModel(addr string) Model {
	return Model{
		addr:   addr,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Init starts the refresh loop
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

// refreshMsg carries freshly fetched queue state
type refreshMsg struct {
	tasks  []TaskRow
	status Status
	err    error
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		var msg refreshMsg
		if err := m.fetch("/api/tasks", &msg.tasks); err != nil {
			msg.err = err
			return msg
		}
		msg.err = m.fetch("/api/status", &msg.status)
		return msg
	}
}

func (m Model) fetch(path string, out interface{}) error {
	resp, err := m.client.Get(m.addr + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

type tickMsg struct{}
