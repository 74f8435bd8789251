package panes

import (
	"fmt"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

// Router maps terminal tasks onto output panes. Tasks are index-aligned
// with the batch that created them: the task at batch position i lands
// in output pane i+1. The router grows the output list on demand but
// never removes panes.
type Router struct {
	manager *Manager
}

// NewRouter creates a router over the given pane manager
func NewRouter(m *Manager) *Router {
	return &Router{manager: m}
}

// Route writes each task's outcome into the output pane matching its
// batch position. Failed tasks occupy their pane with an error string
// and cleared statistics/analysis views.
func (r *Router) Route(tasks []*domain.Task) {
	r.manager.mu.Lock()
	defer r.manager.mu.Unlock()

	for i, task := range tasks {
		r.renderLocked(i+1, task)
	}
}

// RenderAt writes one task's outcome into the output pane at the given
// 1-based index. Used by the coordinator's auto-display path.
func (r *Router) RenderAt(index int, task *domain.Task) {
	r.manager.mu.Lock()
	defer r.manager.mu.Unlock()
	r.renderLocked(index, task)
}

func (r *Router) renderLocked(index int, task *domain.Task) {
	if !task.Status.Terminal() {
		return
	}
	r.manager.writeOutput(index, func(p *OutputPane) {
		p.TaskID = task.ID
		switch {
		case task.Status == domain.StatusFailed:
			p.Text = fmt.Sprintf("Error: %s", task.Err)
			p.Statistics = nil
			p.Analysis = nil
			p.IsError = true
		case task.Result != nil:
			p.Text = task.Result.DisplayText()
			p.Statistics = task.Result.Stats()
			p.Analysis = task.Result.Analysis()
			p.IsError = false
		}
	})
}
