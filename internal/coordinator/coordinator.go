// Package coordinator turns one user submission into a batch of tasks
// and applies the first-result auto-display policy.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/houhuawei23/text-processing-tool/internal/config"
	"github.com/houhuawei23/text-processing-tool/internal/domain"
	"github.com/houhuawei23/text-processing-tool/internal/notify"
	"github.com/houhuawei23/text-processing-tool/internal/panes"
	"github.com/houhuawei23/text-processing-tool/internal/queue"
	"github.com/houhuawei23/text-processing-tool/internal/titles"
)

// Validation errors raised at submission time, before any task exists
var (
	ErrInvalidKind = errors.New("unknown operation kind")
	ErrEmptyBatch  = errors.New("no non-empty inputs to process")
	ErrNoRules     = errors.New("regex rules cannot be empty")
	ErrNoPrompt    = errors.New("translation prompt cannot be empty")
	ErrNoService   = errors.New("translation service must be selected")
)

// BatchInfo summarizes a submitted batch
type BatchInfo struct {
	BatchID string  `json:"batch_id"`
	TaskIDs []int64 `json:"task_ids"`
}

// Coordinator creates one task per non-empty input pane, tracks the
// most recent batch, and auto-displays the first successful result of
// that batch exactly once. Auto-display state is scoped strictly to a
// batch: only a new submission resets it.
type Coordinator struct {
	queue    *queue.Queue
	router   *panes.Router
	limits   config.LimitsConfig
	notifier notify.Notifier

	mu        sync.Mutex
	batchID   string
	positions map[int64]int // task ID -> batch position (0-based)
	settled   map[int64]bool
	autoShown bool
}

// New creates a coordinator. Subscribe must be called on the queue
// before any tasks run; New does that wiring.
func New(q *queue.Queue, r *panes.Router, limits config.LimitsConfig, n notify.Notifier) *Coordinator {
	if n == nil {
		n = notify.NoopNotifier{}
	}
	c := &Coordinator{
		queue:    q,
		router:   r,
		limits:   limits,
		notifier: n,
	}
	q.Subscribe(c.onTaskUpdate)
	return c
}

// SubmitBatch validates the request, creates one task per non-empty
// input (preserving order), records the new batch as latest, and starts
// all tasks concurrently. It returns as soon as the tasks are started.
func (c *Coordinator) SubmitBatch(ctx context.Context, inputs []string, kind domain.TaskKind, params domain.Params) (BatchInfo, error) {
	filtered := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in) != "" {
			filtered = append(filtered, in)
		}
	}

	if err := c.validate(filtered, kind, params); err != nil {
		return BatchInfo{}, err
	}

	// Create every task before starting any, so batch membership is
	// recorded before the first completion can arrive.
	ids := make([]int64, len(filtered))
	for i, input := range filtered {
		task := c.queue.Add(kind, titles.ForTask(kind, input), input, params)
		ids[i] = task.ID
	}

	info := BatchInfo{BatchID: uuid.NewString(), TaskIDs: ids}

	c.mu.Lock()
	c.batchID = info.BatchID
	c.positions = make(map[int64]int, len(ids))
	for i, id := range ids {
		c.positions[id] = i
	}
	c.settled = make(map[int64]bool, len(ids))
	c.autoShown = false
	c.mu.Unlock()

	for _, id := range ids {
		c.queue.Start(ctx, id)
	}

	return info, nil
}

func (c *Coordinator) validate(filtered []string, kind domain.TaskKind, params domain.Params) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}
	if len(filtered) == 0 {
		return ErrEmptyBatch
	}
	if max := c.limits.MaxTextLength; max > 0 {
		for i, in := range filtered {
			if len([]rune(in)) > max {
				return fmt.Errorf("input %d is too long, maximum length is %d characters", i+1, max)
			}
		}
	}

	switch kind {
	case domain.KindRegexTransform:
		if len(params.Rules) == 0 {
			return ErrNoRules
		}
		if max := c.limits.MaxRegexRules; max > 0 && len(params.Rules) > max {
			return fmt.Errorf("too many regex rules, maximum is %d", max)
		}
	case domain.KindTranslation:
		if strings.TrimSpace(params.Prompt) == "" {
			return ErrNoPrompt
		}
		if strings.TrimSpace(params.Service) == "" {
			return ErrNoService
		}
	}
	return nil
}

// onTaskUpdate observes every task state change. Membership checks and
// the auto-display flag are guarded by the coordinator mutex, so two
// tasks finishing at the same instant cannot both win auto-display.
func (c *Coordinator) onTaskUpdate(task *domain.Task) {
	if !task.Status.Terminal() {
		return
	}

	c.mu.Lock()
	_, member := c.positions[task.ID]
	if !member || c.settled[task.ID] {
		c.mu.Unlock()
		return
	}
	c.settled[task.ID] = true

	autoDisplay := task.Status == domain.StatusCompleted && !c.autoShown
	if autoDisplay {
		c.autoShown = true
	}
	batchDone := len(c.settled) == len(c.positions)
	c.mu.Unlock()

	if autoDisplay {
		c.router.RenderAt(1, task)
	}
	if batchDone {
		c.RenderLatest()
		c.notifyBatchSettled()
	}
}

// RenderLatest routes the latest batch's terminal tasks onto the output
// panes, index-aligned with submission order. Pending or processing
// tasks are skipped (their panes keep their previous content).
func (c *Coordinator) RenderLatest() {
	tasks := c.latestTasks()
	if len(tasks) == 0 {
		return
	}
	c.router.Route(tasks)
}

// LatestBatch returns the latest batch's task snapshots in position order
func (c *Coordinator) LatestBatch() (string, []*domain.Task) {
	c.mu.Lock()
	id := c.batchID
	c.mu.Unlock()
	return id, c.latestTasks()
}

func (c *Coordinator) latestTasks() []*domain.Task {
	c.mu.Lock()
	ordered := make([]int64, len(c.positions))
	for id, pos := range c.positions {
		ordered[pos] = id
	}
	c.mu.Unlock()

	tasks := make([]*domain.Task, 0, len(ordered))
	for _, id := range ordered {
		if task, ok := c.queue.Get(id); ok {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

func (c *Coordinator) notifyBatchSettled() {
	c.mu.Lock()
	summary := notify.BatchSummary{BatchID: c.batchID, Total: len(c.positions)}
	ids := make([]int64, 0, len(c.positions))
	for id := range c.positions {
		ids = append(ids, id)
	}
	c.mu.Unlock()

	for _, id := range ids {
		if task, ok := c.queue.Get(id); ok {
			switch task.Status {
			case domain.StatusCompleted:
				summary.Completed++
			case domain.StatusFailed:
				summary.Failed++
			}
		}
	}

	go func() {
		if err := c.notifier.BatchSettled(summary); err != nil {
			log.Printf("batch notification failed: %v", err)
		}
	}()
}
