// Package queue tracks tasks through their lifecycle and executes each
// one concurrently against the backend matching its kind.
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/houhuawei23/text-processing-tool/internal/backend"
	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

// UpdateFunc receives a snapshot of a task after every state change
type UpdateFunc func(task *domain.Task)

// Queue is the ordered, append-only collection of tasks plus the
// scheduling logic driving each through pending → processing →
// completed/failed. Scheduling is eager: every submitted task starts
// executing immediately in its own goroutine, and one task's failure
// never affects its siblings.
type Queue struct {
	backends *backend.Registry

	mu     sync.RWMutex
	tasks  []*domain.Task
	byID   map[int64]*domain.Task
	nextID int64

	listeners []UpdateFunc

	heartbeat time.Duration
	wg        sync.WaitGroup
}

const (
	progressStart    = 10
	progressStep     = 5
	progressCeiling  = 90
	defaultHeartbeat = 500 * time.Millisecond
)

// New creates a queue dispatching to the given backend registry
func New(backends *backend.Registry) *Queue {
	return &Queue{
		backends:  backends,
		byID:      make(map[int64]*domain.Task),
		heartbeat: defaultHeartbeat,
	}
}

// SetHeartbeat overrides the progress heartbeat interval (tests)
func (q *Queue) SetHeartbeat(d time.Duration) {
	q.heartbeat = d
}

// Subscribe registers a listener for task updates. Must be called
// before any task is submitted.
func (q *Queue) Subscribe(fn UpdateFunc) {
	q.listeners = append(q.listeners, fn)
}

// Add appends a new pending task without starting it. Callers that
// need to record task IDs before execution begins (batch membership)
// add all tasks first and then Start them.
func (q *Queue) Add(kind domain.TaskKind, title, input string, params domain.Params) *domain.Task {
	q.mu.Lock()
	q.nextID++
	task := &domain.Task{
		ID:        q.nextID,
		Kind:      kind,
		Title:     title,
		Input:     input,
		Params:    params,
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}
	q.tasks = append(q.tasks, task)
	q.byID[task.ID] = task
	q.mu.Unlock()

	q.notify(task)
	return task.Clone()
}

// Start begins executing a pending task in its own goroutine
func (q *Queue) Start(ctx context.Context, id int64) {
	q.wg.Add(1)
	go q.run(ctx, id)
}

// Submit appends a new task and starts executing it immediately.
// Returns a snapshot of the created task.
func (q *Queue) Submit(ctx context.Context, kind domain.TaskKind, title, input string, params domain.Params) *domain.Task {
	task := q.Add(kind, title, input, params)
	q.Start(ctx, task.ID)
	return task
}

// run drives one task to a terminal state. Backend panics are caught at
// this boundary and converted to a failed task.
func (q *Queue) run(ctx context.Context, id int64) {
	defer q.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			q.fail(id, fmt.Sprintf("internal error: %v", r))
		}
	}()

	snapshot := q.setProcessing(id)
	if snapshot == nil {
		return
	}

	done := make(chan struct{})
	go q.tickProgress(id, done)

	result, err := q.backends.Submit(ctx, snapshot)
	close(done)

	if err != nil {
		q.fail(id, err.Error())
		return
	}
	q.complete(id, result)
}

// tickProgress advances the cosmetic progress counter while the task is
// processing. It is monotonic and stays below 100 until the backend
// responds.
func (q *Queue) tickProgress(id int64, done <-chan struct{}) {
	ticker := time.NewTicker(q.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			q.mu.Lock()
			task, ok := q.byID[id]
			if !ok || task.Status != domain.StatusProcessing || task.Progress >= progressCeiling {
				q.mu.Unlock()
				continue
			}
			task.Progress += progressStep
			if task.Progress > progressCeiling {
				task.Progress = progressCeiling
			}
			q.mu.Unlock()
			q.notify(task)
		}
	}
}

func (q *Queue) setProcessing(id int64) *domain.Task {
	q.mu.Lock()
	task, ok := q.byID[id]
	if !ok {
		q.mu.Unlock()
		return nil
	}
	task.Status = domain.StatusProcessing
	task.Progress = progressStart
	snapshot := task.Clone()
	q.mu.Unlock()

	q.notify(task)
	return snapshot
}

func (q *Queue) complete(id int64, result domain.Result) {
	q.mu.Lock()
	task, ok := q.byID[id]
	if !ok {
		q.mu.Unlock()
		return
	}
	task.Status = domain.StatusCompleted
	task.Progress = 100
	task.Result = result
	task.FinishedAt = time.Now()
	q.mu.Unlock()

	q.notify(task)
}

func (q *Queue) fail(id int64, msg string) {
	q.mu.Lock()
	task, ok := q.byID[id]
	if !ok {
		q.mu.Unlock()
		return
	}
	task.Status = domain.StatusFailed
	task.Err = msg
	task.FinishedAt = time.Now()
	q.mu.Unlock()

	q.notify(task)
}

// notify fans a snapshot out to all listeners
func (q *Queue) notify(task *domain.Task) {
	q.mu.RLock()
	snapshot := task.Clone()
	q.mu.RUnlock()

	for _, fn := range q.listeners {
		fn(snapshot)
	}
}

// Get returns a snapshot of one task
func (q *Queue) Get(id int64) (*domain.Task, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	task, ok := q.byID[id]
	if !ok {
		return nil, false
	}
	return task.Clone(), true
}

// Snapshot returns snapshots of all tasks in submission order
func (q *Queue) Snapshot() []*domain.Task {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]*domain.Task, len(q.tasks))
	for i, t := range q.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Counts aggregates tasks by status
func (q *Queue) Counts() map[domain.TaskStatus]int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	counts := make(map[domain.TaskStatus]int)
	for _, t := range q.tasks {
		counts[t.Status]++
	}
	return counts
}

// ClearCompleted removes all completed tasks from the queue, returning
// how many were removed. Failed and in-flight tasks are kept.
func (q *Queue) ClearCompleted() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.tasks[:0]
	removed := 0
	for _, t := range q.tasks {
		if t.Status == domain.StatusCompleted {
			delete(q.byID, t.ID)
			removed++
			continue
		}
		kept = append(kept, t)
	}
	q.tasks = kept
	return removed
}

// Wait blocks until all in-flight tasks reach a terminal state (tests)
func (q *Queue) Wait() {
	q.wg.Wait()
}
