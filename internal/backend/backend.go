// Package backend defines the contract between the task queue and the
// operation backends, and dispatches tasks to the backend matching
// their kind.
package backend

import (
	"context"
	"fmt"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

// Backend executes one kind of operation. Implementations return either
// a structured result or an error; they never panic across this
// boundary.
type Backend interface {
	Submit(ctx context.Context, input string, params domain.Params) (domain.Result, error)
}

// Registry dispatches tasks to the backend registered for their kind
type Registry struct {
	backends map[domain.TaskKind]Backend
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{backends: make(map[domain.TaskKind]Backend)}
}

// Register binds a backend to a task kind, replacing any previous binding
func (r *Registry) Register(kind domain.TaskKind, b Backend) {
	r.backends[kind] = b
}

// Submit routes the task to its backend
func (r *Registry) Submit(ctx context.Context, task *domain.Task) (domain.Result, error) {
	b, ok := r.backends[task.Kind]
	if !ok {
		return nil, fmt.Errorf("no backend registered for kind %q", task.Kind)
	}
	return b.Submit(ctx, task.Input, task.Params)
}
