// Package panes maintains the input and output pane lists and routes
// task results to output panes by batch position.
package panes

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

// ErrPaneFloor is returned when a removal would drop a list below one pane
var ErrPaneFloor = errors.New("at least one pane must remain")

// ErrUnknownPane is returned when a pane key does not resolve
var ErrUnknownPane = errors.New("unknown pane")

// InputPane holds raw user text. Key is a stable identifier; Index is
// the derived 1-based display position.
type InputPane struct {
	Key   string `json:"key"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// OutputPane holds one task's rendered outcome
type OutputPane struct {
	Key        string             `json:"key"`
	Index      int                `json:"index"`
	TaskID     int64              `json:"task_id,omitempty"`
	Text       string             `json:"text"`
	Statistics *domain.Statistics `json:"statistics,omitempty"`
	Analysis   *domain.Analysis   `json:"analysis,omitempty"`
	IsError    bool               `json:"is_error,omitempty"`
}

// Manager owns the two pane lists. Panes are addressed by stable keys;
// display indices are recomputed from list position on every structural
// change, so indices are contiguous from 1 by construction. All access
// goes through the mutex, which makes renumbering atomic with respect
// to concurrent rendering.
type Manager struct {
	mu      sync.RWMutex
	inputs  []*InputPane
	outputs []*OutputPane
	mode    domain.DisplayMode
}

// NewManager creates a manager with one input and one output pane
func NewManager() *Manager {
	m := &Manager{mode: domain.ModeText}
	m.inputs = append(m.inputs, &InputPane{Key: uuid.NewString(), Index: 1})
	m.outputs = append(m.outputs, &OutputPane{Key: uuid.NewString(), Index: 1})
	return m
}

// AddInput appends a new input pane and returns its snapshot
func (m *Manager) AddInput() InputPane {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &InputPane{Key: uuid.NewString(), Index: len(m.inputs) + 1}
	m.inputs = append(m.inputs, p)
	return *p
}

// AddOutput appends a new output pane and returns its snapshot
func (m *Manager) AddOutput() OutputPane {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &OutputPane{Key: uuid.NewString(), Index: len(m.outputs) + 1}
	m.outputs = append(m.outputs, p)
	return *p
}

// RemoveInput removes the highest-indexed input pane. Rejected with
// ErrPaneFloor when only one remains; no state changes in that case.
func (m *Manager) RemoveInput() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.inputs) <= 1 {
		return ErrPaneFloor
	}
	m.inputs = m.inputs[:len(m.inputs)-1]
	renumberInputs(m.inputs)
	return nil
}

// RemoveOutput removes the highest-indexed output pane, subject to the
// same floor
func (m *Manager) RemoveOutput() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.outputs) <= 1 {
		return ErrPaneFloor
	}
	m.outputs = m.outputs[:len(m.outputs)-1]
	renumberOutputs(m.outputs)
	return nil
}

// SetInputText updates the text of the input pane with the given key
func (m *Manager) SetInputText(key, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.inputs {
		if p.Key == key {
			p.Text = text
			return nil
		}
	}
	return ErrUnknownPane
}

// InputTexts returns the input texts in pane order
func (m *Manager) InputTexts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.inputs))
	for i, p := range m.inputs {
		out[i] = p.Text
	}
	return out
}

// Inputs returns snapshots of the input panes in order
func (m *Manager) Inputs() []InputPane {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]InputPane, len(m.inputs))
	for i, p := range m.inputs {
		out[i] = *p
	}
	return out
}

// Outputs returns snapshots of the output panes in order
func (m *Manager) Outputs() []OutputPane {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]OutputPane, len(m.outputs))
	for i, p := range m.outputs {
		out[i] = *p
	}
	return out
}

// SetMode switches the display mode of every output pane in lockstep
func (m *Manager) SetMode(mode domain.DisplayMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
}

// Mode returns the current shared display mode
func (m *Manager) Mode() domain.DisplayMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// CanRemoveInput reports whether the input list is above the floor
func (m *Manager) CanRemoveInput() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.inputs) > 1
}

// CanRemoveOutput reports whether the output list is above the floor
func (m *Manager) CanRemoveOutput() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.outputs) > 1
}

// writeOutput writes content into the output pane at the 1-based index,
// growing the list as needed. Callers hold the lock.
func (m *Manager) writeOutput(index int, write func(*OutputPane)) {
	for len(m.outputs) < index {
		m.outputs = append(m.outputs, &OutputPane{Key: uuid.NewString(), Index: len(m.outputs) + 1})
	}
	write(m.outputs[index-1])
}

func renumberInputs(panes []*InputPane) {
	for i, p := range panes {
		p.Index = i + 1
	}
}

func renumberOutputs(panes []*OutputPane) {
	for i, p := range panes {
		p.Index = i + 1
	}
}
