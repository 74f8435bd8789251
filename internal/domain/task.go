package domain

import "time"

// Params carries the kind-specific parameters of a task. Only the fields
// matching the task's kind are consulted; the rest are ignored.
type Params struct {
	// text-transform
	Operations []Operation

	// regex-transform
	Rules []RegexRule

	// translation
	Prompt  string
	Service string
}

// RegexRule is one ordered (pattern, replacement) pair
type RegexRule struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// Task is one unit of work: an input text bound to an operation kind.
// Mutable fields (Status, Progress, Result, Err, FinishedAt) are owned by
// the queue's execution routine for this task; everyone else reads
// snapshots obtained from the queue.
type Task struct {
	ID       int64
	Kind     TaskKind
	Title    string
	Input    string
	Params   Params
	Status   TaskStatus
	Progress int
	Result   Result
	Err      string

	CreatedAt  time.Time
	FinishedAt time.Time
}

// Clone returns a snapshot of the task with its own copy of the param
// slices. Result payloads are immutable once the backend has returned
// them, so sharing them is safe.
func (t *Task) Clone() *Task {
	c := *t
	if len(t.Params.Operations) > 0 {
		c.Params.Operations = append([]Operation(nil), t.Params.Operations...)
	}
	if len(t.Params.Rules) > 0 {
		c.Params.Rules = append([]RegexRule(nil), t.Params.Rules...)
	}
	return &c
}
