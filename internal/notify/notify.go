// Package notify sends batch-completion notifications.
package notify

// BatchSummary describes a settled batch
type BatchSummary struct {
	BatchID   string `json:"batch_id"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Failed    int    `json:"failed"`
}

// Notifier is the interface for sending notifications
type Notifier interface {
	BatchSettled(s BatchSummary) error
}

// NoopNotifier does nothing (for tests or disabled notifications)
type NoopNotifier struct{}

func (NoopNotifier) BatchSettled(BatchSummary) error { return nil }
