package domain

// TaskKind selects which operation backend handles a task
type TaskKind string

const (
	KindTextTransform  TaskKind = "text-transform"
	KindRegexTransform TaskKind = "regex-transform"
	KindTranslation    TaskKind = "translation"
)

// Valid reports whether the kind is one of the known task kinds
func (k TaskKind) Valid() bool {
	switch k {
	case KindTextTransform, KindRegexTransform, KindTranslation:
		return true
	}
	return false
}

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusProcessing TaskStatus = "processing"
	StatusCompleted  TaskStatus = "completed"
	StatusFailed     TaskStatus = "failed"
)

// Terminal reports whether the status is final
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Operation is one step of a text-transform task
type Operation string

const (
	OpFormat     Operation = "format"
	OpStatistics Operation = "statistics"
	OpAnalysis   Operation = "analysis"
)

// DefaultOperations is applied when a text-transform request names none
var DefaultOperations = []Operation{OpFormat, OpStatistics, OpAnalysis}

// DisplayMode selects which view all output panes show
type DisplayMode string

const (
	ModeText       DisplayMode = "text"
	ModeStatistics DisplayMode = "statistics"
	ModeAnalysis   DisplayMode = "analysis"
)

// Valid reports whether the mode is one of the known display modes
func (m DisplayMode) Valid() bool {
	switch m {
	case ModeText, ModeStatistics, ModeAnalysis:
		return true
	}
	return false
}
