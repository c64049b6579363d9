// Package progress carries per-file processing events from the runner to
// whatever renders them (dots, the TUI, tests).
package progress

import "time"

// Status is the outcome tag of a processed file.
type Status string

const (
	// StatusUnknown is the zero value; renderers show it as "?".
	StatusUnknown Status = ""
	// StatusQueued marks a file that is known but not yet started.
	StatusQueued Status = "queued"
	// StatusWorking marks a file a worker has picked up.
	StatusWorking Status = "working"
	// StatusNoChange marks a file that needed no fixing.
	StatusNoChange Status = "no-change"
	// StatusFixed marks a file whose content changed.
	StatusFixed Status = "fixed"
	// StatusException marks a file where a fixer failed.
	StatusException Status = "exception"
	// StatusInvalidInput marks a file that did not lint before fixing.
	StatusInvalidInput Status = "invalid-syntax-input"
	// StatusInvalidOutput marks a file whose fixed output did not lint.
	StatusInvalidOutput Status = "invalid-syntax-output"
	// StatusSkipped marks a file that was not processed (unreadable or unsupported).
	StatusSkipped Status = "skipped"
)

// Final reports whether s is a terminal per-file status.
func (s Status) Final() bool {
	switch s {
	case StatusQueued, StatusWorking:
		return false
	default:
		return true
	}
}

// Event reports progress for a file.
type Event struct {
	File    string
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events.
type Sink interface {
	OnEvent(Event)
}
