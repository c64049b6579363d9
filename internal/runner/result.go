package runner

import (
	"time"

	"github.com/pilgerone/PHP-CS-Fixer/internal/progress"
)

// Status is the terminal tag of one processed file.
type Status string

const (
	StatusUnchanged     Status = "unchanged"
	StatusFixed         Status = "fixed"
	StatusException     Status = "exception"
	StatusLintFailed    Status = "lint-failed"
	StatusInvalidOutput Status = "invalid-output"
	StatusSkipped       Status = "skipped"
)

// Progress maps s to the tag reported to progress sinks.
func (s Status) Progress() progress.Status {
	switch s {
	case StatusUnchanged:
		return progress.StatusNoChange
	case StatusFixed:
		return progress.StatusFixed
	case StatusException:
		return progress.StatusException
	case StatusLintFailed:
		return progress.StatusInvalidInput
	case StatusInvalidOutput:
		return progress.StatusInvalidOutput
	case StatusSkipped:
		return progress.StatusSkipped
	default:
		return progress.StatusUnknown
	}
}

// FileResult is the outcome of one file.
//
// Output is what the file holds after the run (or would hold, in dry-run
// mode). For every status but fixed it equals Source.
type FileResult struct {
	Path          string
	Status        Status
	AppliedFixers []string
	Passes        int
	Warnings      []string
	Err           error
	Source        []byte
	Output        []byte
	Elapsed       time.Duration
}

// Changed reports whether Output differs from Source.
func (r FileResult) Changed() bool { return r.Status == StatusFixed }

// Exit status bits.
const (
	ExitLintFailed  = 4
	ExitFixed       = 8
	ExitConfig      = 16
	ExitFixerConfig = 32
	ExitFailure     = 64
)

// Summary aggregates a run.
type Summary struct {
	RunID   string
	Files   []FileResult // в порядке входных путей
	DryRun  bool
	Stopped bool // остановлен по первому нарушению
	Elapsed time.Duration
}

// Count returns how many files ended with status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, f := range s.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// ByStatus returns the files that ended with status, in input order.
func (s *Summary) ByStatus(status Status) []FileResult {
	var out []FileResult
	for _, f := range s.Files {
		if f.Status == status {
			out = append(out, f)
		}
	}
	return out
}

// ExitCode folds the file statuses into the process exit status.
func (s *Summary) ExitCode() int {
	code := 0
	for _, f := range s.Files {
		switch f.Status {
		case StatusLintFailed:
			code |= ExitLintFailed
		case StatusFixed:
			code |= ExitFixed
		case StatusException, StatusInvalidOutput:
			code |= ExitFailure
		}
	}
	return code
}
