// Package lint decides whether PHP source is syntactically acceptable.
//
// The runner lints the input before fixing and the output after fixing; a
// file that fails either check is never written.
package lint

import (
	"context"
	"fmt"
)

// Linter checks source text or a file on disk.
type Linter interface {
	// IsAsync reports whether LintSource returns before the check is done;
	// Result.Check then blocks.
	IsAsync() bool
	LintFile(ctx context.Context, path string) Result
	LintSource(ctx context.Context, src []byte) Result
}

// Result is a pending or finished lint check.
type Result interface {
	// Check returns nil for valid input, *LintingError for invalid input and
	// another error when the check itself could not run.
	Check() error
}

// LintingError describes invalid input. Line is 1-based, 0 when unknown.
type LintingError struct {
	Msg  string
	Line int
}

func (e *LintingError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s on line %d", e.Msg, e.Line)
	}
	return e.Msg
}

type doneResult struct{ err error }

func (r doneResult) Check() error { return r.err }

// Done wraps an already known outcome as a Result.
func Done(err error) Result { return doneResult{err: err} }
