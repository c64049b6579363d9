package runner

import (
	"errors"
	"fmt"

	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// FixerError is a failure raised by one fixer while processing one file.
// It is recorded on the file and never stops the batch unless it wraps a
// *tokens.StructuralError.
type FixerError struct {
	Fixer string
	Err   error
}

func (e *FixerError) Error() string {
	return fmt.Sprintf("fixer %s: %v", e.Fixer, e.Err)
}

func (e *FixerError) Unwrap() error { return e.Err }

// PanicError carries a recovered panic value.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// IsStructural reports whether err signals a broken stream invariant.
func IsStructural(err error) bool {
	var se *tokens.StructuralError
	return errors.As(err, &se)
}
