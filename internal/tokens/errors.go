package tokens

import "fmt"

// StructuralError signals a broken stream invariant or a misuse of the
// stream API (index out of range, matchOf on a non-structural token).
// It is a bug in the engine or in a fixer, never bad input.
type StructuralError struct {
	Op    string
	Index int
	Msg   string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("tokens: %s(%d): %s", e.Op, e.Index, e.Msg)
}

func structuralErr(op string, index int, format string, args ...any) *StructuralError {
	return &StructuralError{Op: op, Index: index, Msg: fmt.Sprintf(format, args...)}
}
