package cache

import "fmt"

// InvalidFormatError reports a cache document that cannot be trusted.
// It is never fatal: the caller starts from an empty cache.
type InvalidFormatError struct {
	Msg string
	Err error
}

func (e *InvalidFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid cache document: %s: %v", e.Msg, e.Err)
	}
	return "invalid cache document: " + e.Msg
}

func (e *InvalidFormatError) Unwrap() error { return e.Err }

func formatErr(err error, format string, args ...any) *InvalidFormatError {
	return &InvalidFormatError{Msg: fmt.Sprintf(format, args...), Err: err}
}
