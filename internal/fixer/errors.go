package fixer

import "fmt"

// ConfigurationError is a setup-time problem: unknown rule, bad option,
// risky rule without permission. It aborts the run before any file is touched.
type ConfigurationError struct {
	Fixer string // пусто для ошибок уровня набора правил
	Msg   string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Fixer == "" {
		return "Invalid configuration: " + e.Msg
	}
	return fmt.Sprintf("[%s] Invalid configuration: %s", e.Fixer, e.Msg)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ConfigErrorf builds a ConfigurationError for fixer name.
func ConfigErrorf(name, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Fixer: name, Msg: fmt.Sprintf(format, args...)}
}
