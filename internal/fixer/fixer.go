// Package fixer defines the contract every rewrite rule implements.
package fixer

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// Fixer is a named rewrite rule over the token stream of one file.
//
// Apply mutates the stream in place and must be idempotent in isolation:
// applying it again right away produces no further mutation. A fixer keeps
// no state across files or passes besides its configuration.
type Fixer interface {
	Name() string
	// Priority orders fixers; larger runs earlier.
	Priority() int
	IsRisky() bool
	Supports(meta source.FileMeta) bool
	// IsCandidate is a cheap necessary condition for Apply to change anything.
	IsCandidate(s *tokens.Stream) bool
	Apply(meta source.FileMeta, s *tokens.Stream) error
}

// Configurable is implemented by fixers that accept options.
// Configure(nil) resets the fixer to its defaults.
type Configurable interface {
	Configure(opts map[string]any) error
	Options() []Option
}

// Described is implemented by fixers that document themselves.
type Described interface {
	Definition() Definition
}

// Option documents one configuration option.
type Option struct {
	Name        string
	Description string
	Types       []string
	Allowed     []any
	Default     any
}

// Definition is the human-facing description of a fixer.
type Definition struct {
	Summary          string
	Description      string
	RiskyDescription string
	Samples          []CodeSample
}

// CodeSample is an example input, optionally with non-default options.
type CodeSample struct {
	Code    string
	Options map[string]any
}

// Base carries the parts most fixers share. Embed it and override what differs.
type Base struct{}

// IsRisky reports false.
func (Base) IsRisky() bool { return false }

// Supports accepts PHP-like files and files without an extension.
func (Base) Supports(meta source.FileMeta) bool {
	switch meta.Ext {
	case "php", "phpt", "phtml", "inc", "":
		return true
	default:
		return false
	}
}
