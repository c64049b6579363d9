// Package report renders a run summary for humans (text) and tools (JSON).
package report

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/runner"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
)

// Options tune the rendering.
type Options struct {
	// BaseDir makes reported paths relative; empty keeps them as given.
	BaseDir string
	// Color enables ANSI colors in the text report.
	Color bool
	// Verbose lists applied fixers and warnings for every fixed file.
	Verbose bool
}

func (o Options) display(path string) string {
	if o.BaseDir == "" {
		return path
	}
	rel, err := source.RelativePath(path, o.BaseDir)
	if err != nil {
		return path
	}
	return rel
}

// errorSection groups failed files under a heading.
type errorSection struct {
	status runner.Status
	title  string
}

var errorSections = []errorSection{
	{runner.StatusLintFailed, "Files that were not fixed due to errors reported during linting before fixing:"},
	{runner.StatusException, "Files that were not fixed due to errors reported during fixing:"},
	{runner.StatusInvalidOutput, "Files that were not fixed due to errors reported during linting after fixing:"},
}
