package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pilgerone/PHP-CS-Fixer/internal/runner"
)

type palette struct {
	path    *color.Color
	fixers  *color.Color
	errHead *color.Color
	warn    *color.Color
	ok      *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Bold),
		fixers:  color.New(color.FgCyan),
		errHead: color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow),
		ok:      color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.path, p.fixers, p.errHead, p.warn, p.ok} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Text writes the human report: fixed files, failures by phase, warnings and
// a closing line with counts and time.
func Text(w io.Writer, s *runner.Summary, opts Options) error {
	p := newPalette(opts.Color)
	var b strings.Builder

	fixed := s.ByStatus(runner.StatusFixed)
	for i, f := range fixed {
		fmt.Fprintf(&b, "%4d) %s", i+1, p.path.Sprint(opts.display(f.Path)))
		if opts.Verbose && len(f.AppliedFixers) > 0 {
			fmt.Fprintf(&b, " (%s)", p.fixers.Sprint(strings.Join(f.AppliedFixers, ", ")))
		}
		b.WriteByte('\n')
	}

	for _, sec := range errorSections {
		failed := s.ByStatus(sec.status)
		if len(failed) == 0 {
			continue
		}
		b.WriteByte('\n')
		b.WriteString(p.errHead.Sprint(sec.title))
		b.WriteByte('\n')
		for i, f := range failed {
			fmt.Fprintf(&b, "%4d) %s\n", i+1, opts.display(f.Path))
			if f.Err != nil {
				fmt.Fprintf(&b, "      %s\n", f.Err)
			}
		}
	}

	var warned []runner.FileResult
	for _, f := range s.Files {
		if len(f.Warnings) > 0 {
			warned = append(warned, f)
		}
	}
	if len(warned) > 0 {
		b.WriteByte('\n')
		for _, f := range warned {
			for _, msg := range f.Warnings {
				fmt.Fprintf(&b, "%s %s: %s\n", p.warn.Sprint("warning:"), opts.display(f.Path), msg)
			}
		}
	}

	b.WriteByte('\n')
	b.WriteString(closingLine(s, len(fixed), p))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func closingLine(s *runner.Summary, fixed int, p palette) string {
	secs := s.Elapsed.Seconds()
	total := len(s.Files)
	switch {
	case fixed == 0:
		return p.ok.Sprintf("Checked all %d files in %.3f seconds", total, secs)
	case s.DryRun:
		return fmt.Sprintf("Found %d of %d files that can be fixed in %.3f seconds", fixed, total, secs)
	default:
		return fmt.Sprintf("Fixed %d of %d files in %.3f seconds", fixed, total, secs)
	}
}
