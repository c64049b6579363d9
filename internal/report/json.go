package report

import (
	"encoding/json"
	"io"

	"github.com/pilgerone/PHP-CS-Fixer/internal/runner"
)

type jsonFile struct {
	Name          string   `json:"name"`
	Status        string   `json:"status"`
	AppliedFixers []string `json:"appliedFixers,omitempty"`
	Passes        int      `json:"passes,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	Error         string   `json:"error,omitempty"`
}

type jsonReport struct {
	RunID    string         `json:"runId"`
	DryRun   bool           `json:"dryRun"`
	Stopped  bool           `json:"stopped,omitempty"`
	Files    []jsonFile     `json:"files"`
	Counts   map[string]int `json:"counts"`
	ExitCode int            `json:"exitCode"`
	Time     jsonTime       `json:"time"`
}

type jsonTime struct {
	Total float64 `json:"total"`
}

// JSON writes a machine-readable report of every processed file.
func JSON(w io.Writer, s *runner.Summary, opts Options) error {
	rep := jsonReport{
		RunID:    s.RunID,
		DryRun:   s.DryRun,
		Stopped:  s.Stopped,
		Files:    make([]jsonFile, 0, len(s.Files)),
		Counts:   make(map[string]int),
		ExitCode: s.ExitCode(),
		Time:     jsonTime{Total: s.Elapsed.Seconds()},
	}
	for _, f := range s.Files {
		jf := jsonFile{
			Name:          opts.display(f.Path),
			Status:        string(f.Status),
			AppliedFixers: f.AppliedFixers,
			Passes:        f.Passes,
			Warnings:      f.Warnings,
		}
		if f.Err != nil {
			jf.Error = f.Err.Error()
		}
		rep.Files = append(rep.Files, jf)
		rep.Counts[string(f.Status)]++
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
