package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/lint"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// FixSource runs the fixers over src to convergence without touching the
// disk or the cache. The error is non-nil only for a structural failure;
// every other problem is reported through the result status.
func (r *Runner) FixSource(ctx context.Context, meta source.FileMeta, src []byte) (FileResult, error) {
	start := time.Now()
	res, err := r.fix(ctx, r.logger(), meta, src)
	res.Elapsed = time.Since(start)
	return res, err
}

func (r *Runner) fix(ctx context.Context, log *slog.Logger, meta source.FileMeta, src []byte) (FileResult, error) {
	res := FileResult{Path: meta.Path, Source: src, Output: src}

	fixers := r.applicable(meta)
	if len(fixers) == 0 {
		res.Status = StatusSkipped
		return res, nil
	}

	linter := r.linter()
	input := linter.LintSource(ctx, src)
	if !linter.IsAsync() {
		if err := input.Check(); err != nil {
			return inputFailed(res, err), nil
		}
	}

	stream := tokens.New(string(src))
	applyErr := r.converge(log, meta, stream, fixers, &res)

	// асинхронный линт входа дожидаемся только здесь
	if linter.IsAsync() {
		if err := input.Check(); err != nil {
			return inputFailed(res, err), nil
		}
	}
	if applyErr != nil {
		res.Status = StatusException
		res.Err = applyErr
		if IsStructural(applyErr) {
			return res, applyErr
		}
		return res, nil
	}

	out := []byte(stream.Source())
	if bytes.Equal(out, src) {
		res.Status = StatusUnchanged
		return res, nil
	}
	if err := linter.LintSource(ctx, out).Check(); err != nil {
		log.Debug("fixed output rejected by linter", "file", meta.Path, "err", err)
		res.Status = StatusInvalidOutput
		res.Err = err
		return res, nil
	}
	res.Status = StatusFixed
	res.Output = out
	return res, nil
}

func inputFailed(res FileResult, err error) FileResult {
	var le *lint.LintingError
	if errors.As(err, &le) {
		res.Status = StatusLintFailed
	} else {
		// линтер не смог отработать: это не вердикт о файле
		res.Status = StatusException
		err = fmt.Errorf("lint: %w", err)
	}
	res.Err = err
	res.AppliedFixers = nil
	res.Passes = 0
	res.Warnings = nil
	return res
}

// converge repeats full passes while the stream keeps changing, up to the
// pass cap. On hitting the cap the last content is kept and a warning is
// recorded.
func (r *Runner) converge(log *slog.Logger, meta source.FileMeta, s *tokens.Stream, fixers []fixer.Fixer, res *FileResult) error {
	maxPasses := r.maxPasses()
	seen := make(map[string]struct{}, len(fixers))
	for pass := 1; ; pass++ {
		res.Passes = pass
		for _, f := range fixers {
			if !f.IsCandidate(s) {
				continue
			}
			before := s.Revision()
			if err := applyFixer(f, meta, s); err != nil {
				return &FixerError{Fixer: f.Name(), Err: err}
			}
			if s.Revision() == before {
				continue
			}
			if _, ok := seen[f.Name()]; !ok {
				seen[f.Name()] = struct{}{}
				res.AppliedFixers = append(res.AppliedFixers, f.Name())
			}
		}
		if !s.DrainChanged() {
			return nil
		}
		if pass >= maxPasses {
			msg := fmt.Sprintf("possible fixer cycle: content still changing after %d passes", pass)
			res.Warnings = append(res.Warnings, msg)
			log.Warn("possible fixer cycle", "file", meta.Path, "passes", pass, "fixers", res.AppliedFixers)
			return nil
		}
	}
}

func applyFixer(f fixer.Fixer, meta source.FileMeta, s *tokens.Stream) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if se, ok := p.(*tokens.StructuralError); ok {
				err = se
				return
			}
			err = &PanicError{Value: p}
		}
	}()
	return f.Apply(meta, s)
}

func (r *Runner) applicable(meta source.FileMeta) []fixer.Fixer {
	out := make([]fixer.Fixer, 0, len(r.Fixers))
	for _, f := range r.Fixers {
		if f.Supports(meta) {
			out = append(out, f)
		}
	}
	return out
}
