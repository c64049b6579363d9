// Package runner drives the fixers over a batch of files: lint the input,
// apply passes until nothing changes, lint the output, write, and record
// the outcome in the cache.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pilgerone/PHP-CS-Fixer/internal/cache"
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/lint"
	"github.com/pilgerone/PHP-CS-Fixer/internal/progress"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
)

// DefaultMaxPasses bounds the pass loop of one file.
const DefaultMaxPasses = 10

// Runner holds the per-run collaborators. Fixers must already be resolved
// and sorted. Zero values pick defaults: token linter, no cache, no progress,
// slog.Default, DefaultMaxPasses, GOMAXPROCS workers.
type Runner struct {
	Fixers          []fixer.Fixer
	Linter          lint.Linter
	Cache           cache.Manager
	Sink            progress.Sink
	Logger          *slog.Logger
	MaxPasses       int
	Jobs            int
	DryRun          bool
	StopOnViolation bool
}

// outcome is what a worker reports to the coordinator.
type outcome struct {
	index   int
	started bool
	res     FileResult
}

// Run processes paths and returns the summary. Files are processed in
// parallel; cache mutations and progress events happen on one coordinator
// goroutine, and the cache is saved once at the end, also when the run is
// cancelled or aborted by a structural error.
func (r *Runner) Run(ctx context.Context, paths []string) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := r.logger().With("run", runID)
	summary := &Summary{RunID: runID, DryRun: r.DryRun}

	manager := r.cache()
	sink := r.Sink
	if sink == nil {
		sink = progress.Discard
	}

	log.Debug("run started", "files", len(paths), "jobs", r.jobs(len(paths)), "dry_run", r.DryRun)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	results := make([]*FileResult, len(paths))
	outcomes := make(chan outcome)
	coordinated := make(chan struct{})
	go func() {
		defer close(coordinated)
		for o := range outcomes {
			if o.started {
				sink.OnEvent(progress.Event{File: paths[o.index], Status: progress.StatusWorking})
				continue
			}
			res := o.res
			results[o.index] = &res
			r.commit(manager, res)
			sink.OnEvent(progress.Event{
				File:    paths[o.index],
				Status:  res.Status.Progress(),
				Err:     res.Err,
				Elapsed: res.Elapsed,
			})
			if r.StopOnViolation && res.Status == StatusFixed && !summary.Stopped {
				summary.Stopped = true
				log.Info("stopping on first violation", "file", res.Path)
			}
		}
	}()

	var runErr error
	if len(paths) > 0 {
		g, gctx := errgroup.WithContext(runCtx)
		g.SetLimit(r.jobs(len(paths)))
		for i, path := range paths {
			if gctx.Err() != nil {
				break
			}
			g.Go(func(i int, path string) func() error {
				return func() error {
					// файл, начатый до отмены, доводим до конца
					if gctx.Err() != nil {
						return nil
					}
					outcomes <- outcome{index: i, started: true}
					res, err := r.processFile(context.WithoutCancel(gctx), log, manager, path)
					if r.StopOnViolation && res.Status == StatusFixed {
						stop()
					}
					outcomes <- outcome{index: i, res: res}
					return err
				}
			}(i, path))
		}
		runErr = g.Wait()
	}
	close(outcomes)
	<-coordinated

	for _, res := range results {
		if res != nil {
			summary.Files = append(summary.Files, *res)
		}
	}
	summary.Elapsed = time.Since(start)

	saveErr := manager.Save()
	if saveErr != nil {
		log.Warn("cache not saved", "err", saveErr)
	}
	if runErr == nil && ctx.Err() != nil {
		runErr = ctx.Err()
	}
	log.Debug("run finished", "files", len(summary.Files), "elapsed", summary.Elapsed, "exit", summary.ExitCode())
	if runErr != nil {
		return summary, runErr
	}
	if saveErr != nil {
		return summary, fmt.Errorf("cache: %w", saveErr)
	}
	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, log *slog.Logger, manager cache.Manager, path string) (FileResult, error) {
	start := time.Now()
	meta := source.MetaFor(path)

	// #nosec G304 -- path comes from the finder or the command line
	content, err := os.ReadFile(path)
	if err != nil {
		log.Debug("file skipped", "file", path, "err", err)
		return FileResult{Path: meta.Path, Status: StatusSkipped, Err: err, Elapsed: time.Since(start)}, nil
	}
	if !manager.NeedFixing(path, content) {
		log.Debug("cache hit", "file", path)
		return FileResult{Path: meta.Path, Status: StatusUnchanged, Source: content, Output: content, Elapsed: time.Since(start)}, nil
	}

	res, err := r.fix(ctx, log, meta, content)
	res.Path = meta.Path
	if err != nil {
		res.Elapsed = time.Since(start)
		log.Error("structural error, aborting run", "file", path, "err", err)
		return res, err
	}

	if res.Status == StatusFixed && !r.DryRun {
		if werr := writeFile(path, res.Output); werr != nil {
			res.Status = StatusException
			res.Err = werr
			res.Output = res.Source
		}
	}
	res.Elapsed = time.Since(start)
	log.Debug("file processed", "file", path, "status", string(res.Status),
		"passes", res.Passes, "fixers", res.AppliedFixers, "elapsed", res.Elapsed)
	return res, nil
}

// commit records res in the cache. Only the coordinator calls it.
func (r *Runner) commit(manager cache.Manager, res FileResult) {
	switch {
	case res.Status == StatusLintFailed, res.Status == StatusException:
		// в том числе структурная ошибка: файл не дочищен
		manager.ClearFile(res.Path)
	case res.Status == StatusSkipped && res.Err != nil:
		// нечитаемый файл: хешировать нечего
	case r.DryRun && res.Status == StatusFixed:
		// на диске осталась неисправленная версия
		manager.ClearFile(res.Path)
	default:
		manager.SetFile(res.Path, res.Output)
	}
}

func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) linter() lint.Linter {
	if r.Linter != nil {
		return r.Linter
	}
	return lint.TokenLinter{}
}

func (r *Runner) cache() cache.Manager {
	if r.Cache != nil {
		return r.Cache
	}
	return cache.NullManager{}
}

func (r *Runner) maxPasses() int {
	if r.MaxPasses > 0 {
		return r.MaxPasses
	}
	return DefaultMaxPasses
}

func (r *Runner) jobs(files int) int {
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}
