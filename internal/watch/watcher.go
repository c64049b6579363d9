// Package watch re-runs the fixer when watched PHP files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// DefaultDebounce is the quiet period before a batch is handed over.
const DefaultDebounce = 200 * time.Millisecond

// Options configure a Watcher.
type Options struct {
	Roots []string
	// Include matches base names of files that trigger a run.
	Include []string
	// ExcludeDirs matches base names of directories that are not watched.
	ExcludeDirs []string
	Debounce    time.Duration
	Logger      *slog.Logger
}

// Watcher watches directory trees recursively.
type Watcher struct {
	fs        *fsnotify.Watcher
	debouncer *Debouncer
	include   []glob.Glob
	exclude   []glob.Glob
	logger    *slog.Logger
}

// New registers every non-excluded directory under the roots.
func New(opts Options) (*Watcher, error) {
	include, err := compile(opts.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compile(opts.ExcludeDirs)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		fs:        fsw,
		debouncer: NewDebouncer(debounce),
		include:   include,
		exclude:   exclude,
		logger:    logger,
	}
	for _, root := range opts.Roots {
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("watch: invalid pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.excluded(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "err", err)
		}
		return nil
	})
}

func (w *Watcher) excluded(dirName string) bool {
	for _, g := range w.exclude {
		if g.Match(dirName) {
			return true
		}
	}
	return false
}

func (w *Watcher) included(name string) bool {
	if len(w.include) == 0 {
		return true
	}
	for _, g := range w.include {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Run delivers debounced batches of changed files to handle until ctx is
// done. Removed files are not reported.
func (w *Watcher) Run(ctx context.Context, handle func(context.Context, []string)) error {
	defer w.debouncer.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(evt)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)
		case batch := <-w.debouncer.Output():
			existing := batch[:0]
			for _, p := range batch {
				if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
					existing = append(existing, p)
				}
			}
			if len(existing) > 0 {
				handle(ctx, existing)
			}
		}
	}
}

func (w *Watcher) handleEvent(evt fsnotify.Event) {
	if evt.Has(fsnotify.Create) {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			if !w.excluded(filepath.Base(evt.Name)) {
				if err := w.addTree(evt.Name); err != nil {
					w.logger.Warn("failed to watch new directory", "path", evt.Name, "err", err)
				}
			}
			return
		}
	}
	if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Rename) {
		return
	}
	if !w.included(filepath.Base(evt.Name)) {
		return
	}
	w.debouncer.Add(evt.Name)
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
