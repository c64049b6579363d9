// Package finder collects the files a run processes.
package finder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// Options describe which files to pick.
//
// Exclude entries name directories relative to each root (doublestar
// patterns allowed); NotPath patterns match file paths relative to the root;
// Name patterns match the base name.
type Options struct {
	In        []string
	Name      []string
	Exclude   []string
	NotPath   []string
	IgnoreVCS bool
}

var vcsDirs = []string{".git", ".svn", ".hg", ".bzr", "CVS"}

// Find walks every entry of opts.In and returns absolute, sorted,
// de-duplicated file paths. Files listed explicitly are taken as they are.
func Find(opts Options) ([]string, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, in := range opts.In {
		root, err := filepath.Abs(in)
		if err != nil {
			return nil, fmt.Errorf("finder: %w", err)
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("finder: %w", err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		w := newWalker(root, opts)
		if err := w.walk(add); err != nil {
			return nil, err
		}
	}
	slices.Sort(out)
	return out, nil
}

func validate(opts Options) error {
	var errs []error
	for _, group := range [][]string{opts.Name, opts.Exclude, opts.NotPath} {
		for _, p := range group {
			if !doublestar.ValidatePattern(p) {
				errs = append(errs, fmt.Errorf("finder: invalid pattern %q", p))
			}
		}
	}
	return errors.Join(errs...)
}

type walker struct {
	root   string
	opts   Options
	ignore gitignore.GitIgnore
}

func newWalker(root string, opts Options) *walker {
	w := &walker{root: root, opts: opts}
	if opts.IgnoreVCS {
		w.ignore = loadIgnoreFile(filepath.Join(root, ".gitignore"), root)
	}
	return w
}

func (w *walker) walk(add func(string)) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// нечитаемые подкаталоги пропускаем, корень обязан читаться
			if path == w.root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == w.root {
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if w.skipDir(rel, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if w.keepFile(rel, d.Name()) {
			add(path)
		}
		return nil
	})
}

func (w *walker) skipDir(rel, name string) bool {
	if w.opts.IgnoreVCS && slices.Contains(vcsDirs, name) {
		return true
	}
	for _, pattern := range w.opts.Exclude {
		pattern = strings.Trim(pattern, "/")
		if rel == pattern || strings.HasPrefix(rel, pattern+"/") {
			return true
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return w.ignored(rel, true)
}

func (w *walker) keepFile(rel, name string) bool {
	if len(w.opts.Name) > 0 && !matchAny(w.opts.Name, name) {
		return false
	}
	if matchAny(w.opts.NotPath, rel) {
		return false
	}
	return !w.ignored(rel, false)
}

func (w *walker) ignored(rel string, isDir bool) bool {
	if w.ignore == nil {
		return false
	}
	match := w.ignore.Relative(rel, isDir)
	return match != nil && match.Ignore()
}

func matchAny(patterns []string, s string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, s); ok {
			return true
		}
	}
	return false
}

func loadIgnoreFile(filePath, baseDir string) gitignore.GitIgnore {
	// #nosec G304 -- path is built from the project root
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, baseDir, nil)
}
