// Package registry owns the set of known fixers and turns a rule
// configuration into the ordered list a run applies.
package registry

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/rules"
	"github.com/pilgerone/PHP-CS-Fixer/internal/ruleset"
)

var (
	builtInName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	customName  = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*/[a-z][a-z0-9_]*$`)
)

// ErrDuplicate is wrapped by registration errors for an already known name.
var ErrDuplicate = errors.New("fixer is already registered")

type entry struct {
	fixer fixer.Fixer
	order int // слот регистрации, override его сохраняет
}

// Registry is a name-indexed set of fixers. It is not safe for concurrent
// registration; resolve once before starting workers.
type Registry struct {
	entries []entry
	byName  map[string]int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// RegisterBuiltIn registers the built-in catalogue in its fixed order.
func (r *Registry) RegisterBuiltIn() error {
	for _, f := range rules.BuiltIn() {
		if err := r.register(f, false, builtInName); err != nil {
			return err
		}
	}
	return nil
}

// RegisterCustom adds a user fixer named "Vendor/snake_case". With override a
// fixer of the same name is replaced in its original registration slot.
func (r *Registry) RegisterCustom(f fixer.Fixer, override bool) error {
	return r.register(f, override, customName)
}

func (r *Registry) register(f fixer.Fixer, override bool, valid *regexp.Regexp) error {
	if f == nil {
		return errors.New("registry: nil fixer")
	}
	name := f.Name()
	if !valid.MatchString(name) {
		return fmt.Errorf("registry: fixer name %q must match %s", name, valid.String())
	}
	if idx, ok := r.byName[name]; ok {
		if !override {
			return fmt.Errorf("registry: %q: %w", name, ErrDuplicate)
		}
		r.entries[idx].fixer = f
		return nil
	}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, entry{fixer: f, order: len(r.entries)})
	return nil
}

// Get returns the fixer registered under name.
func (r *Registry) Get(name string) (fixer.Fixer, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.entries[idx].fixer, true
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.fixer.Name())
	}
	slices.Sort(names)
	return names
}

// Fixers returns every registered fixer in application order.
func (r *Registry) Fixers() []fixer.Fixer {
	return sortByPriority(slices.Clone(r.entries))
}

// Resolve expands presets, validates and configures the enabled fixers, and
// returns them by priority descending, ties in registration order.
func (r *Registry) Resolve(rs ruleset.Rules, allowRisky bool) ([]fixer.Fixer, error) {
	expanded, err := ruleset.Expand(rs)
	if err != nil {
		return nil, &fixer.ConfigurationError{Msg: err.Error(), Err: err}
	}

	var unknown []string
	for _, name := range expanded.Names() {
		if _, ok := r.byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, fixer.ConfigErrorf("", "the rules contain unknown fixers: %s", quoteList(unknown))
	}

	var picked []entry
	for _, name := range expanded.Names() {
		if !expanded.Enabled(name) {
			continue
		}
		e := r.entries[r.byName[name]]
		if e.fixer.IsRisky() && !allowRisky {
			return nil, fixer.ConfigErrorf(name, "the fixer is risky and risky fixers are not allowed")
		}
		opts := expanded.OptionsOf(name)
		c, configurable := e.fixer.(fixer.Configurable)
		switch {
		case configurable:
			// Configure(nil) сбрасывает прошлую конфигурацию
			if err := c.Configure(opts); err != nil {
				return nil, asConfigError(name, err)
			}
		case len(opts) > 0:
			return nil, fixer.ConfigErrorf(name, "the fixer is not configurable")
		}
		picked = append(picked, e)
	}
	return sortByPriority(picked), nil
}

func sortByPriority(es []entry) []fixer.Fixer {
	sort.SliceStable(es, func(i, j int) bool {
		pi, pj := es[i].fixer.Priority(), es[j].fixer.Priority()
		if pi != pj {
			return pi > pj
		}
		return es[i].order < es[j].order
	})
	out := make([]fixer.Fixer, len(es))
	for i, e := range es {
		out[i] = e.fixer
	}
	return out
}

func asConfigError(name string, err error) error {
	var cfgErr *fixer.ConfigurationError
	if errors.As(err, &cfgErr) {
		return err
	}
	return &fixer.ConfigurationError{Fixer: name, Msg: err.Error(), Err: err}
}

func quoteList(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = `"` + n + `"`
	}
	return strings.Join(q, ", ")
}
