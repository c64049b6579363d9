package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pilgerone/PHP-CS-Fixer/internal/cache"
	"github.com/pilgerone/PHP-CS-Fixer/internal/config"
	"github.com/pilgerone/PHP-CS-Fixer/internal/finder"
	"github.com/pilgerone/PHP-CS-Fixer/internal/lint"
	"github.com/pilgerone/PHP-CS-Fixer/internal/registry"
	"github.com/pilgerone/PHP-CS-Fixer/internal/ruleset"
	"github.com/pilgerone/PHP-CS-Fixer/internal/runner"
	"github.com/pilgerone/PHP-CS-Fixer/internal/version"
)

// runSetup is everything resolved before the first file is touched.
type runSetup struct {
	cfg        *config.Config
	rules      ruleset.Rules
	files      []string
	baseDir    string
	watchRoots []string
	finderOpts finder.Options
	runner     runner.Runner
	logger     *slog.Logger
}

// prepareRun loads the configuration, applies environment and flag
// overrides, resolves fixers and collects the files. Every error here is a
// setup error: nothing has been written yet.
func prepareRun(cmd *cobra.Command, opts fixOptions, args []string, logger *slog.Logger) (*runSetup, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(opts.configPath, cwd)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, &config.Error{Path: cfg.Path, Err: err}
	}
	if err := applyFlags(cmd, cfg, opts, args, cwd); err != nil {
		return nil, &config.Error{Path: cfg.Path, Err: err}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, &config.Error{Path: cfg.Path, Err: err}
	}
	logger.Debug("configuration loaded", "path", cfg.Path, "dir", cfg.Dir)

	rules, err := ruleset.Normalize(cfg.Rules)
	if err != nil {
		return nil, &config.Error{Path: cfg.Path, Err: err}
	}
	reg := registry.New()
	if err := reg.RegisterBuiltIn(); err != nil {
		return nil, err
	}
	fixers, err := reg.Resolve(rules, cfg.RiskyAllowed)
	if err != nil {
		return nil, err
	}

	setup := &runSetup{cfg: cfg, rules: rules, baseDir: cwd, logger: logger}
	for _, in := range cfg.Finder.In {
		setup.finderOpts.In = append(setup.finderOpts.In, cfg.Resolve(in))
	}
	setup.finderOpts.Name = cfg.Finder.Name
	setup.finderOpts.Exclude = cfg.Finder.Exclude
	setup.finderOpts.NotPath = cfg.Finder.NotPath
	setup.finderOpts.IgnoreVCS = cfg.Finder.IgnoresVCS()
	setup.files, err = finder.Find(setup.finderOpts)
	if err != nil {
		return nil, &config.Error{Path: cfg.Path, Err: err}
	}
	for _, in := range setup.finderOpts.In {
		if info, err := os.Stat(in); err == nil && info.IsDir() {
			setup.watchRoots = append(setup.watchRoots, in)
		} else {
			setup.watchRoots = append(setup.watchRoots, filepath.Dir(in))
		}
	}

	linter, err := buildLinter(cfg, logger)
	if err != nil {
		return nil, &config.Error{Path: cfg.Path, Err: err}
	}
	manager, err := buildCache(cfg, rules, opts.dryRun, logger)
	if err != nil {
		return nil, &config.Error{Path: cfg.Path, Err: err}
	}

	setup.runner = runner.Runner{
		Fixers:          fixers,
		Linter:          linter,
		Cache:           manager,
		Logger:          logger,
		MaxPasses:       cfg.MaxPasses,
		Jobs:            cfg.Jobs,
		DryRun:          opts.dryRun,
		StopOnViolation: opts.stopOnViolation,
	}
	return setup, nil
}

// applyFlags lets explicitly set flags and positional paths win over the
// file and the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts fixOptions, args []string, cwd string) error {
	flags := cmd.Flags()
	if flags.Changed("rules") {
		rules, err := ruleset.Parse(opts.rules)
		if err != nil {
			return err
		}
		cfg.Rules = map[string]any(rules)
	}
	if flags.Changed("allow-risky") {
		cfg.RiskyAllowed = opts.allowRisky
	}
	if flags.Changed("using-cache") {
		on, err := parseYesNo(opts.usingCache)
		if err != nil {
			return fmt.Errorf("--using-cache: %w", err)
		}
		cfg.UsingCache = &on
	}
	if flags.Changed("cache-file") {
		cfg.CacheFile = absFrom(cwd, opts.cacheFile)
	}
	if flags.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if flags.Changed("max-passes") {
		cfg.MaxPasses = opts.maxPasses
	}
	if flags.Changed("linter") {
		cfg.Linter = strings.ToLower(strings.TrimSpace(opts.linter))
	}
	if len(args) > 0 {
		cfg.Finder.In = cfg.Finder.In[:0]
		for _, a := range args {
			cfg.Finder.In = append(cfg.Finder.In, absFrom(cwd, a))
		}
	}
	return nil
}

func buildLinter(cfg *config.Config, logger *slog.Logger) (lint.Linter, error) {
	if cfg.Linter != config.LinterPHP {
		return lint.TokenLinter{}, nil
	}
	proc, err := lint.NewProcessLinter(cfg.PHPExecutable, cfg.MaxLintProcesses)
	if err != nil {
		return nil, err
	}
	var store *lint.DiskStore
	if cfg.LintCacheDir != "" {
		store, err = lint.OpenDiskStoreAt(cfg.Resolve(cfg.LintCacheDir))
	} else {
		store, err = lint.OpenDiskStore("php-cs-fixer")
	}
	if err != nil {
		// без дискового кэша линтер всё равно работает
		logger.Warn("lint cache unavailable", "err", err)
		store = nil
	}
	return lint.NewCachingLinter(proc, proc.Executable(), store, logger), nil
}

func buildCache(cfg *config.Config, rules ruleset.Rules, dryRun bool, logger *slog.Logger) (cache.Manager, error) {
	if !cfg.CacheEnabled() {
		return cache.NullManager{}, nil
	}
	sig := cache.NewSignature(version.String(), rules)
	m, err := cache.OpenFile(cfg.Resolve(cfg.CacheFile), sig, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("result cache opened", "file", m.Path(), "entries", m.Cache().Len(), "dry_run", dryRun)
	return m, nil
}

// filter keeps the changed paths the finder would have picked.
func (s *runSetup) filter(changed []string) []string {
	found, err := finder.Find(s.finderOpts)
	if err != nil {
		s.logger.Warn("finder failed", "err", err)
		return nil
	}
	known := make(map[string]struct{}, len(found))
	for _, f := range found {
		known[f] = struct{}{}
	}
	var out []string
	for _, c := range changed {
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		if _, ok := known[abs]; ok {
			out = append(out, abs)
		}
	}
	return out
}

func parseYesNo(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes or no, got %q", v)
	}
}

func absFrom(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
