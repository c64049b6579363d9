package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pilgerone/PHP-CS-Fixer/internal/ruleset"
)

// Validate checks every section and joins the problems found.
func Validate(cfg *Config) error {
	return errors.Join(
		validateRules(cfg),
		validateLimits(cfg),
		validateLinter(cfg),
		validateFinder(cfg),
	)
}

func validateRules(cfg *Config) error {
	rules, err := ruleset.Normalize(cfg.Rules)
	if err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	cfg.Rules = rules
	return nil
}

func validateLimits(cfg *Config) error {
	var errs []error
	if cfg.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must be >= 0, got %d", cfg.Jobs))
	}
	if cfg.MaxPasses < 0 {
		errs = append(errs, fmt.Errorf("max_passes must be >= 0, got %d", cfg.MaxPasses))
	}
	if cfg.MaxLintProcesses < 0 {
		errs = append(errs, fmt.Errorf("max_lint_processes must be >= 0, got %d", cfg.MaxLintProcesses))
	}
	return errors.Join(errs...)
}

func validateLinter(cfg *Config) error {
	switch cfg.Linter {
	case LinterToken, LinterPHP:
	default:
		return fmt.Errorf("linter must be one of: %s, %s; got %q", LinterToken, LinterPHP, cfg.Linter)
	}
	if cfg.Linter == LinterPHP && cfg.PHPExecutable == "" {
		return fmt.Errorf("php_executable must not be empty when linter is %q", LinterPHP)
	}
	return nil
}

func validateFinder(cfg *Config) error {
	var errs []error
	for i, dir := range cfg.Finder.In {
		if dir == "" {
			errs = append(errs, fmt.Errorf("finder.in[%d] must not be empty", i))
		}
	}
	check := func(field string, patterns []string) {
		for i, p := range patterns {
			if strings.TrimSpace(p) == "" || !doublestar.ValidatePattern(p) {
				errs = append(errs, fmt.Errorf("finder.%s[%d] %q is not a valid pattern", field, i, p))
			}
		}
	}
	check("name", cfg.Finder.Name)
	check("exclude", cfg.Finder.Exclude)
	check("not_path", cfg.Finder.NotPath)
	return errors.Join(errs...)
}
