// Package config loads the project configuration file.
package config

import (
	"path/filepath"
)

// File names looked up by Discover, in order.
var FileNames = []string{
	".php-cs-fixer.toml",
	".php-cs-fixer.yaml",
	".php-cs-fixer.yml",
	".php-cs-fixer.dist.toml",
	".php-cs-fixer.dist.yaml",
	".php-cs-fixer.dist.yml",
}

const (
	LinterToken = "token"
	LinterPHP   = "php"

	DefaultCacheFile = ".php-cs-fixer.cache"
	DefaultMaxPasses = 10
)

type Config struct {
	Rules            map[string]any `toml:"rules" yaml:"rules"`
	RiskyAllowed     bool           `toml:"risky_allowed" yaml:"risky_allowed"`
	UsingCache       *bool          `toml:"using_cache" yaml:"using_cache"`
	CacheFile        string         `toml:"cache_file" yaml:"cache_file"`
	Jobs             int            `toml:"jobs" yaml:"jobs"`
	MaxPasses        int            `toml:"max_passes" yaml:"max_passes"`
	Linter           string         `toml:"linter" yaml:"linter"`
	PHPExecutable    string         `toml:"php_executable" yaml:"php_executable"`
	MaxLintProcesses int            `toml:"max_lint_processes" yaml:"max_lint_processes"`
	LintCacheDir     string         `toml:"lint_cache_dir" yaml:"lint_cache_dir"`
	Finder           Finder         `toml:"finder" yaml:"finder"`

	// Dir is where the file was found; relative paths resolve against it.
	Dir string `toml:"-" yaml:"-"`
	// Path of the loaded file, empty for the built-in defaults.
	Path string `toml:"-" yaml:"-"`
}

type Finder struct {
	In        []string `toml:"in" yaml:"in"`
	Name      []string `toml:"name" yaml:"name"`
	Exclude   []string `toml:"exclude" yaml:"exclude"`
	NotPath   []string `toml:"not_path" yaml:"not_path"`
	IgnoreVCS *bool    `toml:"ignore_vcs" yaml:"ignore_vcs"`
}

// CacheEnabled reports whether the result cache is on.
func (c *Config) CacheEnabled() bool {
	return c.UsingCache == nil || *c.UsingCache
}

// IgnoresVCS reports whether .gitignore rules apply.
func (f Finder) IgnoresVCS() bool {
	return f.IgnoreVCS == nil || *f.IgnoreVCS
}

// Resolve makes p absolute relative to the config directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}
