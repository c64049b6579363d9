package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Error is a problem with the configuration file itself.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "config: " + e.Err.Error()
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Default returns the configuration used when no file is found.
func Default(dir string) *Config {
	cfg := &Config{Dir: dir}
	applyDefaults(cfg)
	return cfg
}

// Load reads a TOML or YAML file (picked by extension), fills defaults and
// validates it.
func Load(path string) (*Config, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, &Error{Path: path, Err: err}
		}
		if keys := unknownTOMLKeys(md); len(keys) > 0 {
			return nil, &Error{Path: path, Err: fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, &Error{Path: path, Err: err}
		}
	default:
		return nil, &Error{Path: path, Err: fmt.Errorf("unsupported config format %q", ext)}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	cfg.Path = abs
	cfg.Dir = filepath.Dir(abs)

	applyDefaults(&cfg)
	normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return &cfg, nil
}

// Discover looks for a config file in dir and its parents. It returns an
// empty path when none exists.
func Discover(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(abs, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

// unknownTOMLKeys lists keys no Config field took. Everything under
// "rules" lands in a free-form map, so fixer options are not reported.
func unknownTOMLKeys(md toml.MetaData) []string {
	var keys []string
	for _, k := range md.Undecoded() {
		if len(k) > 0 && k[0] == "rules" {
			continue
		}
		keys = append(keys, k.String())
	}
	return keys
}

// LoadOrDefault loads the config at path, or discovers one from dir when
// path is empty, falling back to defaults.
func LoadOrDefault(path, dir string) (*Config, error) {
	if path == "" {
		found, err := Discover(dir)
		if err != nil {
			return nil, &Error{Err: err}
		}
		if found == "" {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return nil, &Error{Err: err}
			}
			return Default(abs), nil
		}
		path = found
	}
	return Load(path)
}

func applyDefaults(cfg *Config) {
	if len(cfg.Rules) == 0 {
		cfg.Rules = map[string]any{"@PSR2": true}
	}
	if strings.TrimSpace(cfg.CacheFile) == "" {
		cfg.CacheFile = DefaultCacheFile
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxPasses == 0 {
		cfg.MaxPasses = DefaultMaxPasses
	}
	if strings.TrimSpace(cfg.Linter) == "" {
		cfg.Linter = LinterToken
	}
	if strings.TrimSpace(cfg.PHPExecutable) == "" {
		cfg.PHPExecutable = "php"
	}
	if cfg.MaxLintProcesses == 0 {
		cfg.MaxLintProcesses = runtime.GOMAXPROCS(0)
	}
	if len(cfg.Finder.In) == 0 {
		cfg.Finder.In = []string{"."}
	}
	if len(cfg.Finder.Name) == 0 {
		cfg.Finder.Name = []string{"*.php"}
	}
	if cfg.Finder.Exclude == nil {
		cfg.Finder.Exclude = []string{"vendor"}
	}
}

func normalize(cfg *Config) {
	cfg.Linter = strings.ToLower(strings.TrimSpace(cfg.Linter))
	cfg.CacheFile = strings.TrimSpace(cfg.CacheFile)
	cfg.PHPExecutable = strings.TrimSpace(cfg.PHPExecutable)
	cfg.LintCacheDir = strings.TrimSpace(cfg.LintCacheDir)
	for i, p := range cfg.Finder.In {
		cfg.Finder.In[i] = strings.TrimSpace(p)
	}
}
