package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyEnv applies PHP_CS_FIXER_* overrides. lookup is os.LookupEnv in
// production.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var err error
	setString(&cfg.CacheFile, "PHP_CS_FIXER_CACHE_FILE", lookup)
	setString(&cfg.PHPExecutable, "PHP_CS_FIXER_PHP", lookup)
	setString(&cfg.Linter, "PHP_CS_FIXER_LINTER", lookup)
	if e := setInt(&cfg.Jobs, "PHP_CS_FIXER_JOBS", lookup); e != nil {
		err = e
	}
	if e := setBool(&cfg.RiskyAllowed, "PHP_CS_FIXER_ALLOW_RISKY", lookup); e != nil {
		err = e
	}
	if err != nil {
		return &Error{Err: err}
	}
	cfg.Linter = strings.ToLower(strings.TrimSpace(cfg.Linter))
	return validateLinter(cfg)
}

func setString(target *string, key string, lookup func(string) (string, bool)) {
	if val, ok := lookup(key); ok && strings.TrimSpace(val) != "" {
		*target = strings.TrimSpace(val)
	}
}

func setInt(target *int, key string, lookup func(string) (string, bool)) error {
	val, ok := lookup(key)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || i < 0 {
		return fmt.Errorf("%s must be a non-negative integer, got %q", key, val)
	}
	*target = i
	return nil
}

func setBool(target *bool, key string, lookup func(string) (string, bool)) error {
	val, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(val)))
	if err != nil {
		return fmt.Errorf("%s must be a boolean, got %q", key, val)
	}
	*target = b
	return nil
}
