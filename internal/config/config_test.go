package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilgerone/PHP-CS-Fixer/internal/config"
	"github.com/pilgerone/PHP-CS-Fixer/internal/ruleset"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, ".php-cs-fixer.toml", `
risky_allowed = true
using_cache = false
jobs = 3
linter = "PHP"

[rules]
"@PSR2" = true
line_ending = false

[rules.function_to_constant]
functions = ["pi"]

[finder]
in = ["src", "tests"]
exclude = ["vendor", "**/fixtures/**"]
`)
	cfg, err := config.Load(p)
	require.NoError(t, err)

	assert.True(t, cfg.RiskyAllowed)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, config.LinterPHP, cfg.Linter)
	assert.Equal(t, "php", cfg.PHPExecutable)
	assert.Equal(t, config.DefaultMaxPasses, cfg.MaxPasses)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, []string{"src", "tests"}, cfg.Finder.In)
	assert.Equal(t, []string{"*.php"}, cfg.Finder.Name)
	assert.True(t, cfg.Finder.IgnoresVCS())

	want := ruleset.Rules{
		"@PSR2":                true,
		"line_ending":          false,
		"function_to_constant": map[string]any{"functions": []any{"pi"}},
	}
	assert.True(t, ruleset.Equal(want, ruleset.Rules(cfg.Rules)), "rules = %v", cfg.Rules)
	assert.Equal(t, filepath.Join(dir, config.DefaultCacheFile), cfg.Resolve(cfg.CacheFile))
}

func TestLoadTOMLFixerOptions(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, ".php-cs-fixer.toml", "[rules.line_ending]\nline_ending = \"\\r\\n\"\n")
	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"line_ending": "\r\n"}, ruleset.Rules(cfg.Rules).OptionsOf("line_ending"))

	p = write(t, dir, "bad.toml", "jobz = 2\n[rules.line_ending]\nline_ending = \"\\n\"\n")
	_, err = config.Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobz")
	assert.NotContains(t, err.Error(), "rules.line_ending")
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, ".php-cs-fixer.yaml", `
rules:
  "@Symfony": true
  cast_spaces: true
max_passes: 4
finder:
  name: ["*.php", "*.phtml"]
  ignore_vcs: false
`)
	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxPasses)
	assert.Equal(t, []string{"*.php", "*.phtml"}, cfg.Finder.Name)
	assert.False(t, cfg.Finder.IgnoresVCS())
	assert.True(t, ruleset.Rules(cfg.Rules).Enabled("cast_spaces"))
	assert.True(t, cfg.CacheEnabled())
}

func TestLoadEmptyYAMLUsesDefaults(t *testing.T) {
	p := write(t, t.TempDir(), ".php-cs-fixer.yml", "")
	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"@PSR2": true}, map[string]any(cfg.Rules))
	assert.Equal(t, config.LinterToken, cfg.Linter)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Jobs)
	assert.Equal(t, []string{"vendor"}, cfg.Finder.Exclude)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown toml key", "c.toml", "colour = true\n", "unknown keys: colour"},
		{"unknown yaml key", "c.yaml", "colour: true\n", "field colour not found"},
		{"bad toml", "c.toml", "rules = [\n", "c.toml"},
		{"bad linter", "c.toml", "linter = \"hhvm\"\n", `linter must be one of: token, php; got "hhvm"`},
		{"negative jobs", "c.toml", "jobs = -1\n", "jobs must be >= 0, got -1"},
		{"bad rule value", "c.toml", "[rules]\nfoo = 3\n", "rules:"},
		{"bad pattern", "c.yaml", "finder:\n  not_path: [\"[\"]\n", `finder.not_path[0] "[" is not a valid pattern`},
		{"unsupported", "c.json", "{}", `unsupported config format ".json"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := write(t, t.TempDir(), tc.file, tc.content)
			_, err := config.Load(p)
			require.Error(t, err)
			var cerr *config.Error
			require.ErrorAs(t, err, &cerr)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	yml := write(t, root, ".php-cs-fixer.dist.yaml", "jobs: 2\n")
	found, err := config.Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, yml, found)

	near := write(t, filepath.Join(root, "a"), ".php-cs-fixer.toml", "jobs = 1\n")
	found, err = config.Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, near, found, "nearest file wins")

	cfg, err := config.LoadOrDefault("", nested)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Jobs)
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadOrDefault(filepath.Join(dir, "missing.toml"), dir)
	require.Error(t, err)
	assert.Nil(t, cfg)

	def := config.Default(dir)
	assert.Equal(t, dir, def.Dir)
	assert.Empty(t, def.Path)
	assert.Equal(t, config.DefaultCacheFile, def.CacheFile)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PHP_CS_FIXER_JOBS":        "7",
		"PHP_CS_FIXER_ALLOW_RISKY": "TRUE",
		"PHP_CS_FIXER_CACHE_FILE":  " /tmp/x.cache ",
		"PHP_CS_FIXER_LINTER":      "php",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := config.Default(t.TempDir())
	require.NoError(t, config.ApplyEnv(cfg, lookup))
	assert.Equal(t, 7, cfg.Jobs)
	assert.True(t, cfg.RiskyAllowed)
	assert.Equal(t, "/tmp/x.cache", cfg.CacheFile)
	assert.Equal(t, config.LinterPHP, cfg.Linter)

	env["PHP_CS_FIXER_JOBS"] = "many"
	err := config.ApplyEnv(cfg, lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PHP_CS_FIXER_JOBS must be a non-negative integer")

	delete(env, "PHP_CS_FIXER_JOBS")
	env["PHP_CS_FIXER_LINTER"] = "hhvm"
	require.Error(t, config.ApplyEnv(cfg, lookup))
}
