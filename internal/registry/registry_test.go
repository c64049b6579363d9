package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/registry"
	"github.com/pilgerone/PHP-CS-Fixer/internal/ruleset"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

type stubFixer struct {
	fixer.Base
	name     string
	priority int
	risky    bool
}

func (f *stubFixer) Name() string                                { return f.name }
func (f *stubFixer) Priority() int                               { return f.priority }
func (f *stubFixer) IsRisky() bool                               { return f.risky }
func (f *stubFixer) IsCandidate(*tokens.Stream) bool             { return true }
func (f *stubFixer) Apply(source.FileMeta, *tokens.Stream) error { return nil }

func names(fs []fixer.Fixer) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name()
	}
	return out
}

func builtIn(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.RegisterBuiltIn())
	return r
}

func TestRegisterBuiltInTwiceFails(t *testing.T) {
	r := builtIn(t)
	err := r.RegisterBuiltIn()
	require.ErrorIs(t, err, registry.ErrDuplicate)
}

func TestResolveOrdersByPriorityThenRegistration(t *testing.T) {
	r := builtIn(t)
	got, err := r.Resolve(ruleset.Rules{
		"single_blank_line_at_eof":      true,
		"lowercase_keywords":            true,
		"encoding":                      true,
		"cast_spaces":                   true,
		"no_spaces_after_function_name": true,
		"no_spaces_inside_parenthesis":  true,
	}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"encoding",
		"no_spaces_after_function_name",
		"no_spaces_inside_parenthesis",
		"lowercase_keywords",
		"cast_spaces",
		"single_blank_line_at_eof",
	}, names(got))
}

func TestResolveIsStable(t *testing.T) {
	r := registry.New()
	for _, n := range []string{"Acme/zeta", "Acme/alpha", "Acme/mid"} {
		require.NoError(t, r.RegisterCustom(&stubFixer{name: n}, false))
	}
	got, err := r.Resolve(ruleset.Rules{"Acme/alpha": true, "Acme/mid": true, "Acme/zeta": true}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme/zeta", "Acme/alpha", "Acme/mid"}, names(got))
}

func TestResolveErrors(t *testing.T) {
	r := builtIn(t)
	require.NoError(t, r.RegisterCustom(&stubFixer{name: "Acme/risky", risky: true}, false))

	cases := []struct {
		name  string
		rules ruleset.Rules
		risky bool
		msg   string
	}{
		{"unknown", ruleset.Rules{"nope": true, "zzz": false}, false, `Invalid configuration: the rules contain unknown fixers: "nope", "zzz"`},
		{"risky", ruleset.Rules{"Acme/risky": true}, false, "[Acme/risky] Invalid configuration: the fixer is risky and risky fixers are not allowed"},
		{"risky preset", ruleset.Rules{"@Symfony:risky": true}, false, "[function_to_constant] Invalid configuration: the fixer is risky and risky fixers are not allowed"},
		{"options on plain", ruleset.Rules{"cast_spaces": map[string]any{"x": 1}}, false, "[cast_spaces] Invalid configuration: the fixer is not configurable"},
		{"bad option", ruleset.Rules{"line_ending": map[string]any{"nope": 1}}, false, `[line_ending] Invalid configuration: unknown option "nope"`},
		{"unknown preset", ruleset.Rules{"@Nope": true}, false, `Invalid configuration: set "@Nope" does not exist`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Resolve(tc.rules, tc.risky)
			var cfgErr *fixer.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestResolveRiskyAllowed(t *testing.T) {
	r := builtIn(t)
	got, err := r.Resolve(ruleset.Rules{"@Symfony:risky": true}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"function_to_constant"}, names(got))
}

func TestResolveResetsOptions(t *testing.T) {
	r := builtIn(t)
	_, err := r.Resolve(ruleset.Rules{"line_ending": map[string]any{"line_ending": "\r\n"}}, false)
	require.NoError(t, err)

	got, err := r.Resolve(ruleset.Rules{"line_ending": true}, false)
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := tokens.New("<?php\r\n$a;\r\n")
	require.NoError(t, got[0].Apply(source.MetaFor("a.php"), s))
	assert.Equal(t, "<?php\n$a;\n", s.Source(), "options from the previous resolve must not survive")
}

func TestRegisterCustom(t *testing.T) {
	r := builtIn(t)
	require.Error(t, r.RegisterCustom(&stubFixer{name: "no_vendor"}, false))
	require.Error(t, r.RegisterCustom(&stubFixer{name: "acme/lower_vendor"}, false))

	first := &stubFixer{name: "Acme/foo", priority: 5}
	require.NoError(t, r.RegisterCustom(first, false))
	require.ErrorIs(t, r.RegisterCustom(&stubFixer{name: "Acme/foo"}, false), registry.ErrDuplicate)

	second := &stubFixer{name: "Acme/foo", priority: 5}
	require.NoError(t, r.RegisterCustom(second, true))
	got, ok := r.Get("Acme/foo")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Contains(t, r.Names(), "Acme/foo")
}

func TestOverrideKeepsRegistrationSlot(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterCustom(&stubFixer{name: "Acme/a"}, false))
	require.NoError(t, r.RegisterCustom(&stubFixer{name: "Acme/b"}, false))
	require.NoError(t, r.RegisterCustom(&stubFixer{name: "Acme/a"}, true))
	assert.Equal(t, []string{"Acme/a", "Acme/b"}, names(r.Fixers()))
}

func TestFixersCoversCatalogue(t *testing.T) {
	r := builtIn(t)
	all := r.Fixers()
	assert.Len(t, all, len(r.Names()))
	assert.Equal(t, "encoding", all[0].Name())
	assert.Equal(t, "single_blank_line_at_eof", all[len(all)-1].Name())
}
