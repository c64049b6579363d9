package ruleset

import (
	"fmt"
	"slices"
	"strings"
)

// presets lists the rules each "@Name" turns on. Entries are rule names or
// other presets; options stay at their defaults.
var presets = map[string][]string{
	"@PSR1": {"encoding", "full_opening_tag"},
	"@PSR2": {
		"@PSR1",
		"line_ending",
		"lowercase_keywords",
		"no_spaces_after_function_name",
		"no_spaces_inside_parenthesis",
		"no_trailing_whitespace",
		"single_blank_line_at_eof",
	},
	"@Symfony": {
		"@PSR2",
		"blank_line_after_opening_tag",
		"cast_spaces",
		"native_function_casing",
		"no_empty_statement",
		"no_singleline_whitespace_before_semicolons",
		"no_whitespace_in_blank_line",
		"phpdoc_no_package",
		"phpdoc_scalar",
		"simplified_null_return",
	},
	"@Symfony:risky": {"function_to_constant"},
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// IsPreset reports whether name refers to a preset.
func IsPreset(name string) bool { return strings.HasPrefix(name, "@") }

// Expand resolves presets: rules from presets come first, explicit rule
// entries override them. A preset set to false disables its rules unless
// another preset or an explicit entry enables them.
func Expand(r Rules) (Rules, error) {
	out := Rules{}
	// пресеты в алфавитном порядке: результат не зависит от порядка ключей map
	for _, name := range r.Names() {
		if !IsPreset(name) {
			continue
		}
		rules, err := presetRules(name, nil)
		if err != nil {
			return nil, err
		}
		on := r.Enabled(name)
		for _, rule := range rules {
			if on {
				out[rule] = true
			} else if _, seen := out[rule]; !seen {
				out[rule] = false
			}
		}
	}
	for name, v := range r {
		if !IsPreset(name) {
			out[name] = v
		}
	}
	return out, nil
}

func presetRules(name string, stack []string) ([]string, error) {
	if slices.Contains(stack, name) {
		return nil, fmt.Errorf("preset %s includes itself", name)
	}
	entries, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("set %q does not exist", name)
	}
	var out []string
	for _, e := range entries {
		if IsPreset(e) {
			nested, err := presetRules(e, append(stack, name))
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
