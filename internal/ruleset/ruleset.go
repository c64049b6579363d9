// Package ruleset models the rule configuration a run is started with.
package ruleset

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Rules maps a rule (or "@Preset") to true, false or an options map.
type Rules map[string]any

// Names returns the keys in sorted order.
func (r Rules) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

// Enabled reports whether name is switched on (true or options).
func (r Rules) Enabled(name string) bool {
	switch v := r[name].(type) {
	case bool:
		return v
	case map[string]any:
		return true
	default:
		return false
	}
}

// OptionsOf returns the options map of name, nil for plain true.
func (r Rules) OptionsOf(name string) map[string]any {
	if m, ok := r[name].(map[string]any); ok {
		return m
	}
	return nil
}

// Normalize converts decoder-specific shapes (TOML, YAML) into the canonical
// JSON-compatible form: bool or map[string]any with JSON-shaped values.
func Normalize(raw map[string]any) (Rules, error) {
	out := make(Rules, len(raw))
	for name, v := range raw {
		switch val := v.(type) {
		case bool:
			out[name] = val
		case map[string]any, map[any]any:
			opts, err := canonical(val)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", name, err)
			}
			m, ok := opts.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("rule %q: options must be a mapping", name)
			}
			out[name] = m
		default:
			return nil, fmt.Errorf("rule %q: value must be a boolean or an options mapping, got %T", name, v)
		}
	}
	return out, nil
}

// canonical brings v to the shapes encoding/json would decode into
// (map[string]any, []any, float64, string, bool, nil) without a JSON round
// trip, so strings keep their exact bytes.
func canonical(v any) (any, error) {
	switch val := v.(type) {
	case nil, bool, string, float64:
		return val, nil
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, x := range val {
			c, err := canonical(x)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			m[k] = c
		}
		return m, nil
	case map[any]any:
		// yaml.v3 отдаёт map[string]any, но старые декодеры и вложенные узлы: map[any]any.
		m := make(map[string]any, len(val))
		for k, x := range val {
			key := fmt.Sprint(k)
			c, err := canonical(x)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			m[key] = c
		}
		return m, nil
	case []any:
		s := make([]any, len(val))
		for i, x := range val {
			c, err := canonical(x)
			if err != nil {
				return nil, err
			}
			s[i] = c
		}
		return s, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32:
		return rv.Float(), nil
	case reflect.Slice, reflect.Array:
		s := make([]any, rv.Len())
		for i := range s {
			c, err := canonical(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			s[i] = c
		}
		return s, nil
	case reflect.Map:
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			c, err := canonical(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			m[key] = c
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported option value of type %T", v)
	}
}

// Equal compares two rule sets structurally on their normalized values.
// String options are compared byte for byte.
func Equal(a, b Rules) bool {
	na, errA := Normalize(a)
	nb, errB := Normalize(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return reflect.DeepEqual(na, nb)
}

// Parse reads the --rules flag: either a JSON object or a comma separated
// list like "@PSR2,-no_trailing_whitespace,cast_spaces".
func Parse(s string) (Rules, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rules{}, nil
	}
	if strings.HasPrefix(s, "{") {
		var raw map[string]any
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON rules: %w", err)
		}
		return Normalize(raw)
	}
	out := Rules{}
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if n, ok := strings.CutPrefix(name, "-"); ok {
			out[n] = false
			continue
		}
		out[name] = true
	}
	return out, nil
}
