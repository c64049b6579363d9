package cache

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// rawPrefix marks a string stored as base64 of its bytes. JSON can only
// carry UTF-8, so paths and options with other bytes (Latin-1 headers,
// legacy file names) are escaped. Strings that already start with the
// prefix are escaped too, which keeps the mapping reversible.
const rawPrefix = "\x00raw:"

func escapeString(s string) string {
	if utf8.ValidString(s) && !strings.HasPrefix(s, rawPrefix) {
		return s
	}
	return rawPrefix + base64.StdEncoding.EncodeToString([]byte(s))
}

func unescapeString(s string) (string, error) {
	enc, ok := strings.CutPrefix(s, rawPrefix)
	if !ok {
		return s, nil
	}
	b, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("escaped string: %w", err)
	}
	return string(b), nil
}

// escapeValue applies escapeString to every map key and string of a
// JSON-shaped value.
func escapeValue(v any) any {
	switch val := v.(type) {
	case string:
		return escapeString(val)
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, x := range val {
			m[escapeString(k)] = escapeValue(x)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, x := range val {
			s[i] = escapeValue(x)
		}
		return s
	default:
		return v
	}
}

func unescapeValue(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return unescapeString(val)
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, x := range val {
			key, err := unescapeString(k)
			if err != nil {
				return nil, err
			}
			if m[key], err = unescapeValue(x); err != nil {
				return nil, err
			}
		}
		return m, nil
	case []any:
		s := make([]any, len(val))
		for i, x := range val {
			var err error
			if s[i], err = unescapeValue(x); err != nil {
				return nil, err
			}
		}
		return s, nil
	default:
		return v, nil
	}
}
