package fixer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecodeOptions decodes opts into dst strictly: unknown option names and
// type mismatches are reported as a ConfigurationError of fixer name.
// dst must already hold the defaults; absent options keep them.
func DecodeOptions(name string, opts map[string]any, dst any) error {
	if len(opts) == 0 {
		return nil
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return &ConfigurationError{Fixer: name, Msg: "options are not serialisable", Err: err}
	}
	if err := strictUnmarshal(raw, dst); err != nil {
		return &ConfigurationError{Fixer: name, Msg: describeDecodeError(err), Err: err}
	}
	return nil
}

func strictUnmarshal(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after options")
	}
	return nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("option %q must be of type %s, got %s", typeErr.Field, typeErr.Type.String(), typeErr.Value)
	}
	msg := err.Error()
	// json: unknown field "foo"
	if rest, ok := strings.CutPrefix(msg, "json: unknown field "); ok {
		return "unknown option " + rest
	}
	return strings.TrimPrefix(msg, "json: ")
}

// OneOf checks that every value is in allowed, keeping the fixer-facing message.
func OneOf(name, option string, values []string, allowed ...string) error {
	for _, v := range values {
		found := false
		for _, a := range allowed {
			if v == a {
				found = true
				break
			}
		}
		if !found {
			return ConfigErrorf(name, "the option %q contains an invalid value %q, allowed values are %q", option, v, allowed)
		}
	}
	return nil
}
