package rules

import (
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/docblock"
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// PhpdocScalar rewrites long scalar type aliases in phpdoc to their short forms.
type PhpdocScalar struct{ fixer.Base }

func (*PhpdocScalar) Name() string  { return "phpdoc_scalar" }
func (*PhpdocScalar) Priority() int { return 15 }

func (*PhpdocScalar) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "Scalar types should always be written in the same form. `int` not `integer`, `bool` not `boolean`, `float` not `real` or `double`.",
		Samples: []fixer.CodeSample{{Code: "<?php\n/**\n * @param integer $a\n * @return boolean\n */\nfunction foo($a) {}\n"}},
	}
}

func (*PhpdocScalar) IsCandidate(s *tokens.Stream) bool { return s.HasKind(token.DocComment) }

func (*PhpdocScalar) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if t.Kind != token.DocComment {
			continue
		}
		doc := docblock.New(t.Text)
		for _, a := range doc.AnnotationsOfType(scalarTags...) {
			types, err := a.Types()
			if err != nil || len(types) == 0 {
				continue
			}
			changed := false
			for k, typ := range types {
				if short, ok := shortScalar(typ); ok {
					types[k] = short
					changed = true
				}
			}
			if changed {
				if err := a.SetTypes(types); err != nil {
					return err
				}
			}
		}
		if text := doc.Content(); text != t.Text {
			if err := s.SetAt(i, token.New(token.DocComment, text)); err != nil {
				return err
			}
		}
	}
	return nil
}

var scalarTags = []string{"method", "param", "property", "property-read", "property-write", "return", "type", "var"}

var shortScalars = map[string]string{
	"boolean":  "bool",
	"callback": "callable",
	"double":   "float",
	"integer":  "int",
	"real":     "float",
	"str":      "string",
}

// shortScalar maps "integer" and "integer[]" alike; the array suffix is kept.
func shortScalar(typ string) (string, bool) {
	base := strings.TrimRight(typ, "[]")
	short, ok := shortScalars[base]
	if !ok {
		return "", false
	}
	return short + typ[len(base):], true
}
