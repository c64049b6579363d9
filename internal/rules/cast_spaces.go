package rules

import (
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// CastSpaces trims spaces inside a cast and puts exactly one after it.
type CastSpaces struct{ fixer.Base }

func (*CastSpaces) Name() string  { return "cast_spaces" }
func (*CastSpaces) Priority() int { return 0 }

func (*CastSpaces) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "A single space should be between cast and variable.",
		Samples: []fixer.CodeSample{{Code: "<?php\n$bar = ( string )  $a;\n$foo = (int)$b;\n"}},
	}
}

func (*CastSpaces) IsCandidate(s *tokens.Stream) bool {
	return s.HasKind(token.Cast)
}

func (*CastSpaces) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := s.Len() - 1; i >= 0; i-- {
		t := s.At(i)
		if t.Kind != token.Cast {
			continue
		}
		inner := strings.Trim(t.Text[1:len(t.Text)-1], " \t")
		if err := s.SetAt(i, token.New(token.Cast, "("+inner+")")); err != nil {
			return err
		}
		switch {
		case i+1 >= s.Len():
			continue
		case s.At(i + 1).IsWhitespace():
			if s.At(i + 1).HasNewline() {
				continue
			}
			if err := s.SetAt(i+1, token.New(token.Whitespace, " ")); err != nil {
				return err
			}
		default:
			if err := s.InsertAt(i+1, token.New(token.Whitespace, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}
