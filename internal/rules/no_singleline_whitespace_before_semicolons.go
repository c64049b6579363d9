package rules

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// NoSinglelineWhitespaceBeforeSemicolons removes same-line whitespace before ";".
type NoSinglelineWhitespaceBeforeSemicolons struct{ fixer.Base }

func (*NoSinglelineWhitespaceBeforeSemicolons) Name() string {
	return "no_singleline_whitespace_before_semicolons"
}
func (*NoSinglelineWhitespaceBeforeSemicolons) Priority() int { return 0 }

func (*NoSinglelineWhitespaceBeforeSemicolons) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "Single-line whitespace before closing semicolon are prohibited.",
		Samples: []fixer.CodeSample{{Code: "<?php $this->foo() ;\n"}},
	}
}

func (*NoSinglelineWhitespaceBeforeSemicolons) IsCandidate(s *tokens.Stream) bool {
	return s.HasKind(token.Semicolon)
}

func (*NoSinglelineWhitespaceBeforeSemicolons) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := s.Len() - 1; i > 0; i-- {
		if s.At(i).Kind != token.Semicolon || !s.IsWhitespaceAt(i-1) || s.At(i-1).HasNewline() {
			continue
		}
		var before token.Token
		if i >= 2 {
			before = s.At(i - 2)
		}
		switch {
		case before.Kind == token.Semicolon:
			// "for ($i; ;)": пробел после предыдущей ";" остаётся
			if err := s.SetAt(i-1, token.New(token.Whitespace, " ")); err != nil {
				return err
			}
		case before.IsComment():
		default:
			if err := s.RemoveAt(i - 1); err != nil {
				return err
			}
		}
	}
	return nil
}
