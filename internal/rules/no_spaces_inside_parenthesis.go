package rules

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// NoSpacesInsideParenthesis removes single-line whitespace after "(" and before ")".
type NoSpacesInsideParenthesis struct{ fixer.Base }

func (*NoSpacesInsideParenthesis) Name() string  { return "no_spaces_inside_parenthesis" }
func (*NoSpacesInsideParenthesis) Priority() int { return 2 }

func (*NoSpacesInsideParenthesis) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "There MUST NOT be a space after the opening parenthesis. There MUST NOT be a space before the closing parenthesis.",
		Samples: []fixer.CodeSample{{Code: "<?php\nif ( $a ) {\n    foo( );\n}\n"}},
	}
}

func (*NoSpacesInsideParenthesis) IsCandidate(s *tokens.Stream) bool {
	return s.HasAllKinds(token.Whitespace, token.LParen)
}

func (*NoSpacesInsideParenthesis) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := s.Len() - 1; i > 0; i-- {
		t := s.At(i)
		switch {
		case t.Kind == token.RParen:
			ws := i - 1
			if !s.IsWhitespaceAt(ws) || s.At(ws).HasNewline() || (ws > 0 && s.At(ws-1).IsComment()) {
				continue
			}
			if err := s.RemoveAt(ws); err != nil {
				return err
			}
		case t.IsWhitespace() && !t.HasNewline() && s.At(i-1).Kind == token.LParen:
			if err := s.RemoveAt(i); err != nil {
				return err
			}
		}
	}
	return nil
}
