package rules

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// language constructs that are called like functions
var callableKeywords = []string{"array", "empty", "eval", "exit", "die", "isset", "list", "unset", "print", "include", "include_once", "require", "require_once"}

// NoSpacesAfterFunctionName removes the space between a function name and "(".
type NoSpacesAfterFunctionName struct{ fixer.Base }

func (*NoSpacesAfterFunctionName) Name() string  { return "no_spaces_after_function_name" }
func (*NoSpacesAfterFunctionName) Priority() int { return 2 }

func (*NoSpacesAfterFunctionName) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "When making a method or function call, there MUST NOT be a space between the method or function name and the opening parenthesis.",
		Samples: []fixer.CodeSample{{Code: "<?php\nrequire ('sample.php');\necho test (3);\nexit  (1);\n$func ();\n"}},
	}
}

func (*NoSpacesAfterFunctionName) IsCandidate(s *tokens.Stream) bool {
	return s.HasAllKinds(token.Whitespace, token.LParen)
}

func (*NoSpacesAfterFunctionName) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := s.Len() - 2; i > 0; i-- {
		if !s.At(i).IsWhitespace() || s.At(i+1).Kind != token.LParen {
			continue
		}
		name := s.At(i - 1)
		switch {
		case name.Kind == token.Ident, name.Kind == token.Variable, name.IsKeyword(callableKeywords...):
		default:
			continue
		}
		if prev := s.PrevMeaningful(i - 1); prev >= 0 && s.At(prev).IsKeyword("new") {
			continue
		}
		if err := s.RemoveAt(i); err != nil {
			return err
		}
	}
	return nil
}
