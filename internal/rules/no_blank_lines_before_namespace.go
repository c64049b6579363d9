package rules

import (
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// NoBlankLinesBeforeNamespace leaves exactly one line break in front of a
// namespace declaration.
type NoBlankLinesBeforeNamespace struct{ fixer.Base }

func (*NoBlankLinesBeforeNamespace) Name() string  { return "no_blank_lines_before_namespace" }
func (*NoBlankLinesBeforeNamespace) Priority() int { return 0 }

func (*NoBlankLinesBeforeNamespace) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "There should be no blank lines before a namespace declaration.",
		Samples: []fixer.CodeSample{{Code: "<?php\n\n\n\nnamespace Example;\n"}},
	}
}

func (*NoBlankLinesBeforeNamespace) IsCandidate(s *tokens.Stream) bool {
	return s.HasKind(token.Keyword)
}

func (*NoBlankLinesBeforeNamespace) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := s.Len() - 1; i >= 0; i-- {
		if !s.At(i).IsKeyword("namespace") {
			continue
		}
		// namespace\Foo::bar() это не объявление
		if next := s.NextMeaningful(i); next >= 0 && s.At(next).IsOp("\\") {
			continue
		}
		if err := fixLinesBeforeNamespace(s, i); err != nil {
			return err
		}
	}
	return nil
}

func fixLinesBeforeNamespace(s *tokens.Stream, i int) error {
	breaks := 0
	newlineInTag := false
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		t := s.At(j)
		if t.Kind == token.OpenTag {
			newlineInTag = strings.ContainsAny(t.Text, "\r\n")
			breaks += token.LineBreaks(t.Text)
			break
		}
		if !t.IsWhitespace() {
			break
		}
		breaks += token.LineBreaks(t.Text)
	}
	if breaks == 1 {
		return nil
	}
	if s.IsWhitespaceAt(i - 1) {
		if err := s.RemoveAt(i - 1); err != nil {
			return err
		}
		i--
	}
	if newlineInTag {
		return nil
	}
	return s.InsertAt(i, token.New(token.Whitespace, lineEnding(s)))
}
