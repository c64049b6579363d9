package rules

import (
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// NoWhitespaceInBlankLine empties lines that hold only spaces and tabs.
type NoWhitespaceInBlankLine struct{ fixer.Base }

func (*NoWhitespaceInBlankLine) Name() string  { return "no_whitespace_in_blank_line" }
func (*NoWhitespaceInBlankLine) Priority() int { return -19 }

func (*NoWhitespaceInBlankLine) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "Remove trailing whitespace at the end of blank lines.",
		Samples: []fixer.CodeSample{{Code: "<?php\n   \n$a = 1;\n"}},
	}
}

func (*NoWhitespaceInBlankLine) IsCandidate(s *tokens.Stream) bool {
	return s.HasKind(token.Whitespace)
}

func (*NoWhitespaceInBlankLine) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := s.Len() - 1; i >= 0; i-- {
		if !s.IsWhitespaceAt(i) {
			continue
		}
		if err := clearBlankLines(s, i); err != nil {
			return err
		}
	}
	return nil
}

func clearBlankLines(s *tokens.Stream, i int) error {
	segs := splitLineBreaks(s.At(i).Text)
	atEOF := i == s.Len()-1
	startsLine := i > 0 && s.At(i-1).Kind == token.OpenTag && firstLineBreak(s.At(i-1).Text) != ""
	if len(segs) == 1 && !(atEOF && startsLine) {
		return nil
	}
	var b strings.Builder
	last := len(segs) - 1
	for k, seg := range segs {
		body, brk := splitBreak(seg)
		// первая строка начинается с кода, последняя это отступ следующей
		whole := (k > 0 || startsLine) && (k < last || atEOF)
		if whole && strings.Trim(body, " \t") == "" {
			body = ""
		}
		b.WriteString(body)
		b.WriteString(brk)
	}
	if b.Len() == 0 {
		return s.RemoveAt(i)
	}
	return s.SetAt(i, token.New(token.Whitespace, b.String()))
}
