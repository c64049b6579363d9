package rules

import (
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// BlankLineAfterOpeningTag moves code off the open tag line and separates it with a blank line.
type BlankLineAfterOpeningTag struct{ fixer.Base }

func (*BlankLineAfterOpeningTag) Name() string  { return "blank_line_after_opening_tag" }
func (*BlankLineAfterOpeningTag) Priority() int { return 1 }

func (*BlankLineAfterOpeningTag) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "Ensure there is no code on the same line as the PHP open tag and it is followed by a blank line.",
		Samples: []fixer.CodeSample{{Code: "<?php $a = 1;\n$b = 1;\n"}},
	}
}

func (*BlankLineAfterOpeningTag) IsCandidate(s *tokens.Stream) bool {
	return isMonolithic(s) && s.Len() > 1
}

func (*BlankLineAfterOpeningTag) Apply(_ source.FileMeta, s *tokens.Stream) error {
	eol := lineEnding(s)
	tag := s.At(0)
	if !strings.HasSuffix(tag.Text, "\n") && !strings.HasSuffix(tag.Text, "\r") {
		if err := s.SetAt(0, token.New(token.OpenTag, strings.TrimRight(tag.Text, " \t")+eol)); err != nil {
			return err
		}
	}
	next := s.At(1)
	if !next.IsWhitespace() {
		return s.InsertAt(1, token.New(token.Whitespace, eol))
	}
	if token.LineBreaks(next.Text) == 0 {
		return s.SetAt(1, token.New(token.Whitespace, eol))
	}
	return nil
}
