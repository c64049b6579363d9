package rules

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// SingleBlankLineAtEOF ends a file without a closing tag with exactly one line break.
type SingleBlankLineAtEOF struct{ fixer.Base }

func (*SingleBlankLineAtEOF) Name() string  { return "single_blank_line_at_eof" }
func (*SingleBlankLineAtEOF) Priority() int { return -50 }

func (*SingleBlankLineAtEOF) Definition() fixer.Definition {
	return fixer.Definition{
		Summary:     "A PHP file without end tag must always end with a single empty line feed.",
		Description: "Files ending with inline HTML or a closing tag are left alone.",
		Samples:     []fixer.CodeSample{{Code: "<?php\n$a = 1;"}, {Code: "<?php\n$a = 1;\n\n"}},
	}
}

func (*SingleBlankLineAtEOF) IsCandidate(s *tokens.Stream) bool { return s.Len() > 0 }

func (*SingleBlankLineAtEOF) Apply(_ source.FileMeta, s *tokens.Stream) error {
	last := s.Len() - 1
	switch s.At(last).Kind {
	case token.InlineHTML, token.CloseTag, token.OpenTag, token.OpenTagWithEcho:
		return nil
	}
	eol := lineEnding(s)
	if s.At(last).IsWhitespace() {
		return s.SetAt(last, token.New(token.Whitespace, eol))
	}
	return s.InsertAt(last+1, token.New(token.Whitespace, eol))
}
