package rules

import (
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// NoTrailingWhitespace removes spaces and tabs at the end of lines.
type NoTrailingWhitespace struct{ fixer.Base }

func (*NoTrailingWhitespace) Name() string  { return "no_trailing_whitespace" }
func (*NoTrailingWhitespace) Priority() int { return 0 }

func (*NoTrailingWhitespace) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "Remove trailing whitespace at the end of non-blank lines.",
		Samples: []fixer.CodeSample{{Code: "<?php\n$a = 1;     \n"}},
	}
}

func (*NoTrailingWhitespace) IsCandidate(s *tokens.Stream) bool {
	return s.HasAnyKind(token.Whitespace, token.Comment)
}

func (*NoTrailingWhitespace) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := s.Len() - 1; i >= 0; i-- {
		t := s.At(i)
		switch {
		case t.Kind == token.OpenTag:
			if err := trimOpenTag(s, i); err != nil {
				return err
			}
		case t.Kind == token.Comment && !strings.HasPrefix(t.Text, "/*"):
			if err := s.SetAt(i, token.New(token.Comment, strings.TrimRight(t.Text, " \t"))); err != nil {
				return err
			}
		case t.IsWhitespace():
			if err := trimWhitespace(s, i); err != nil {
				return err
			}
		}
	}
	return nil
}

// trimOpenTag moves "<?php " + "\n..." to "<?php\n" + "...".
func trimOpenTag(s *tokens.Stream, i int) error {
	t := s.At(i)
	body := strings.TrimRight(t.Text, " \t")
	if body == t.Text || !s.IsWhitespaceAt(i+1) {
		return nil
	}
	ws := s.At(i + 1).Text
	brk := firstLineBreak(ws)
	if brk == "" || !strings.HasPrefix(ws, brk) {
		return nil
	}
	if err := s.SetAt(i, token.New(token.OpenTag, body+brk)); err != nil {
		return err
	}
	if rest := ws[len(brk):]; rest != "" {
		return s.SetAt(i+1, token.New(token.Whitespace, rest))
	}
	return s.RemoveAt(i + 1)
}

func trimWhitespace(s *tokens.Stream, i int) error {
	t := s.At(i)
	segs := splitLineBreaks(t.Text)
	atEOF := i == s.Len()-1
	if len(segs) == 1 && !atEOF {
		return nil
	}
	afterTagLine := i > 0 && s.At(i-1).Kind == token.OpenTag && firstLineBreak(s.At(i-1).Text) != ""
	var b strings.Builder
	for k, seg := range segs {
		body, brk := splitBreak(seg)
		switch {
		case k == 0 && !afterTagLine:
			body = strings.TrimRight(body, " \t")
		case k > 0 && strings.TrimRight(body, " \t") != "":
			body = strings.TrimRight(body, " \t")
		}
		b.WriteString(body)
		b.WriteString(brk)
	}
	if b.Len() == 0 {
		return s.RemoveAt(i)
	}
	return s.SetAt(i, token.New(token.Whitespace, b.String()))
}
