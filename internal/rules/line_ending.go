package rules

import (
	"regexp"
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

var lineBreakRe = regexp.MustCompile(`\r\n|\n`)

type lineEndingOptions struct {
	LineEnding string `json:"line_ending"`
}

// LineEnding converts every line break outside string literals to one style.
type LineEnding struct {
	fixer.Base
	opts lineEndingOptions
}

// NewLineEnding returns the fixer configured for "\n".
func NewLineEnding() *LineEnding {
	f := &LineEnding{}
	_ = f.Configure(nil)
	return f
}

func (*LineEnding) Name() string  { return "line_ending" }
func (*LineEnding) Priority() int { return 0 }

func (*LineEnding) Options() []fixer.Option {
	return []fixer.Option{{
		Name:        "line_ending",
		Description: "line break used in the fixed files",
		Types:       []string{"string"},
		Allowed:     []any{"\n", "\r\n"},
		Default:     "\n",
	}}
}

func (f *LineEnding) Configure(opts map[string]any) error {
	next := lineEndingOptions{LineEnding: "\n"}
	if err := fixer.DecodeOptions(f.Name(), opts, &next); err != nil {
		return err
	}
	if err := fixer.OneOf(f.Name(), "line_ending", []string{next.LineEnding}, "\n", "\r\n"); err != nil {
		return err
	}
	f.opts = next
	return nil
}

func (*LineEnding) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "All PHP files must use same line ending.",
		Samples: []fixer.CodeSample{{Code: "<?php $b = \" $a \r\n 123\"; $a = <<<TEST\r\nAAAAA \r\n |\r\nTEST;\n"}},
	}
}

func (*LineEnding) IsCandidate(*tokens.Stream) bool { return true }

func (f *LineEnding) Apply(_ source.FileMeta, s *tokens.Stream) error {
	eol := f.opts.LineEnding
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		switch t.Kind {
		case token.Whitespace, token.Comment, token.DocComment, token.OpenTag, token.CloseTag:
		case token.StringLit:
			// heredoc и nowdoc целиком один токен, обычные строки не трогаем
			if !strings.HasPrefix(t.Text, "<<<") {
				continue
			}
		default:
			continue
		}
		if !strings.ContainsRune(t.Text, '\n') {
			continue
		}
		if err := s.SetAt(i, token.New(t.Kind, lineBreakRe.ReplaceAllString(t.Text, eol))); err != nil {
			return err
		}
	}
	return nil
}
