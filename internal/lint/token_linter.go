package lint

import (
	"context"
	"fmt"
	"os"

	"github.com/pilgerone/PHP-CS-Fixer/internal/lexer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// TokenLinter is the in-process linter. It does not parse PHP; it rejects
// what the token layer can see: unterminated literals and comments,
// unbalanced brackets and statement keywords in expression position.
type TokenLinter struct{}

func (TokenLinter) IsAsync() bool { return false }

func (l TokenLinter) LintFile(ctx context.Context, path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Done(fmt.Errorf("lint: %w", err))
	}
	return l.LintSource(ctx, data)
}

func (TokenLinter) LintSource(_ context.Context, src []byte) Result {
	return Done(lintTokens(src))
}

// statementKeywords встречаются только в начале инструкции.
var statementKeywords = []string{"echo", "return", "break", "continue", "global", "goto"}

func lintTokens(src []byte) error {
	var issues lexer.Collector
	toks := lexer.Tokenize(src, lexer.Options{Reporter: &issues})
	file := source.New("", src)
	if len(issues.Issues) > 0 {
		first := issues.Issues[0]
		return &LintingError{Msg: "syntax error, " + first.Msg, Line: int(file.Position(first.Offset).Line)}
	}

	offsets := make([]int, len(toks))
	off := 0
	for i, t := range toks {
		offsets[i] = off
		off += len(t.Text)
	}
	lineOf := func(i int) int { return int(file.Position(offsets[i]).Line) }

	s := tokens.FromTokens(toks)
	if bad := s.Unmatched(); len(bad) > 0 {
		// лишняя закрывающая скобка важнее незакрытой открывающей
		for _, i := range bad {
			if s.At(i).Kind.IsCloser() {
				return &LintingError{Msg: fmt.Sprintf("syntax error, unexpected '%s'", s.At(i).Text), Line: lineOf(i)}
			}
		}
		i := bad[0]
		return &LintingError{Msg: fmt.Sprintf("syntax error, unclosed '%s'", s.At(i).Text), Line: lineOf(i)}
	}

	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if !t.IsKeyword(statementKeywords...) {
			continue
		}
		prev := s.PrevMeaningful(i)
		if prev < 0 || startsStatement(s.At(prev)) {
			continue
		}
		kw := lower(t.Text)
		return &LintingError{
			Msg:  fmt.Sprintf("syntax error, unexpected '%s' (T_%s)", kw, upper(kw)),
			Line: lineOf(i),
		}
	}
	return nil
}

// startsStatement reports whether a statement may begin right after t.
func startsStatement(t token.Token) bool {
	switch t.Kind {
	case token.Semicolon, token.LBrace, token.RBrace, token.RParen,
		token.OpenTag, token.CloseTag, token.InlineHTML:
		return true
	}
	return t.IsOp(":") || t.IsKeyword("else", "do")
}
