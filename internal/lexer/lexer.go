package lexer

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

// Lexer splits PHP source into tokens. Every byte ends up in exactly one token.
type Lexer struct {
	cursor Cursor
	opts   Options
	inPHP  bool
	last   token.Token // последний значимый токен, нужен для "$a->list"
}

func New(src []byte, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(src),
		opts:   opts,
	}
}

// Tokenize lexes the whole source.
func Tokenize(src []byte, opts Options) []token.Token {
	lx := New(src, opts)
	out := make([]token.Token, 0, len(src)/4+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// Next возвращает следующий токен; ok=false после конца входа.
func (lx *Lexer) Next() (token.Token, bool) {
	if lx.cursor.EOF() {
		return token.Token{}, false
	}
	var tok token.Token
	if lx.inPHP {
		tok = lx.scanPHP()
	} else {
		tok = lx.scanHTML()
	}
	if tok.IsMeaningful() {
		lx.last = tok
	}
	return tok, true
}

func (lx *Lexer) scanPHP() token.Token {
	ch := lx.cursor.Peek()

	switch {
	case isSpace(ch):
		return lx.scanWhitespace()

	case ch == '?' && lx.cursor.HasPrefix("?>"):
		return lx.scanCloseTag()

	case ch == '#' && lx.cursor.PeekAt(1) != '[':
		return lx.scanLineComment()

	case ch == '/' && lx.cursor.PeekAt(1) == '/':
		return lx.scanLineComment()

	case ch == '/' && lx.cursor.PeekAt(1) == '*':
		return lx.scanBlockComment()

	case ch == '$' && isIdentStartByte(lx.cursor.PeekAt(1)):
		return lx.scanVariable()

	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()

	case ch == '\'':
		return lx.scanSingleQuoted()

	case ch == '"' || ch == '`':
		return lx.scanInterpolated(ch)

	case ch == '<' && lx.cursor.HasPrefix("<<<") && lx.heredocAhead():
		return lx.scanHeredoc()

	case ch == '(':
		if tok, ok := lx.scanCast(); ok {
			return tok
		}
		return lx.scanOperatorOrPunct()

	default:
		return lx.scanOperatorOrPunct()
	}
}
