package lexer

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

// scanIdentOrKeyword читает имя; байты >= 0x80 допустимы, как и в PHP.
// После "->", "?->" и "::" ключевые слова становятся обычными именами ($a->list, Foo::class).
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(start)
	if _, ok := token.LookupKeyword(text); ok && !lx.afterMemberAccess() {
		return token.New(token.Keyword, text)
	}
	return token.New(token.Ident, text)
}

func (lx *Lexer) afterMemberAccess() bool {
	return lx.last.IsOp("->") || lx.last.IsOp("?->") || lx.last.IsOp("::")
}

// scanVariable: "$name".
func (lx *Lexer) scanVariable() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	for isIdentContinueByte(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	return token.New(token.Variable, lx.cursor.TextFrom(start))
}
