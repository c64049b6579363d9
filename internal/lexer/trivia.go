package lexer

import (
	"bytes"

	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

// scanWhitespace склеивает пробелы, табы и переводы строк в один токен.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	return token.New(token.Whitespace, lx.cursor.TextFrom(start))
}

// scanLineComment: "//..." или "#..." до перевода строки или "?>", перевод строки не входит.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			break
		}
		if b == '?' && lx.cursor.PeekAt(1) == '>' {
			break
		}
		lx.cursor.Bump()
	}
	return token.New(token.Comment, lx.cursor.TextFrom(start))
}

// scanBlockComment: "/* ... */" без вложенности, как в PHP.
// "/**" с последующим пробельным символом: doc-комментарий.
func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	kind := token.Comment
	if lx.cursor.HasPrefix("/**") && isSpace(lx.cursor.PeekAt(3)) {
		kind = token.DocComment
	}
	lx.cursor.Advance(2)
	i := bytes.Index(lx.cursor.Rest(), []byte("*/"))
	if i < 0 {
		lx.cursor.ToEnd()
		lx.report(IssueUnterminatedComment, start, "unterminated comment starting")
		return token.New(kind, lx.cursor.TextFrom(start))
	}
	lx.cursor.Advance(i + 2)
	return token.New(kind, lx.cursor.TextFrom(start))
}
