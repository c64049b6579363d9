package lexer

import (
	"bytes"

	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

// scanHTML читает всё до открывающего тега; сам тег отдаётся отдельным токеном.
func (lx *Lexer) scanHTML() token.Token {
	if tok, ok := lx.scanOpenTag(); ok {
		return tok
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		i := bytes.Index(lx.cursor.Rest(), []byte("<?"))
		if i < 0 {
			lx.cursor.ToEnd()
			break
		}
		lx.cursor.Advance(i)
		if lx.openTagLen() > 0 {
			break
		}
		lx.cursor.Advance(2)
	}
	return token.New(token.InlineHTML, lx.cursor.TextFrom(start))
}

// openTagLen returns the length of an opening tag at the cursor, 0 if none.
func (lx *Lexer) openTagLen() int {
	n, _ := lx.openTagAt()
	return n
}

func (lx *Lexer) openTagAt() (n int, echo bool) {
	if !lx.cursor.HasPrefix("<?") {
		return 0, false
	}
	if lx.cursor.HasPrefix("<?=") {
		return 3, true
	}
	if lx.cursor.HasPrefixFold("<?php") {
		if lx.cursor.Off+5 >= lx.cursor.Limit {
			return 5, false
		}
		if isSpace(lx.cursor.PeekAt(5)) {
			return 5 + newlineOrBlankLen(lx.cursor.Rest()[5:]), false
		}
	}
	if lx.opts.NoShortTags {
		return 0, false
	}
	// короткий тег "<?": только если за ним пробел или конец ("<?xml" остаётся HTML)
	if lx.cursor.Off+2 < lx.cursor.Limit && !isSpace(lx.cursor.PeekAt(2)) {
		return 0, false
	}
	return 2 + newlineOrBlankLen(lx.cursor.Rest()[2:]), false
}

func (lx *Lexer) scanOpenTag() (token.Token, bool) {
	n, echo := lx.openTagAt()
	if n == 0 {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	lx.cursor.Advance(n)
	lx.inPHP = true
	kind := token.OpenTag
	if echo {
		kind = token.OpenTagWithEcho
	}
	return token.New(kind, lx.cursor.TextFrom(start)), true
}

func (lx *Lexer) scanCloseTag() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2)
	switch {
	case lx.cursor.HasPrefix("\r\n"):
		lx.cursor.Advance(2)
	case lx.cursor.Peek() == '\n':
		lx.cursor.Bump()
	}
	lx.inPHP = false
	return token.New(token.CloseTag, lx.cursor.TextFrom(start))
}

// newlineOrBlankLen: после "<?php" в тег входит ровно один пробельный символ ("\r\n" считается одним).
func newlineOrBlankLen(rest []byte) int {
	switch {
	case len(rest) >= 2 && rest[0] == '\r' && rest[1] == '\n':
		return 2
	case len(rest) >= 1 && isSpace(rest[0]):
		return 1
	default:
		return 0
	}
}
