package lexer

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 017, 1.0, .5, 1e-3, 1_000.
// Неверные формы не репортим: лексер тотален, синтаксис проверяет линтер.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		switch lowerASCII(lx.cursor.PeekAt(1)) {
		case 'x':
			lx.cursor.Advance(2)
			lx.eatWhile(func(b byte) bool { return isHex(b) || b == '_' })
			return token.New(token.Number, lx.cursor.TextFrom(start))
		case 'b':
			lx.cursor.Advance(2)
			lx.eatWhile(func(b byte) bool { return b == '0' || b == '1' || b == '_' })
			return token.New(token.Number, lx.cursor.TextFrom(start))
		case 'o':
			lx.cursor.Advance(2)
			lx.eatWhile(func(b byte) bool { return (b >= '0' && b <= '7') || b == '_' })
			return token.New(token.Number, lx.cursor.TextFrom(start))
		}
	}

	lx.eatWhile(isDecOrUnderscore)

	// дробная часть; "1..2" в PHP не бывает, а "1..": это 1. и оператор
	if lx.cursor.Peek() == '.' && !lx.cursor.HasPrefix("...") {
		lx.cursor.Bump()
		lx.eatWhile(isDecOrUnderscore)
	}

	// экспонента только если за ней действительно цифра
	if lowerASCII(lx.cursor.Peek()) == 'e' {
		n := uint32(1)
		if b := lx.cursor.PeekAt(1); b == '+' || b == '-' {
			n = 2
		}
		if isDec(lx.cursor.PeekAt(n)) {
			lx.cursor.Advance(int(n))
			lx.eatWhile(isDecOrUnderscore)
		}
	}
	return token.New(token.Number, lx.cursor.TextFrom(start))
}

func (lx *Lexer) eatWhile(pred func(byte) bool) {
	for !lx.cursor.EOF() && pred(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
