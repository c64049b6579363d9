package lexer

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

// scanSingleQuoted: '...': из escape-последовательностей только \' и \\.
func (lx *Lexer) scanSingleQuoted() token.Token {
	start := lx.cursor.Mark()
	if !lx.skipSingleQuoted() {
		lx.report(IssueUnterminatedString, start, "unterminated string literal")
	}
	return token.New(token.StringLit, lx.cursor.TextFrom(start))
}

func (lx *Lexer) skipSingleQuoted() bool {
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '\'':
			return true
		}
	}
	return false
}

// scanInterpolated: "..." и `...` целиком, включая {$expr} и ${expr} с вложенными строками.
func (lx *Lexer) scanInterpolated(quote byte) token.Token {
	start := lx.cursor.Mark()
	if !lx.skipInterpolated(quote) {
		lx.report(IssueUnterminatedString, start, "unterminated string literal")
	}
	return token.New(token.StringLit, lx.cursor.TextFrom(start))
}

func (lx *Lexer) skipInterpolated(quote byte) bool {
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		case b == quote:
			lx.cursor.Bump()
			return true
		case b == '{' && lx.cursor.PeekAt(1) == '$':
			lx.skipInterpolationBlock()
		case b == '$' && lx.cursor.PeekAt(1) == '{':
			lx.cursor.Bump()
			lx.skipInterpolationBlock()
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// skipInterpolationBlock стоит на '{' и пропускает блок до парной '}'.
func (lx *Lexer) skipInterpolationBlock() {
	lx.cursor.Bump() // '{'
	depth := 1
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '{':
			depth++
			lx.cursor.Bump()
		case '}':
			lx.cursor.Bump()
			depth--
			if depth == 0 {
				return
			}
		case '\'':
			lx.skipSingleQuoted()
		case '"', '`':
			lx.skipInterpolated(lx.cursor.Peek())
		default:
			lx.cursor.Bump()
		}
	}
}

// heredocAhead проверяет заголовок: <<<[ \t]*("|')?LABEL("|')?\n
func (lx *Lexer) heredocAhead() bool {
	_, _, n := parseHeredocHeader(lx.cursor.Rest())
	return n > 0
}

func parseHeredocHeader(rest []byte) (label string, nowdoc bool, n int) {
	i := 3 // "<<<"
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	var quote byte
	if i < len(rest) && (rest[i] == '"' || rest[i] == '\'') {
		quote = rest[i]
		i++
	}
	ls := i
	if i >= len(rest) || !isIdentStartByte(rest[i]) {
		return "", false, 0
	}
	for i < len(rest) && isIdentContinueByte(rest[i]) {
		i++
	}
	label = string(rest[ls:i])
	if quote != 0 {
		if i >= len(rest) || rest[i] != quote {
			return "", false, 0
		}
		i++
	}
	switch {
	case i+1 < len(rest) && rest[i] == '\r' && rest[i+1] == '\n':
		i += 2
	case i < len(rest) && (rest[i] == '\n' || rest[i] == '\r'):
		i++
	default:
		return "", false, 0
	}
	return label, quote == '\'', i
}

// scanHeredoc читает heredoc/nowdoc целиком до закрывающей метки (PHP 7.3: метка может быть с отступом).
func (lx *Lexer) scanHeredoc() token.Token {
	start := lx.cursor.Mark()
	label, _, n := parseHeredocHeader(lx.cursor.Rest())
	lx.cursor.Advance(n)

	for !lx.cursor.EOF() {
		lineStart := lx.cursor.Mark()
		lx.eatWhile(func(b byte) bool { return b == ' ' || b == '\t' })
		if lx.cursor.HasPrefix(label) && !isIdentContinueByte(lx.cursor.PeekAt(uint32(len(label)))) {
			lx.cursor.Advance(len(label))
			return token.New(token.StringLit, lx.cursor.TextFrom(start))
		}
		lx.cursor.Reset(lineStart)
		lx.eatWhile(func(b byte) bool { return b != '\n' && b != '\r' })
		if lx.cursor.HasPrefix("\r\n") {
			lx.cursor.Advance(2)
		} else {
			lx.cursor.Bump()
		}
	}
	lx.report(IssueUnterminatedHeredoc, start, "unterminated heredoc, missing "+label)
	return token.New(token.StringLit, lx.cursor.TextFrom(start))
}
