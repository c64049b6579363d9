package lexer

import (
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
var (
	ops3 = []string{"<=>", "===", "!==", "**=", "...", "<<=", ">>=", "??=", "?->"}
	ops2 = []string{
		"++", "--", "->", "=>", "::", "==", "!=", "<>", "<=", ">=", "&&", "||", "??",
		"+=", "-=", "*=", "/=", ".=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
	}
)

var castTypes = map[string]struct{}{
	"int": {}, "integer": {}, "bool": {}, "boolean": {}, "float": {}, "double": {},
	"real": {}, "string": {}, "array": {}, "object": {}, "unset": {}, "binary": {},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return token.New(k, lx.cursor.TextFrom(start))
	}

	for _, op := range ops3 {
		if lx.cursor.HasPrefix(op) {
			lx.cursor.Advance(3)
			return emit(token.Operator)
		}
	}
	for _, op := range ops2 {
		if lx.cursor.HasPrefix(op) {
			lx.cursor.Advance(2)
			return emit(token.Operator)
		}
	}

	// односимвольные
	ch := lx.cursor.Bump()
	switch ch {
	case ';':
		return emit(token.Semicolon)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '^', '~',
		'?', ':', '.', ',', '@', '\\', '$', '#':
		return emit(token.Operator)
	default:
		return emit(token.Other)
	}
}

// scanCast распознаёт "(int)", "( string )" и т.п.; внутри допускаются только пробелы и табы.
func (lx *Lexer) scanCast() (token.Token, bool) {
	rest := lx.cursor.Rest()
	i := 1
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	ws := i
	for i < len(rest) && ((rest[i] >= 'a' && rest[i] <= 'z') || (rest[i] >= 'A' && rest[i] <= 'Z')) {
		i++
	}
	if _, ok := castTypes[strings.ToLower(string(rest[ws:i]))]; !ok {
		return token.Token{}, false
	}
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	if i >= len(rest) || rest[i] != ')' {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	lx.cursor.Advance(i + 1)
	return token.New(token.Cast, lx.cursor.TextFrom(start)), true
}
