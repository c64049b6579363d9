package token

import "strings"

var keywords = map[string]struct{}{
	"abstract": {}, "and": {}, "array": {}, "as": {}, "break": {}, "callable": {},
	"case": {}, "catch": {}, "class": {}, "clone": {}, "const": {}, "continue": {},
	"declare": {}, "default": {}, "do": {}, "echo": {}, "else": {}, "elseif": {},
	"empty": {}, "enddeclare": {}, "endfor": {}, "endforeach": {}, "endif": {},
	"endswitch": {}, "endwhile": {}, "enum": {}, "eval": {}, "exit": {}, "die": {},
	"extends": {}, "final": {}, "finally": {}, "fn": {}, "for": {}, "foreach": {},
	"function": {}, "global": {}, "goto": {}, "if": {}, "implements": {},
	"include": {}, "include_once": {}, "instanceof": {}, "insteadof": {},
	"interface": {}, "isset": {}, "list": {}, "match": {}, "namespace": {},
	"new": {}, "or": {}, "print": {}, "private": {}, "protected": {}, "public": {},
	"readonly": {}, "require": {}, "require_once": {}, "return": {}, "static": {},
	"switch": {}, "throw": {}, "trait": {}, "try": {}, "unset": {}, "use": {},
	"var": {}, "while": {}, "xor": {}, "yield": {},
}

// LookupKeyword reports whether ident is a PHP keyword and returns its lower-case form.
// PHP keywords are case-insensitive, so "RETURN" and "Return" both match.
func LookupKeyword(ident string) (string, bool) {
	lower := strings.ToLower(ident)
	_, ok := keywords[lower]
	return lower, ok
}
