package token

import (
	"fmt"
	"strings"
)

// TrailingIndent returns the text after the last line break of a whitespace token.
// "\r\n" and lone "\r" count as line breaks. A token without a line break
// has no indent.
func TrailingIndent(t Token) (string, error) {
	if t.Kind != Whitespace {
		return "", fmt.Errorf("the given token must be whitespace, got %q", t.Kind.String())
	}
	s := t.Text
	if i := strings.LastIndexAny(s, "\r\n"); i >= 0 {
		return s[i+1:], nil
	}
	return "", nil
}

// LineBreaks counts line breaks in s, treating "\r\n" as one.
func LineBreaks(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			n++
		case '\r':
			n++
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		}
	}
	return n
}
