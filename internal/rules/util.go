package rules

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// cases.Caser хранит состояние, поэтому каждый вызов берёт свой.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// lineEnding picks the line break style of the stream: the first one found
// in whitespace, "\n" when there is none.
func lineEnding(s *tokens.Stream) string {
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if t.Kind != token.Whitespace && t.Kind != token.OpenTag {
			continue
		}
		if j := strings.IndexAny(t.Text, "\r\n"); j >= 0 {
			if strings.HasPrefix(t.Text[j:], "\r\n") {
				return "\r\n"
			}
			return t.Text[j : j+1]
		}
	}
	return "\n"
}

// firstLineBreak returns the first line break of text, "" if none.
func firstLineBreak(text string) string {
	j := strings.IndexAny(text, "\r\n")
	if j < 0 {
		return ""
	}
	if strings.HasPrefix(text[j:], "\r\n") {
		return "\r\n"
	}
	return text[j : j+1]
}

// splitLineBreaks splits text into segments, each ending with its line break
// except the last one.
func splitLineBreaks(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			out = append(out, text[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			out = append(out, text[start:i+1])
			start = i + 1
		}
	}
	return append(out, text[start:])
}

// splitBreak separates a segment into content and its trailing line break.
func splitBreak(seg string) (body, brk string) {
	switch {
	case strings.HasSuffix(seg, "\r\n"):
		return seg[:len(seg)-2], "\r\n"
	case strings.HasSuffix(seg, "\n"), strings.HasSuffix(seg, "\r"):
		return seg[:len(seg)-1], seg[len(seg)-1:]
	default:
		return seg, ""
	}
}

// isMonolithic reports whether the stream is a single PHP block: one open
// tag at index 0 and no inline HTML.
func isMonolithic(s *tokens.Stream) bool {
	if s.Len() == 0 || s.At(0).Kind != token.OpenTag {
		return false
	}
	if s.HasKind(token.InlineHTML) || s.HasKind(token.OpenTagWithEcho) {
		return false
	}
	tags := 0
	for i := 0; i < s.Len(); i++ {
		if s.At(i).Kind == token.OpenTag {
			tags++
		}
	}
	return tags == 1
}

// enclosingOpeners returns, for every index, the kind of the innermost
// opener enclosing it (token.Other at top level).
func enclosingOpeners(s *tokens.Stream) []token.Kind {
	out := make([]token.Kind, s.Len())
	var stack []token.Kind
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if t.Kind.IsCloser() && len(stack) > 0 {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			out[i] = stack[len(stack)-1]
		} else {
			out[i] = token.Other
		}
		if t.Kind.IsOpener() {
			stack = append(stack, t.Kind)
		}
	}
	return out
}

// isFunctionCallName reports whether the identifier at i names a global
// function call: followed by "(", not a method, static call, constructor,
// declaration or namespaced name.
func isFunctionCallName(s *tokens.Stream, i int) bool {
	next := s.NextMeaningful(i)
	if next < 0 || s.At(next).Kind != token.LParen {
		return false
	}
	prev := s.PrevMeaningful(i)
	if prev < 0 {
		return true
	}
	pt := s.At(prev)
	switch {
	case pt.IsOp("->"), pt.IsOp("?->"), pt.IsOp("::"):
		return false
	case pt.IsKeyword("new", "function", "const", "fn"):
		return false
	case pt.IsOp("&"):
		// function &foo()
		if pp := s.PrevMeaningful(prev); pp >= 0 && s.At(pp).IsKeyword("function", "fn") {
			return false
		}
	case pt.IsOp("\\"):
		// "\foo()": глобальная функция, "A\foo()": нет
		pp := s.PrevMeaningful(prev)
		if pp >= 0 {
			ppt := s.At(pp)
			if ppt.Kind == token.Ident || ppt.IsKeyword("namespace") {
				return false
			}
		}
	}
	return true
}
