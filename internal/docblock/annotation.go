package docblock

import (
	"errors"
	"regexp"
	"slices"
	"strings"
)

// ErrNoTypes is returned by the types accessors of tags that carry no type.
var ErrNoTypes = errors.New("this tag does not support types")

var (
	tagNamePattern = regexp.MustCompile(`@([a-zA-Z0-9_-]+)(?:\s|$)`)
	keepStart      = regexp.MustCompile(`^(\s*/\*\*).*`)
	keepEnd        = regexp.MustCompile(`^(\s*)\S.*(\*/.*)`)
)

var tagsWithTypes = []string{
	"method", "param", "property", "property-read", "property-write",
	"return", "throws", "type", "var",
}

// TagsWithTypes lists the tags whose first word after the name is a type.
func TagsWithTypes() []string { return slices.Clone(tagsWithTypes) }

// Annotation is a tag line of a doc comment together with its
// continuation lines. Lines are shared with the DocBlock, so edits show
// up in DocBlock.Content.
type Annotation struct {
	lines []*Line
	start int
	end   int
	tag   string
}

// NewAnnotation builds a standalone annotation whose first line holds the tag.
func NewAnnotation(lines []*Line) *Annotation { return newAnnotation(lines, 0) }

func newAnnotation(lines []*Line, start int) *Annotation {
	a := &Annotation{lines: lines, start: start, end: start + len(lines) - 1, tag: "other"}
	if len(lines) > 0 {
		if m := tagNamePattern.FindStringSubmatch(lines[0].Content()); m != nil {
			a.tag = m[1]
		}
	}
	return a
}

// Start and End are the line indexes of the annotation in its doc block.
func (a *Annotation) Start() int { return a.start }
func (a *Annotation) End() int   { return a.end }

// Tag returns the tag name without "@", or "other" for an unparsable tag.
func (a *Annotation) Tag() string { return a.tag }

func (a *Annotation) Content() string {
	var b strings.Builder
	for _, l := range a.lines {
		b.WriteString(l.Content())
	}
	return b.String()
}

func (a *Annotation) String() string { return a.Content() }

func (a *Annotation) SupportsTypes() bool { return slices.Contains(tagsWithTypes, a.tag) }

// Types returns the "|"-separated types following the tag name.
func (a *Annotation) Types() ([]string, error) {
	_, text, err := a.typesSpan()
	if err != nil {
		return nil, err
	}
	return splitTypes(text), nil
}

// SetTypes replaces the types in place; the surrounding whitespace and
// description stay untouched.
func (a *Annotation) SetTypes(types []string) error {
	off, text, err := a.typesSpan()
	if err != nil {
		return err
	}
	first := a.lines[0]
	c := first.Content()
	first.SetContent(c[:off] + strings.Join(types, "|") + c[off+len(text):])
	return nil
}

// typesSpan locates the types word on the first line.
func (a *Annotation) typesSpan() (int, string, error) {
	if !a.SupportsTypes() || len(a.lines) == 0 {
		return 0, "", ErrNoTypes
	}
	c := a.lines[0].Content()
	loc := tagNamePattern.FindStringSubmatchIndex(c)
	if loc == nil {
		return 0, "", ErrNoTypes
	}
	off := loc[3]
	for off < len(c) && (c[off] == ' ' || c[off] == '\t') {
		off++
	}
	// пробел внутри array<int, Foo> не завершает тип
	end, depth := off, 0
	for ; end < len(c); end++ {
		switch ch := c[end]; {
		case ch == '<' || ch == '(' || ch == '{':
			depth++
		case ch == '>' || ch == ')' || ch == '}':
			depth--
		case isSpace(ch) && depth <= 0:
			return off, c[off:end], nil
		}
	}
	return off, c[off:end], nil
}

// Remove blanks the annotation lines. A line shared with the comment
// opener or closer keeps that marker.
func (a *Annotation) Remove() {
	for _, l := range a.lines {
		switch {
		case l.IsTheStart() && l.IsTheEnd():
			l.Remove()
		case l.IsTheStart():
			l.SetContent(replaceFirst(keepStart, l.Content(), "$1"))
		case l.IsTheEnd():
			l.SetContent(replaceFirst(keepEnd, l.Content(), "$1$2"))
		default:
			l.Remove()
		}
	}
}

// splitTypes splits on "|" outside of <>, () and {} groups.
func splitTypes(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	depth, from := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '<', '(', '{':
			depth++
		case '>', ')', '}':
			depth--
		case '|':
			if depth == 0 {
				out = append(out, text[from:i])
				from = i + 1
			}
		}
	}
	return append(out, text[from:])
}

func replaceFirst(re *regexp.Regexp, s, tmpl string) string {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return s
	}
	return s[:m[0]] + string(re.ExpandString(nil, tmpl, s, m)) + s[m[1]:]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
