// Package docblock models a /** */ comment as lines and annotations so
// phpdoc fixers can edit tags without reparsing the comment text.
package docblock

import (
	"regexp"
	"strings"
)

var (
	tagPattern    = regexp.MustCompile(`\s@\S`)
	usefulPattern = regexp.MustCompile(`\*\s*\S`)
	markerStrip   = strings.NewReplacer("/", " ", "*", " ")
)

// Line is one line of a doc comment, line break included.
type Line struct {
	content string
}

// NewLine wraps content as a line.
func NewLine(content string) *Line { return &Line{content: content} }

func (l *Line) Content() string     { return l.content }
func (l *Line) SetContent(c string) { l.content = c }
func (l *Line) Remove()             { l.content = "" }
func (l *Line) ContainsATag() bool  { return tagPattern.MatchString(l.content) }
func (l *Line) IsTheStart() bool    { return strings.Contains(l.content, "/**") }
func (l *Line) IsTheEnd() bool      { return strings.Contains(l.content, "*/") }
func (l *Line) String() string      { return l.content }

// ContainsUsefulContent reports whether the line carries text besides the
// comment markers and whitespace.
func (l *Line) ContainsUsefulContent() bool {
	return usefulPattern.MatchString(l.content) &&
		strings.TrimSpace(markerStrip.Replace(l.content)) != ""
}
