package docblock

import (
	"slices"
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
)

// DocBlock is a doc comment split into lines with the annotations found
// among them.
type DocBlock struct {
	lines       []*Line
	annotations []*Annotation
}

// New parses the text of a DocComment token.
func New(content string) *DocBlock {
	d := &DocBlock{}
	for _, l := range source.SplitLines(content) {
		d.lines = append(d.lines, NewLine(l))
	}
	for i := 0; i < len(d.lines); i++ {
		if !d.lines[i].ContainsATag() {
			continue
		}
		n := d.annotationLength(i)
		a := newAnnotation(d.lines[i:i+n:i+n], i)
		d.annotations = append(d.annotations, a)
		i = a.End()
	}
	return d
}

// annotationLength counts the lines of the annotation starting at start:
// the tag line plus continuation lines. A blank line ends it unless
// more untagged text follows.
func (d *DocBlock) annotationLength(start int) int {
	i := start + 1
	for ; i < len(d.lines); i++ {
		l := d.lines[i]
		if l.ContainsATag() {
			break
		}
		if !l.ContainsUsefulContent() {
			next := d.Line(i + 1)
			if next == nil || !next.ContainsUsefulContent() || next.ContainsATag() {
				break
			}
		}
	}
	return i - start
}

func (d *DocBlock) Lines() []*Line { return slices.Clone(d.lines) }

// Line returns the line at i or nil when out of range.
func (d *DocBlock) Line(i int) *Line {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	return d.lines[i]
}

func (d *DocBlock) Annotations() []*Annotation { return slices.Clone(d.annotations) }

// Annotation returns the i-th annotation or nil.
func (d *DocBlock) Annotation(i int) *Annotation {
	if i < 0 || i >= len(d.annotations) {
		return nil
	}
	return d.annotations[i]
}

// AnnotationsOfType returns the annotations whose tag is one of tags.
func (d *DocBlock) AnnotationsOfType(tags ...string) []*Annotation {
	var out []*Annotation
	for _, a := range d.annotations {
		if slices.Contains(tags, a.Tag()) {
			out = append(out, a)
		}
	}
	return out
}

// Content joins the lines back into comment text.
func (d *DocBlock) Content() string {
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(l.Content())
	}
	return b.String()
}

func (d *DocBlock) String() string { return d.Content() }
