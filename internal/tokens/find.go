package tokens

import (
	"iter"
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

// Direction of a search.
type Direction int8

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Matcher matches a single token. Empty Text matches any text of the kind.
type Matcher struct {
	Kind token.Kind
	Text string
	Fold bool // сравнение Text без учёта регистра
}

// Match reports whether t satisfies m.
func (m Matcher) Match(t token.Token) bool {
	if t.Kind != m.Kind {
		return false
	}
	switch {
	case m.Text == "":
		return true
	case m.Fold:
		return strings.EqualFold(t.Text, m.Text)
	default:
		return t.Text == m.Text
	}
}

// Kind matches any token of kind k.
func Kind(k token.Kind) Matcher { return Matcher{Kind: k} }

// Tok matches kind and exact text.
func Tok(k token.Kind, text string) Matcher { return Matcher{Kind: k, Text: text} }

// Keyword matches a keyword regardless of case.
func Keyword(word string) Matcher { return Matcher{Kind: token.Keyword, Text: word, Fold: true} }

// Op matches an operator.
func Op(op string) Matcher { return Matcher{Kind: token.Operator, Text: op} }

// Sequence is a token shape; whitespace and comments between elements are skipped.
type Sequence []Matcher

// Find yields, lazily, the index of the first token of every occurrence of seq,
// scanning from start in dir. The scan reads the stream as it is at each step,
// so a caller may mutate tokens at or behind the yielded index.
func (s *Stream) Find(seq Sequence, start int, dir Direction) iter.Seq[int] {
	return func(yield func(int) bool) {
		if len(seq) == 0 {
			return
		}
		for i := start; i >= 0 && i < len(s.toks); i += int(dir) {
			if s.matchesAt(seq, i) && !yield(i) {
				return
			}
		}
	}
}

// FindFirst returns the first match of seq from start in dir, or -1.
func (s *Stream) FindFirst(seq Sequence, start int, dir Direction) int {
	for i := range s.Find(seq, start, dir) {
		return i
	}
	return -1
}

// SequenceEnd returns the index of the last token of seq matched at i, or -1.
func (s *Stream) SequenceEnd(seq Sequence, i int) int {
	if !s.matchesAt(seq, i) {
		return -1
	}
	j := i
	for range seq[1:] {
		j = s.NextMeaningful(j)
	}
	return j
}

func (s *Stream) matchesAt(seq Sequence, i int) bool {
	if !seq[0].Match(s.toks[i]) {
		return false
	}
	j := i
	for _, m := range seq[1:] {
		j = s.NextMeaningful(j)
		if j < 0 || !m.Match(s.toks[j]) {
			return false
		}
	}
	return true
}

// NextMeaningful returns the next index after i that is neither whitespace
// nor comment, or -1.
func (s *Stream) NextMeaningful(i int) int {
	for j := i + 1; j < len(s.toks); j++ {
		if s.toks[j].IsMeaningful() {
			return j
		}
	}
	return -1
}

// PrevMeaningful returns the previous index before i that is neither
// whitespace nor comment, or -1.
func (s *Stream) PrevMeaningful(i int) int {
	for j := min(i, len(s.toks)) - 1; j >= 0; j-- {
		if s.toks[j].IsMeaningful() {
			return j
		}
	}
	return -1
}

// NextOfKind returns the next index after i with one of the kinds, or -1.
func (s *Stream) NextOfKind(i int, kinds ...token.Kind) int {
	for j := i + 1; j < len(s.toks); j++ {
		for _, k := range kinds {
			if s.toks[j].Kind == k {
				return j
			}
		}
	}
	return -1
}

// IsWhitespaceAt reports whether i is in range and holds whitespace.
func (s *Stream) IsWhitespaceAt(i int) bool {
	return i >= 0 && i < len(s.toks) && s.toks[i].IsWhitespace()
}
