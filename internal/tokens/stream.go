package tokens

import (
	"slices"
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/lexer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

// Stream is the token sequence of one file plus its block map.
// A Stream is not safe for concurrent use.
type Stream struct {
	toks    []token.Token
	pair    []int // индекс парной скобки или noPair
	dirty   bool  // pair устарел, пересобрать при следующем запросе
	changed bool
	rev     uint64
	kinds   [token.KindCount]int
}

// New lexes src into a stream.
func New(src string) *Stream {
	return FromTokens(lexer.Tokenize([]byte(src), lexer.Options{}))
}

// FromTokens builds a stream over a copy of toks.
func FromTokens(toks []token.Token) *Stream {
	s := &Stream{toks: slices.Clone(toks)}
	s.pair = buildPairs(s.toks)
	for _, t := range s.toks {
		s.kinds[t.Kind]++
	}
	return s
}

// Len returns the number of tokens.
func (s *Stream) Len() int { return len(s.toks) }

// At returns the token at i. An out-of-range index panics with a
// *StructuralError so the runner aborts the run instead of reporting a
// per-file exception.
func (s *Stream) At(i int) token.Token {
	if i < 0 || i >= len(s.toks) {
		panic(structuralErr("at", i, "index out of range [0,%d)", len(s.toks)))
	}
	return s.toks[i]
}

// Tokens returns a copy of the tokens.
func (s *Stream) Tokens() []token.Token { return slices.Clone(s.toks) }

// Revision is a counter bumped by every effective mutation.
func (s *Stream) Revision() uint64 { return s.rev }

// Source concatenates token texts.
func (s *Stream) Source() string {
	n := 0
	for _, t := range s.toks {
		n += len(t.Text)
	}
	var sb strings.Builder
	sb.Grow(n)
	for _, t := range s.toks {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// DrainChanged returns the changed flag and clears it.
func (s *Stream) DrainChanged() bool {
	c := s.changed
	s.changed = false
	return c
}

// HasKind reports whether at least one token has kind k.
func (s *Stream) HasKind(k token.Kind) bool { return s.kinds[k] > 0 }

// HasAnyKind reports whether any of the kinds is present.
func (s *Stream) HasAnyKind(ks ...token.Kind) bool {
	for _, k := range ks {
		if s.kinds[k] > 0 {
			return true
		}
	}
	return false
}

// HasAllKinds reports whether every one of the kinds is present.
func (s *Stream) HasAllKinds(ks ...token.Kind) bool {
	for _, k := range ks {
		if s.kinds[k] == 0 {
			return false
		}
	}
	return true
}

// MatchOf returns the index paired with the structural token at i.
func (s *Stream) MatchOf(i int) (int, error) {
	if i < 0 || i >= len(s.toks) {
		return 0, structuralErr("matchOf", i, "index out of range [0,%d)", len(s.toks))
	}
	if !s.toks[i].IsStructural() {
		return 0, structuralErr("matchOf", i, "%s is not a structural token", s.toks[i].Kind)
	}
	s.ensurePairs()
	if s.pair[i] == noPair {
		return 0, structuralErr("matchOf", i, "%s %q has no match", s.toks[i].Kind, s.toks[i].Text)
	}
	return s.pair[i], nil
}

// Unmatched returns indices of structural tokens without a partner.
func (s *Stream) Unmatched() []int {
	s.ensurePairs()
	var out []int
	for i, t := range s.toks {
		if t.IsStructural() && s.pair[i] == noPair {
			out = append(out, i)
		}
	}
	return out
}

func (s *Stream) ensurePairs() {
	if s.dirty {
		s.pair = buildPairs(s.toks)
		s.dirty = false
	}
}

// InsertAt inserts toks before index i (i == Len() appends).
func (s *Stream) InsertAt(i int, toks ...token.Token) error {
	if i < 0 || i > len(s.toks) {
		return structuralErr("insertAt", i, "index out of range [0,%d]", len(s.toks))
	}
	if len(toks) == 0 {
		return nil
	}
	for _, t := range toks {
		if t.Text == "" {
			return structuralErr("insertAt", i, "empty %s token", t.Kind)
		}
	}
	s.toks = slices.Insert(s.toks, i, toks...)
	for _, t := range toks {
		s.kinds[t.Kind]++
	}

	// локальный ремонт: вставленный кусок сбалансирован сам по себе
	if local, ok := balanced(toks); ok && !s.dirty {
		n := len(toks)
		for j, p := range s.pair {
			if p >= i {
				s.pair[j] = p + n
			}
		}
		for j := range local {
			if local[j] != noPair {
				local[j] += i
			}
		}
		s.pair = slices.Insert(s.pair, i, local...)
	} else {
		s.dirty = true
	}
	s.touch()
	return nil
}

// RemoveRange removes tokens in [from, to).
func (s *Stream) RemoveRange(from, to int) error {
	if from < 0 || to > len(s.toks) || from > to {
		return structuralErr("removeRange", from, "bad range [%d,%d) of %d", from, to, len(s.toks))
	}
	if from == to {
		return nil
	}
	removed := s.toks[from:to]
	for _, t := range removed {
		s.kinds[t.Kind]--
	}
	_, ok := balanced(removed)
	s.toks = slices.Delete(s.toks, from, to)

	if ok && !s.dirty {
		n := to - from
		s.pair = slices.Delete(s.pair, from, to)
		for j, p := range s.pair {
			if p >= to {
				s.pair[j] = p - n
			}
		}
	} else {
		s.dirty = true
	}
	s.touch()
	return nil
}

// RemoveAt removes the token at i.
func (s *Stream) RemoveAt(i int) error {
	if i < 0 || i >= len(s.toks) {
		return structuralErr("removeAt", i, "index out of range [0,%d)", len(s.toks))
	}
	return s.RemoveRange(i, i+1)
}

// SetAt replaces the token at i. Replacing a token with an equal value is not a change.
func (s *Stream) SetAt(i int, t token.Token) error {
	if i < 0 || i >= len(s.toks) {
		return structuralErr("setAt", i, "index out of range [0,%d)", len(s.toks))
	}
	if t.Text == "" {
		return structuralErr("setAt", i, "empty %s token, use RemoveAt", t.Kind)
	}
	old := s.toks[i]
	if old == t {
		return nil
	}
	s.toks[i] = t
	s.kinds[old.Kind]--
	s.kinds[t.Kind]++
	if old.Kind != t.Kind && (old.IsStructural() || t.IsStructural()) {
		s.dirty = true
	}
	s.touch()
	return nil
}

func (s *Stream) touch() {
	s.changed = true
	s.rev++
}
