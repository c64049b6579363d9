package tokens_test

import (
	"slices"
	"testing"

	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

func TestFindSkipsWhitespaceAndComments(t *testing.T) {
	s := tokens.New("<?php return /* x */ null; RETURN\nnull;")
	seq := tokens.Sequence{tokens.Keyword("return"), tokens.Tok(token.Ident, "null"), tokens.Kind(token.Semicolon)}

	got := slices.Collect(s.Find(seq, 0, tokens.Forward))
	if !slices.Equal(got, []int{1, 8}) {
		t.Fatalf("Find forward = %v", got)
	}
	back := slices.Collect(s.Find(seq, s.Len()-1, tokens.Backward))
	if !slices.Equal(back, []int{8, 1}) {
		t.Fatalf("Find backward = %v", back)
	}
	if end := s.SequenceEnd(seq, 1); end != 6 {
		t.Fatalf("SequenceEnd = %d, want 6", end)
	}
}

func TestFindIsRestartable(t *testing.T) {
	s := tokens.New("<?php a; b; c;")
	seq := tokens.Sequence{tokens.Kind(token.Semicolon)}
	it := s.Find(seq, 0, tokens.Forward)

	first := slices.Collect(it)
	second := slices.Collect(it)
	if len(first) != 3 || !slices.Equal(first, second) {
		t.Fatalf("iterations differ: %v vs %v", first, second)
	}
	if got := s.FindFirst(seq, first[0]+1, tokens.Forward); got != first[1] {
		t.Fatalf("FindFirst = %d, want %d", got, first[1])
	}
	if got := s.FindFirst(tokens.Sequence{tokens.Op("->")}, 0, tokens.Forward); got != -1 {
		t.Fatalf("FindFirst on absent = %d", got)
	}
}

func TestMeaningfulNeighbours(t *testing.T) {
	s := tokens.New("<?php a /* c */ ;")
	// 0 open, 1 a, 2 ws, 3 comment, 4 ws, 5 ;
	if got := s.NextMeaningful(1); got != 5 {
		t.Fatalf("NextMeaningful(1) = %d", got)
	}
	if got := s.PrevMeaningful(5); got != 1 {
		t.Fatalf("PrevMeaningful(5) = %d", got)
	}
	if got := s.NextMeaningful(5); got != -1 {
		t.Fatalf("NextMeaningful at end = %d", got)
	}
	if got := s.NextOfKind(0, token.Comment); got != 3 {
		t.Fatalf("NextOfKind = %d", got)
	}
}
