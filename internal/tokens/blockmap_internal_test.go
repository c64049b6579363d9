package tokens

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

var fuzzPieces = []token.Token{
	token.New(token.LParen, "("), token.New(token.RParen, ")"),
	token.New(token.LBrace, "{"), token.New(token.RBrace, "}"),
	token.New(token.LBracket, "["), token.New(token.RBracket, "]"),
	token.New(token.Ident, "a"), token.New(token.Whitespace, " "),
}

// После любой последовательности мутаций блок-карта совпадает с полной пересборкой.
func TestIncrementalRepairMatchesRebuild(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		s := New("<?php foo([1, 2]) { if (x) { y(); } }")
		for step := 0; step < 30; step++ {
			switch rng.Intn(3) {
			case 0:
				n := 1 + rng.Intn(4)
				var ins []token.Token
				for range n {
					ins = append(ins, fuzzPieces[rng.Intn(len(fuzzPieces))])
				}
				if err := s.InsertAt(rng.Intn(s.Len()+1), ins...); err != nil {
					t.Fatal(err)
				}
			case 1:
				if s.Len() == 0 {
					continue
				}
				from := rng.Intn(s.Len())
				to := from + rng.Intn(min(4, s.Len()-from)+1)
				if err := s.RemoveRange(from, to); err != nil {
					t.Fatal(err)
				}
			case 2:
				if s.Len() == 0 {
					continue
				}
				if err := s.SetAt(rng.Intn(s.Len()), fuzzPieces[rng.Intn(len(fuzzPieces))]); err != nil {
					t.Fatal(err)
				}
			}
			s.ensurePairs()
			if want := buildPairs(s.toks); !slices.Equal(s.pair, want) {
				t.Fatalf("round %d step %d: pairs %v, want %v", round, step, s.pair, want)
			}
			assertNested(t, s.pair)
		}
	}
}

func assertNested(t *testing.T, pair []int) {
	t.Helper()
	for i, j := range pair {
		if j == noPair || j < i {
			continue
		}
		for k := i + 1; k < j; k++ {
			if p := pair[k]; p != noPair && (p < i || p > j) {
				t.Fatalf("pairs (%d,%d) and (%d,%d) cross", i, j, k, p)
			}
		}
	}
}
