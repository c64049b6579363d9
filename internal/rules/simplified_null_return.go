package rules

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// SimplifiedNullReturn rewrites "return null;" as "return;".
type SimplifiedNullReturn struct{ fixer.Base }

func (*SimplifiedNullReturn) Name() string  { return "simplified_null_return" }
func (*SimplifiedNullReturn) Priority() int { return 16 }

func (*SimplifiedNullReturn) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "A return statement wishing to return `void` should not return `null`.",
		Samples: []fixer.CodeSample{{Code: "<?php return null;\n"}},
	}
}

func (*SimplifiedNullReturn) IsCandidate(s *tokens.Stream) bool {
	return s.HasAllKinds(token.Keyword, token.Ident, token.Semicolon)
}

func (f *SimplifiedNullReturn) Apply(_ source.FileMeta, s *tokens.Stream) error {
	// с конца: удаления не сдвигают ещё не просмотренные индексы
	for i := s.Len() - 1; i >= 0; i-- {
		if !s.At(i).IsKeyword("return") {
			continue
		}
		end, ok := nullReturnEnd(s, i)
		if !ok || hasReturnType(s, i) {
			continue
		}
		if err := clearNullReturn(s, i, end); err != nil {
			return err
		}
	}
	return nil
}

// nullReturnEnd checks that between return at i and the next ";" there is
// only "null" wrapped in any number of parentheses.
func nullReturnEnd(s *tokens.Stream, i int) (int, bool) {
	var meaningful []token.Token
	j := s.NextMeaningful(i)
	for j >= 0 && s.At(j).Kind != token.Semicolon {
		meaningful = append(meaningful, s.At(j))
		j = s.NextMeaningful(j)
	}
	if j < 0 || len(meaningful) == 0 || len(meaningful)%2 == 0 {
		return 0, false
	}
	mid := len(meaningful) / 2
	for k := 0; k < mid; k++ {
		if meaningful[k].Kind != token.LParen || meaningful[len(meaningful)-1-k].Kind != token.RParen {
			return 0, false
		}
	}
	return j, meaningful[mid].IsIdent("null")
}

// clearNullReturn removes everything between return and ";" except comments
// and the whitespace directly in front of a comment.
func clearNullReturn(s *tokens.Stream, ret, semi int) error {
	for j := semi - 1; j > ret; j-- {
		t := s.At(j)
		if t.IsComment() {
			continue
		}
		if t.IsWhitespace() && j+1 < s.Len() && s.At(j+1).IsComment() {
			continue
		}
		if err := s.RemoveAt(j); err != nil {
			return err
		}
	}
	return nil
}

// hasReturnType reports whether the function enclosing i declares a return
// type; "return;" is a compile error there.
func hasReturnType(s *tokens.Stream, i int) bool {
	for j := i - 1; j >= 0; j-- {
		t := s.At(j)
		if t.Kind.IsCloser() {
			if m, err := s.MatchOf(j); err == nil {
				j = m
			}
			continue
		}
		if t.Kind != token.LBrace {
			continue
		}
		switch kind := functionHeader(s, j); kind {
		case headerTyped:
			return true
		case headerUntyped:
			return false
		}
	}
	return false
}

type headerKind int

const (
	headerNone headerKind = iota
	headerUntyped
	headerTyped
)

// functionHeader classifies the block opened by "{" at brace.
func functionHeader(s *tokens.Stream, brace int) headerKind {
	p := s.PrevMeaningful(brace)
	typed := false
	// ") : ?Foo\Bar|null {": идём назад по типу до двоеточия
	for p >= 0 {
		t := s.At(p)
		if t.Kind == token.Ident || t.IsKeyword("array", "callable", "static") || t.IsOp("\\") || t.IsOp("?") || t.IsOp("|") {
			p = s.PrevMeaningful(p)
			continue
		}
		if t.IsOp(":") {
			typed = true
			p = s.PrevMeaningful(p)
		}
		break
	}
	if p < 0 || s.At(p).Kind != token.RParen {
		return headerNone
	}
	open, err := s.MatchOf(p)
	if err != nil {
		return headerNone
	}
	before := s.PrevMeaningful(open)
	if before >= 0 && s.At(before).IsKeyword("use") {
		// замыкание: function (...) use (...) {
		closeParams := s.PrevMeaningful(before)
		if closeParams < 0 || s.At(closeParams).Kind != token.RParen {
			return headerNone
		}
		if open, err = s.MatchOf(closeParams); err != nil {
			return headerNone
		}
		before = s.PrevMeaningful(open)
	}
	if before < 0 {
		return headerNone
	}
	bt := s.At(before)
	isFunc := bt.IsKeyword("function")
	if bt.Kind == token.Ident || bt.Kind == token.Keyword {
		if pp := s.PrevMeaningful(before); pp >= 0 {
			ppt := s.At(pp)
			isFunc = isFunc || ppt.IsKeyword("function") ||
				(ppt.IsOp("&") && s.PrevMeaningful(pp) >= 0 && s.At(s.PrevMeaningful(pp)).IsKeyword("function"))
		}
	}
	if bt.IsOp("&") {
		if pp := s.PrevMeaningful(before); pp >= 0 && s.At(pp).IsKeyword("function") {
			isFunc = true
		}
	}
	switch {
	case !isFunc:
		return headerNone
	case typed:
		return headerTyped
	default:
		return headerUntyped
	}
}
