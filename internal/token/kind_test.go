package token_test

import (
	"testing"

	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

func TestStructuralKinds(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.LBrace:   token.RBrace,
		token.LParen:   token.RParen,
		token.LBracket: token.RBracket,
	}
	for open, closeKind := range pairs {
		if !open.IsOpener() || open.IsCloser() {
			t.Fatalf("%v must be an opener", open)
		}
		if !closeKind.IsCloser() || closeKind.IsOpener() {
			t.Fatalf("%v must be a closer", closeKind)
		}
		if got := open.Closer(); got != closeKind {
			t.Fatalf("%v.Closer() = %v, want %v", open, got, closeKind)
		}
	}
	non := []token.Kind{token.Cast, token.Operator, token.Semicolon, token.StringLit, token.Whitespace}
	for _, k := range non {
		if k.IsStructural() {
			t.Fatalf("%v must NOT be structural", k)
		}
		if k.Closer() != token.Other {
			t.Fatalf("%v has no closer", k)
		}
	}
}

func TestKindStringCoversAll(t *testing.T) {
	seen := map[string]bool{}
	for k := 0; k < token.KindCount; k++ {
		s := token.Kind(k).String()
		if s == "" || s == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
		if seen[s] {
			t.Fatalf("duplicate kind name %q", s)
		}
		seen[s] = true
	}
	if got := token.Kind(255).String(); got != "Kind(?)" {
		t.Fatalf("unknown kind string = %q", got)
	}
}

func TestTokenPredicates(t *testing.T) {
	ret := token.New(token.Keyword, "RETURN")
	if !ret.IsKeyword() || !ret.IsKeyword("echo", "return") || ret.IsKeyword("echo") {
		t.Fatalf("keyword matching is case-insensitive and word-exact")
	}
	if !token.New(token.Ident, "NULL").IsIdent("null") {
		t.Fatalf("IsIdent must ignore case")
	}
	if token.New(token.Comment, "// x").IsMeaningful() || token.New(token.Whitespace, " ").IsMeaningful() {
		t.Fatalf("comments and whitespace are not meaningful")
	}
	if !token.New(token.DocComment, "/** x */").IsComment() {
		t.Fatalf("doc comment is a comment")
	}
	if !token.New(token.Operator, "->").IsOp("->") {
		t.Fatalf("IsOp mismatch")
	}
	if !token.New(token.Whitespace, " \r").HasNewline() {
		t.Fatalf("\\r is a line break")
	}
}
