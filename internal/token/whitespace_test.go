package token_test

import (
	"testing"

	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
)

func TestTrailingIndent(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"\n\n    ", "    "},
		{"\r\n\r\r\r ", " "},
		{"\r\n\t", "\t"},
		{"\t\n\r", ""},
		{"\n", ""},
		{"", ""},
	}
	for _, tc := range cases {
		got, err := token.TrailingIndent(token.New(token.Whitespace, tc.in))
		if err != nil {
			t.Fatalf("TrailingIndent(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("TrailingIndent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTrailingIndentRejectsNonWhitespace(t *testing.T) {
	_, err := token.TrailingIndent(token.New(token.Ident, "foo"))
	if err == nil {
		t.Fatal("expected error")
	}
	if want := `the given token must be whitespace, got "Ident"`; err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestLineBreaks(t *testing.T) {
	cases := map[string]int{"": 0, " ": 0, "\n": 1, "\r\n": 1, "\r\r": 2, "\n\r\n\n": 3}
	for in, want := range cases {
		if got := token.LineBreaks(in); got != want {
			t.Fatalf("LineBreaks(%q) = %d, want %d", in, got, want)
		}
	}
}
