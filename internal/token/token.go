package token

import "strings"

// Token represents a single source token.
type Token struct {
	Kind Kind
	Text string
}

// New builds a token value.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// IsWhitespace reports whether the token is a whitespace run.
func (t Token) IsWhitespace() bool { return t.Kind == Whitespace }

// IsComment reports whether the token is a comment of any flavour.
func (t Token) IsComment() bool { return t.Kind == Comment || t.Kind == DocComment }

// IsMeaningful reports whether the token is neither whitespace nor comment.
func (t Token) IsMeaningful() bool { return !t.IsWhitespace() && !t.IsComment() }

// IsStructural reports whether the token is a brace, paren or bracket.
func (t Token) IsStructural() bool { return t.Kind.IsStructural() }

// IsCast reports whether the token is a type cast.
func (t Token) IsCast() bool { return t.Kind == Cast }

// Is reports whether the token has the given kind and exact text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsOp reports whether the token is the operator op.
func (t Token) IsOp(op string) bool { return t.Is(Operator, op) }

// IsKeyword reports whether the token is one of the given keywords, ignoring case.
// Without arguments it reports whether the token is a keyword at all.
func (t Token) IsKeyword(words ...string) bool {
	if t.Kind != Keyword {
		return false
	}
	if len(words) == 0 {
		return true
	}
	for _, w := range words {
		if strings.EqualFold(t.Text, w) {
			return true
		}
	}
	return false
}

// IsIdent reports whether the token is an identifier equal to name, ignoring case.
func (t Token) IsIdent(name string) bool {
	return t.Kind == Ident && strings.EqualFold(t.Text, name)
}

// Equals reports whether two tokens have the same kind and text.
func (t Token) Equals(o Token) bool { return t == o }

// HasNewline reports whether the token text contains a line break.
func (t Token) HasNewline() bool {
	return strings.ContainsAny(t.Text, "\r\n")
}

func (t Token) String() string {
	return t.Kind.String() + "(" + t.Text + ")"
}
