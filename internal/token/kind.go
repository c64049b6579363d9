package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Other is any byte run the lexer has no better class for.
	Other Kind = iota

	// Whitespace is a run of spaces, tabs and line breaks.
	Whitespace
	// Comment is a //, # or /* */ comment.
	Comment
	// DocComment is a /** */ comment.
	DocComment

	// OpenTag is "<?php" or "<?" with its trailing blank.
	OpenTag
	// OpenTagWithEcho is "<?=".
	OpenTagWithEcho
	// CloseTag is "?>" with an optional following line break.
	CloseTag
	// InlineHTML is text outside of PHP tags.
	InlineHTML

	// Ident is a bare name (functions, constants, classes, null/true/false).
	Ident
	// Keyword is a reserved word such as return, function or namespace.
	Keyword
	// Variable is $name.
	Variable
	// Number is an integer or float literal.
	Number
	// StringLit is a quoted string, backtick command, heredoc or nowdoc.
	StringLit
	// Cast is "(int)", "( string )" and friends.
	Cast
	// Operator covers punctuation and operators not listed separately, incl. "," and "\".
	Operator

	// Semicolon is ";".
	Semicolon
	// LBrace is "{".
	LBrace
	// RBrace is "}".
	RBrace
	// LParen is "(".
	LParen
	// RParen is ")".
	RParen
	// LBracket is "[".
	LBracket
	// RBracket is "]".
	RBracket

	kindCount
)

var kindNames = [...]string{
	Other:           "Other",
	Whitespace:      "Whitespace",
	Comment:         "Comment",
	DocComment:      "DocComment",
	OpenTag:         "OpenTag",
	OpenTagWithEcho: "OpenTagWithEcho",
	CloseTag:        "CloseTag",
	InlineHTML:      "InlineHTML",
	Ident:           "Ident",
	Keyword:         "Keyword",
	Variable:        "Variable",
	Number:          "Number",
	StringLit:       "StringLit",
	Cast:            "Cast",
	Operator:        "Operator",
	Semicolon:       "Semicolon",
	LBrace:          "LBrace",
	RBrace:          "RBrace",
	LParen:          "LParen",
	RParen:          "RParen",
	LBracket:        "LBracket",
	RBracket:        "RBracket",
}

// KindCount is the number of distinct kinds, usable as an array size.
const KindCount = int(kindCount)

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsOpener reports whether k opens a block.
func (k Kind) IsOpener() bool {
	return k == LBrace || k == LParen || k == LBracket
}

// IsCloser reports whether k closes a block.
func (k Kind) IsCloser() bool {
	return k == RBrace || k == RParen || k == RBracket
}

// IsStructural reports whether k takes part in the block map.
func (k Kind) IsStructural() bool {
	return k.IsOpener() || k.IsCloser()
}

// Closer returns the closing kind for an opener, Other otherwise.
func (k Kind) Closer() Kind {
	switch k {
	case LBrace:
		return RBrace
	case LParen:
		return RParen
	case LBracket:
		return RBracket
	default:
		return Other
	}
}
