// Package token defines lexical token kinds for PHP sources.
// Invariants:
//   - Token is an immutable value; replacing a token substitutes the whole value.
//   - Token.Text is the exact source slice, concatenation of all texts is the file.
//   - Keywords are case-insensitive (as in PHP); Text keeps the original spelling.
//   - null, true and false are identifiers (Ident), not keywords.
//   - Casts like "( int )" are a single Cast token, inner spaces included.
//   - Opening tags carry at most one trailing line break or blank ("<?php\n").
package token
