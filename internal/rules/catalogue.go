// Package rules holds the built-in fixers.
package rules

import "github.com/pilgerone/PHP-CS-Fixer/internal/fixer"

// BuiltIn returns fresh instances of every built-in fixer in registration order.
// Each call returns new values, so configuring one set does not leak into another.
func BuiltIn() []fixer.Fixer {
	return []fixer.Fixer{
		&Encoding{},
		&FullOpeningTag{},
		&NoEmptyStatement{},
		&SimplifiedNullReturn{},
		&PhpdocScalar{},
		&PhpdocNoPackage{},
		&NoSpacesAfterFunctionName{},
		&NoSpacesInsideParenthesis{},
		&BlankLineAfterOpeningTag{},
		NewFunctionToConstant(),
		&LowercaseKeywords{},
		&CastSpaces{},
		&NoBlankLinesBeforeNamespace{},
		&NoTrailingWhitespace{},
		&NoSinglelineWhitespaceBeforeSemicolons{},
		NewLineEnding(),
		&NativeFunctionCasing{},
		&NoWhitespaceInBlankLine{},
		&SingleBlankLineAtEOF{},
	}
}
