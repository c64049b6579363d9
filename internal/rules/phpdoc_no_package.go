package rules

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/docblock"
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// PhpdocNoPackage drops @package and @subpackage annotations.
type PhpdocNoPackage struct{ fixer.Base }

func (*PhpdocNoPackage) Name() string  { return "phpdoc_no_package" }
func (*PhpdocNoPackage) Priority() int { return 10 }

func (*PhpdocNoPackage) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "`@package` and `@subpackage` annotations should be omitted from PHPDoc.",
		Samples: []fixer.CodeSample{{Code: "<?php\n/**\n * @internal\n * @package Foo\n * @subpackage Bar\n */\nclass Baz {}\n"}},
	}
}

func (*PhpdocNoPackage) IsCandidate(s *tokens.Stream) bool { return s.HasKind(token.DocComment) }

func (*PhpdocNoPackage) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := s.Len() - 1; i >= 0; i-- {
		t := s.At(i)
		if t.Kind != token.DocComment {
			continue
		}
		doc := docblock.New(t.Text)
		annotations := doc.AnnotationsOfType("package", "subpackage")
		if len(annotations) == 0 {
			continue
		}
		for _, a := range annotations {
			a.Remove()
		}
		text := doc.Content()
		if text != "" {
			if err := s.SetAt(i, token.New(token.DocComment, text)); err != nil {
				return err
			}
			continue
		}
		if err := removeMergingWhitespace(s, i); err != nil {
			return err
		}
	}
	return nil
}

// removeMergingWhitespace deletes the token at i and glues the whitespace
// on both sides into one token.
func removeMergingWhitespace(s *tokens.Stream, i int) error {
	if err := s.RemoveAt(i); err != nil {
		return err
	}
	if i == 0 || i >= s.Len() {
		return nil
	}
	prev, next := s.At(i-1), s.At(i)
	if prev.Kind != token.Whitespace || next.Kind != token.Whitespace {
		return nil
	}
	if err := s.SetAt(i-1, token.New(token.Whitespace, prev.Text+next.Text)); err != nil {
		return err
	}
	return s.RemoveAt(i)
}
