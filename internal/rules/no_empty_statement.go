package rules

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// NoEmptyStatement removes semicolons that terminate nothing.
type NoEmptyStatement struct{ fixer.Base }

func (*NoEmptyStatement) Name() string  { return "no_empty_statement" }
func (*NoEmptyStatement) Priority() int { return 26 }

func (*NoEmptyStatement) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "Remove useless semicolon statements.",
		Samples: []fixer.CodeSample{{Code: "<?php $a = 1;;\n{ ; }\n"}},
	}
}

func (*NoEmptyStatement) IsCandidate(s *tokens.Stream) bool {
	return s.HasKind(token.Semicolon)
}

func (*NoEmptyStatement) Apply(_ source.FileMeta, s *tokens.Stream) error {
	inside := enclosingOpeners(s)
	var empty []int
	for i := 0; i < s.Len(); i++ {
		if s.At(i).Kind != token.Semicolon || inside[i] == token.LParen {
			continue // for (;;) не трогаем
		}
		prev := s.PrevMeaningful(i)
		if prev < 0 {
			continue
		}
		switch s.At(prev).Kind {
		case token.Semicolon, token.LBrace, token.OpenTag:
			empty = append(empty, i)
		}
	}
	for k := len(empty) - 1; k >= 0; k-- {
		i := empty[k]
		from := i
		if s.IsWhitespaceAt(i-1) && !s.At(i-1).HasNewline() {
			from = i - 1
		}
		if err := s.RemoveRange(from, i+1); err != nil {
			return err
		}
	}
	return nil
}
