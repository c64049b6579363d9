package rules

import (
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

const utf8BOM = "\xEF\xBB\xBF"

// Encoding removes the UTF-8 byte order mark.
type Encoding struct{ fixer.Base }

func (*Encoding) Name() string  { return "encoding" }
func (*Encoding) Priority() int { return 100 }

func (*Encoding) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "PHP code MUST use only UTF-8 without BOM (remove BOM).",
		Samples: []fixer.CodeSample{{Code: utf8BOM + "<?php\n\necho \"Hello!\";\n"}},
	}
}

func (*Encoding) IsCandidate(s *tokens.Stream) bool {
	return s.Len() > 0 && strings.HasPrefix(s.At(0).Text, utf8BOM)
}

func (*Encoding) Apply(_ source.FileMeta, s *tokens.Stream) error {
	first := s.At(0)
	rest := strings.TrimPrefix(first.Text, utf8BOM)
	if rest == "" {
		return s.RemoveAt(0)
	}
	return s.SetAt(0, token.New(first.Kind, rest))
}
