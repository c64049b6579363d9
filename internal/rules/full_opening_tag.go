package rules

import (
	"strings"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// FullOpeningTag turns "<?" and "<?PHP" into "<?php".
type FullOpeningTag struct{ fixer.Base }

func (*FullOpeningTag) Name() string  { return "full_opening_tag" }
func (*FullOpeningTag) Priority() int { return 98 }

func (*FullOpeningTag) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "PHP code must use the long `<?php` tags or short-echo `<?=` tags and not other tag variations.",
		Samples: []fixer.CodeSample{{Code: "<?\n\necho \"Hello!\";\n"}},
	}
}

func (*FullOpeningTag) IsCandidate(s *tokens.Stream) bool {
	return s.HasKind(token.OpenTag)
}

func (*FullOpeningTag) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if t.Kind != token.OpenTag {
			continue
		}
		var rest string
		if len(t.Text) >= 5 && strings.EqualFold(t.Text[:5], "<?php") {
			rest = t.Text[5:]
		} else {
			rest = t.Text[2:]
			if rest == "" && i+1 < s.Len() {
				// "<?" вплотную к коду: нужен пробел после "<?php"
				rest = " "
			}
		}
		if err := s.SetAt(i, token.New(token.OpenTag, "<?php"+rest)); err != nil {
			return err
		}
	}
	return nil
}
