package rules

import (
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

// LowercaseKeywords writes keywords in lower case.
type LowercaseKeywords struct{ fixer.Base }

func (*LowercaseKeywords) Name() string  { return "lowercase_keywords" }
func (*LowercaseKeywords) Priority() int { return 0 }

func (*LowercaseKeywords) Definition() fixer.Definition {
	return fixer.Definition{
		Summary: "PHP keywords MUST be in lower case.",
		Samples: []fixer.CodeSample{{Code: "<?php\n    FOREACH($a AS $B) {\n        TRY {\n            NEW $C($a, ISSET($B));\n            WHILE($B) {\n                INCLUDE \"test.php\";\n            }\n        } CATCH(\\Exception $e) {\n            EXIT(1);\n        }\n    }\n"}},
	}
}

func (*LowercaseKeywords) IsCandidate(s *tokens.Stream) bool {
	return s.HasKind(token.Keyword)
}

func (*LowercaseKeywords) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if t.Kind != token.Keyword {
			continue
		}
		if err := s.SetAt(i, token.New(token.Keyword, lower(t.Text))); err != nil {
			return err
		}
	}
	return nil
}
