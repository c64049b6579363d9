package lint

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func lower(s string) string { return cases.Lower(language.Und).String(s) }

func upper(s string) string { return cases.Upper(language.Und).String(s) }
