package rules

import (
	"slices"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/token"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

var functionConstants = map[string]string{
	"phpversion":    "PHP_VERSION",
	"php_sapi_name": "PHP_SAPI",
	"pi":            "M_PI",
}

var allFunctionsToConstant = []string{"phpversion", "php_sapi_name", "pi"}

type functionToConstantOptions struct {
	Functions []string `json:"functions"`
}

// FunctionToConstant replaces argument-less core function calls with the
// equivalent constant. Risky: the function may be overridden in a namespace.
type FunctionToConstant struct {
	opts functionToConstantOptions
}

// NewFunctionToConstant returns the fixer with default options.
func NewFunctionToConstant() *FunctionToConstant {
	f := &FunctionToConstant{}
	_ = f.Configure(nil)
	return f
}

func (*FunctionToConstant) Name() string  { return "function_to_constant" }
func (*FunctionToConstant) Priority() int { return 1 }
func (*FunctionToConstant) IsRisky() bool { return true }

func (*FunctionToConstant) Supports(meta source.FileMeta) bool {
	return fixer.Base{}.Supports(meta)
}

func (*FunctionToConstant) Options() []fixer.Option {
	return []fixer.Option{{
		Name:        "functions",
		Description: "list of function names to fix",
		Types:       []string{"array"},
		Allowed:     []any{"phpversion", "php_sapi_name", "pi"},
		Default:     allFunctionsToConstant,
	}}
}

func (f *FunctionToConstant) Configure(opts map[string]any) error {
	next := functionToConstantOptions{Functions: slices.Clone(allFunctionsToConstant)}
	if err := fixer.DecodeOptions(f.Name(), opts, &next); err != nil {
		return err
	}
	if err := fixer.OneOf(f.Name(), "functions", next.Functions, allFunctionsToConstant...); err != nil {
		return err
	}
	f.opts = next
	return nil
}

func (*FunctionToConstant) Definition() fixer.Definition {
	return fixer.Definition{
		Summary:          "Replace core functions calls returning constants with the constants.",
		RiskyDescription: "Risky when any of the configured functions to replace are overridden.",
		Samples: []fixer.CodeSample{
			{Code: "<?php\necho phpversion();\necho pi();\necho php_sapi_name();\n"},
			{Code: "<?php\necho phpversion();\necho pi();\n", Options: map[string]any{"functions": []any{"phpversion"}}},
		},
	}
}

func (*FunctionToConstant) IsCandidate(s *tokens.Stream) bool {
	return s.HasAllKinds(token.Ident, token.LParen)
}

func (f *FunctionToConstant) Apply(_ source.FileMeta, s *tokens.Stream) error {
	for i := s.Len() - 1; i >= 0; i-- {
		t := s.At(i)
		if t.Kind != token.Ident {
			continue
		}
		name := lower(t.Text)
		constant, ok := functionConstants[name]
		if !ok || !slices.Contains(f.opts.Functions, name) || !isFunctionCallName(s, i) {
			continue
		}
		open := s.NextMeaningful(i)
		closeIdx, err := s.MatchOf(open)
		if err != nil {
			continue // несбалансированный вызов: не наш случай
		}
		if s.NextMeaningful(open) != closeIdx {
			continue // есть аргументы
		}
		// скобки удаляем, пробелы и комментарии внутри остаются
		if err := s.RemoveAt(closeIdx); err != nil {
			return err
		}
		if err := s.RemoveAt(open); err != nil {
			return err
		}
		if err := s.SetAt(i, token.New(token.Ident, constant)); err != nil {
			return err
		}
	}
	return nil
}
