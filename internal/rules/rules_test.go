package rules_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/rules"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
	"github.com/pilgerone/PHP-CS-Fixer/internal/tokens"
)

type fixCase struct {
	name string
	in   string
	want string
	opts map[string]any
}

func builtIn(t *testing.T, name string) fixer.Fixer {
	t.Helper()
	for _, f := range rules.BuiltIn() {
		if f.Name() == name {
			return f
		}
	}
	t.Fatalf("fixer %q is not built in", name)
	return nil
}

func applyOnce(t *testing.T, f fixer.Fixer, src string) string {
	t.Helper()
	s := tokens.New(src)
	if !f.IsCandidate(s) {
		return src
	}
	if err := f.Apply(source.MetaFor("test.php"), s); err != nil {
		t.Fatalf("%s: apply: %v", f.Name(), err)
	}
	return s.Source()
}

// runCases checks every case and that fixing the expected output is a no-op.
func runCases(t *testing.T, fixerName string, cases []fixCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := builtIn(t, fixerName)
			if tc.opts != nil {
				c, ok := f.(fixer.Configurable)
				if !ok {
					t.Fatalf("%s is not configurable", fixerName)
				}
				if err := c.Configure(tc.opts); err != nil {
					t.Fatalf("configure: %v", err)
				}
			}
			if got := applyOnce(t, f, tc.in); got != tc.want {
				t.Fatalf("fix mismatch\n in: %q\ngot: %q\nwant: %q", tc.in, got, tc.want)
			}
			if again := applyOnce(t, f, tc.want); again != tc.want {
				t.Fatalf("not idempotent\ngot: %q\nwant: %q", again, tc.want)
			}
		})
	}
}

func unchanged(name, src string) fixCase { return fixCase{name: name, in: src, want: src} }

func TestEncoding(t *testing.T) {
	runCases(t, "encoding", []fixCase{
		{name: "bom", in: "\xEF\xBB\xBF<?php echo 1;\n", want: "<?php echo 1;\n"},
		{name: "bom before html", in: "\xEF\xBB\xBFHello <?php echo 1;", want: "Hello <?php echo 1;"},
		unchanged("no bom", "<?php echo 1;\n"),
	})
}

func TestFullOpeningTag(t *testing.T) {
	runCases(t, "full_opening_tag", []fixCase{
		{name: "short", in: "<? echo 1;", want: "<?php echo 1;"},
		{name: "upper", in: "<?PHP\necho 1;", want: "<?php\necho 1;"},
		unchanged("echo tag", "<?= 1 ?>"),
		unchanged("xml", "<?xml version=\"1.0\"?>\n"),
	})
}

func TestNoEmptyStatement(t *testing.T) {
	runCases(t, "no_empty_statement", []fixCase{
		{name: "double", in: "<?php $a = 1;;", want: "<?php $a = 1;"},
		{name: "spaced", in: "<?php $a = 1; ;", want: "<?php $a = 1;"},
		{name: "in block", in: "<?php { ; }", want: "<?php { }"},
		{name: "after tag", in: "<?php ;\n$a = 1;", want: "<?php \n$a = 1;"},
		unchanged("for header", "<?php for (;;) {}"),
	})
}

func TestSimplifiedNullReturn(t *testing.T) {
	runCases(t, "simplified_null_return", []fixCase{
		unchanged("bare", "<?php return  ;"),
		unchanged("string", "<?php return 'null';"),
		unchanged("false", "<?php return false;"),
		unchanged("paren false", "<?php return (false );"),
		unchanged("comparison", "<?php return null === foo();"),
		unchanged("array comparison", "<?php return array() == null ;"),
		{name: "null", in: "<?php return null;", want: "<?php return;"},
		{name: "paren", in: "<?php return (null);", want: "<?php return;"},
		{name: "spaced paren", in: "<?php return ( null    );", want: "<?php return;"},
		{name: "nested", in: "<?php return ( (( null)));", want: "<?php return;"},
		{name: "comment", in: "<?php return /* hello */ null  ;", want: "<?php return /* hello */;"},
		{name: "upper", in: "<?php return NULL;", want: "<?php return;"},
		{name: "multiline", in: "<?php return\n(\nnull\n)\n;", want: "<?php return;"},
		{name: "untyped function", in: "<?php function f() { return null; }", want: "<?php function f() { return; }"},
		unchanged("typed function", "<?php function f(): ?int { return null; }"),
		unchanged("typed method", "<?php class A { public function f(): ?\\Foo\\Bar { return null; } }"),
	})
}

func TestPhpdocScalar(t *testing.T) {
	runCases(t, "phpdoc_scalar", []fixCase{
		{
			name: "long aliases",
			in:   "<?php\n/**\n * @param integer $a\n * @param boolean|real $b Flag\n * @return double[]\n */\nfunction f($a, $b) {}\n",
			want: "<?php\n/**\n * @param int $a\n * @param bool|float $b Flag\n * @return float[]\n */\nfunction f($a, $b) {}\n",
		},
		{name: "single line var", in: "<?php\n/** @var str $x */\n$x = '';\n", want: "<?php\n/** @var string $x */\n$x = '';\n"},
		{name: "method return", in: "<?php\n/**\n * @method callback handler()\n */\nclass A {}\n", want: "<?php\n/**\n * @method callable handler()\n */\nclass A {}\n"},
		unchanged("tag without types", "<?php\n/**\n * @see integer\n */\n"),
		unchanged("plain comment", "<?php\n/* @var integer $x */\n"),
		unchanged("class named like an alias", "<?php\n/** @var Integer $x */\n"),
	})
}

func TestPhpdocNoPackage(t *testing.T) {
	runCases(t, "phpdoc_no_package", []fixCase{
		{
			name: "package and subpackage",
			in:   "<?php\n/**\n * Summary.\n *\n * @package Foo\n * @subpackage Bar\n */\nclass Baz {}\n",
			want: "<?php\n/**\n * Summary.\n *\n */\nclass Baz {}\n",
		},
		{
			name: "opener shares the line",
			in:   "<?php\n/** @package Foo\n * @internal\n */\nclass Baz {}\n",
			want: "<?php\n/**\n * @internal\n */\nclass Baz {}\n",
		},
		{
			name: "whole comment",
			in:   "<?php\n$a = 1;\n/** @package Foo */\n$b = 2;\n",
			want: "<?php\n$a = 1;\n\n$b = 2;\n",
		},
		unchanged("no package", "<?php\n/**\n * @return int\n */\n"),
	})
}

func TestNoSpacesAfterFunctionName(t *testing.T) {
	runCases(t, "no_spaces_after_function_name", []fixCase{
		{name: "call", in: "<?php\necho test (3);\n", want: "<?php\necho test(3);\n"},
		{name: "variable", in: "<?php\n$func ();\n", want: "<?php\n$func();\n"},
		{name: "exit", in: "<?php\nexit  (1);\n", want: "<?php\nexit(1);\n"},
		{name: "require", in: "<?php\nrequire ('a.php');\n", want: "<?php\nrequire('a.php');\n"},
		unchanged("new", "<?php\nnew Foo ();\n"),
		unchanged("control", "<?php\nif ($a) {}\n"),
	})
}

func TestNoSpacesInsideParenthesis(t *testing.T) {
	runCases(t, "no_spaces_inside_parenthesis", []fixCase{
		{name: "args", in: "<?php foo( $a, $b );", want: "<?php foo($a, $b);"},
		{name: "nested", in: "<?php if ( foo( 1 ) ) {}", want: "<?php if (foo(1)) {}"},
		unchanged("multiline", "<?php foo(\n    $a\n);"),
		unchanged("comment", "<?php foo($a /* x */ );"),
	})
}

func TestBlankLineAfterOpeningTag(t *testing.T) {
	runCases(t, "blank_line_after_opening_tag", []fixCase{
		{name: "same line", in: "<?php $a = 1;\n", want: "<?php\n\n$a = 1;\n"},
		{name: "next line", in: "<?php\n$a = 1;", want: "<?php\n\n$a = 1;"},
		{name: "crlf", in: "<?php\r\n$a = 1;\r\n", want: "<?php\r\n\r\n$a = 1;\r\n"},
		unchanged("already blank", "<?php\n\n$a = 1;"),
		unchanged("mixed html", "<html><?php echo 1; ?></html>"),
	})
}

func TestFunctionToConstant(t *testing.T) {
	runCases(t, "function_to_constant", []fixCase{
		{name: "casing", in: "<?php echo PHPversion()?>", want: "<?php echo PHP_VERSION?>"},
		{name: "comment", in: "<?php echo phpversion(/**/)?>", want: "<?php echo PHP_VERSION/**/?>"},
		{name: "spaces", in: "<?php echo phpversion  (  )  ;", want: "<?php echo PHP_VERSION      ;"},
		{
			name: "multiline",
			in:   "<?php echo\n    phpversion\n    (\n    )\n    ;",
			want: "<?php echo\n    PHP_VERSION\n    \n    \n    ;",
		},
		{name: "global", in: "<?php echo \\phpversion();", want: "<?php echo \\PHP_VERSION;"},
		unchanged("arguments", "<?php phpversion($a);"),
		unchanged("namespaced", "<?php A\\B\\phpversion();"),
		unchanged("new", "<?php new phpversion();"),
		unchanged("static", "<?php A::phpversion();"),
		unchanged("method", "<?php $a->phpversion();"),
		unchanged("declaration", "<?php if (!function_exists(\"phpversion\")){function phpversion(){}}?>"),
		{
			name: "phpversion only",
			in:   "<?php echo phpversion(); echo php_sapi_name(); echo pi();",
			want: "<?php echo PHP_VERSION; echo php_sapi_name(); echo pi();",
			opts: map[string]any{"functions": []any{"phpversion"}},
		},
		{
			name: "conditional",
			in:   "<?php if (\"cli\" === php_sapi_name() && $a){ echo 123;}",
			want: "<?php if (\"cli\" === PHP_SAPI && $a){ echo 123;}",
			opts: map[string]any{"functions": []any{"php_sapi_name"}},
		},
		{
			name: "pi",
			in:   "<?php\n$a =\n    $b\n    || $c < pi()\n;",
			want: "<?php\n$a =\n    $b\n    || $c < M_PI\n;",
			opts: map[string]any{"functions": []any{"pi"}},
		},
	})
}

func TestFunctionToConstantInvalidOptions(t *testing.T) {
	cases := []map[string]any{
		{"functions": []any{"a"}},
		{"functions": []any{false}},
		{"functions": "pi"},
		{"pi123": true},
	}
	for _, opts := range cases {
		f := rules.NewFunctionToConstant()
		err := f.Configure(opts)
		var cfgErr *fixer.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("Configure(%v) = %v, want ConfigurationError", opts, err)
		}
		if cfgErr.Fixer != "function_to_constant" {
			t.Fatalf("error names fixer %q", cfgErr.Fixer)
		}
	}
}

func TestLowercaseKeywords(t *testing.T) {
	runCases(t, "lowercase_keywords", []fixCase{
		{name: "foreach", in: "<?php\nFOREACH ($a AS $b) {}\n", want: "<?php\nforeach ($a as $b) {}\n"},
		{name: "mixed", in: "<?php\nEcho 1; Return;", want: "<?php\necho 1; return;"},
		unchanged("null", "<?php\n$a = NULL;\n"),
		unchanged("member", "<?php echo $a->Function();"),
	})
}

func TestCastSpaces(t *testing.T) {
	runCases(t, "cast_spaces", []fixCase{
		unchanged("in string", `<?php echo "( int ) $foo";`),
		{name: "inner", in: "<?php $bar = ( int)$foo;", want: "<?php $bar = (int) $foo;"},
		{name: "tab inside", in: "<?php $bar = (\tint)$foo;", want: "<?php $bar = (int) $foo;"},
		{name: "tab after", in: "<?php $bar = (int)\t$foo;", want: "<?php $bar = (int) $foo;"},
		{name: "chain", in: "<?php $bar = ( string )( int )$foo;", want: "<?php $bar = (string) (int) $foo;"},
		{name: "tight chain", in: "<?php $bar = (string)(int)$foo;", want: "<?php $bar = (string) (int) $foo;"},
		{name: "wide", in: "<?php $bar = ( string   )    (   int )$foo;", want: "<?php $bar = (string) (int) $foo;"},
		{name: "static call", in: "<?php $bar = (float )Foo::bar();", want: "<?php $bar = (float) Foo::bar();"},
		{name: "argument", in: "<?php $bar = Foo::baz((float )Foo::bar());", want: "<?php $bar = Foo::baz((float) Foo::bar());"},
		{name: "index", in: `<?php $bar = $query["params"] = (array)$query["params"];`, want: `<?php $bar = $query["params"] = (array) $query["params"];`},
		unchanged("newline", "<?php $bar = (int)\n $foo;"),
		unchanged("crlf", "<?php $bar = (int)\r\n $foo;"),
	})
}

func TestNoBlankLinesBeforeNamespace(t *testing.T) {
	runCases(t, "no_blank_lines_before_namespace", []fixCase{
		unchanged("tight", "<?php\nnamespace X;"),
		{name: "blank lines", in: "<?php\n\n\n\nnamespace X;", want: "<?php\nnamespace X;"},
		unchanged("crlf tight", "<?php\r\nnamespace X;"),
		{name: "crlf", in: "<?php\r\n\r\n\r\n\r\nnamespace X;", want: "<?php\r\nnamespace X;"},
		unchanged("relative name", "<?php\n\nnamespace\\Sub\\Foo::bar();"),
		{
			name: "after comment",
			in:   "<?php\n\n/*\n * header\n */\n\nnamespace Foo\\Bar;\n",
			want: "<?php\n\n/*\n * header\n */\nnamespace Foo\\Bar;\n",
		},
	})
}

func TestNoTrailingWhitespace(t *testing.T) {
	runCases(t, "no_trailing_whitespace", []fixCase{
		{name: "code line", in: "<?php\n$a = 1;   \n$b = 2;\n", want: "<?php\n$a = 1;\n$b = 2;\n"},
		{name: "open tag", in: "<?php  \n$a;", want: "<?php\n$a;"},
		{name: "open tag indent", in: "<?php \n    $a;", want: "<?php\n    $a;"},
		{name: "line comment", in: "<?php\n$a = 1; // note   \n", want: "<?php\n$a = 1; // note\n"},
		{name: "eof", in: "<?php\n$a = 1;  ", want: "<?php\n$a = 1;"},
		{name: "tabs", in: "<?php\n$a = 1;\t\r\n", want: "<?php\n$a = 1;\r\n"},
		unchanged("indent", "<?php\n    $a = 1;\n"),
		unchanged("blank line", "<?php\n$a;\n   \n$b;"),
	})
}

func TestNoSinglelineWhitespaceBeforeSemicolons(t *testing.T) {
	runCases(t, "no_singleline_whitespace_before_semicolons", []fixCase{
		{name: "call", in: "<?php $this->foo() ;", want: "<?php $this->foo();"},
		{name: "tabs", in: "<?php $a = 1\t ;", want: "<?php $a = 1;"},
		unchanged("newline", "<?php $a = 1\n;"),
		unchanged("for", "<?php for ($i = 0; ; ++$i) {}"),
		unchanged("comment", "<?php $a /* x */ ;"),
	})
}

func TestLineEnding(t *testing.T) {
	runCases(t, "line_ending", []fixCase{
		{name: "crlf", in: "<?php\r\n$a = 1;\r\n", want: "<?php\n$a = 1;\n"},
		{name: "doc comment", in: "<?php\r\n/**\r\n * x\r\n */\r\n", want: "<?php\n/**\n * x\n */\n"},
		{name: "heredoc", in: "<?php $a = <<<TEST\r\nAAA\r\nTEST;\r\n", want: "<?php $a = <<<TEST\nAAA\nTEST;\n"},
		unchanged("string", "<?php $b = \"a\r\nb\";\n"),
		{
			name: "to crlf",
			in:   "<?php\n$a;\n",
			want: "<?php\r\n$a;\r\n",
			opts: map[string]any{"line_ending": "\r\n"},
		},
	})
}

func TestLineEndingInvalidOption(t *testing.T) {
	f := rules.NewLineEnding()
	err := f.Configure(map[string]any{"line_ending": "\r"})
	var cfgErr *fixer.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Configure = %v, want ConfigurationError", err)
	}
}

func TestNativeFunctionCasing(t *testing.T) {
	runCases(t, "native_function_casing", []fixCase{
		{name: "call", in: "<?php\nSTRLEN($str);\n", want: "<?php\nstrlen($str);\n"},
		{name: "global", in: "<?php\n\\Array_Keys($a);\n", want: "<?php\n\\array_keys($a);\n"},
		unchanged("method", "<?php $a->STRLEN($x);"),
		unchanged("static", "<?php A::STRLEN($x);"),
		unchanged("declaration", "<?php function STRLEN() {}"),
		unchanged("namespaced", "<?php Foo\\STRLEN($x);"),
		unchanged("user function", "<?php MyHelper($x);"),
	})
}

func TestNoWhitespaceInBlankLine(t *testing.T) {
	runCases(t, "no_whitespace_in_blank_line", []fixCase{
		{name: "blank", in: "<?php\n$a;\n   \n$b;", want: "<?php\n$a;\n\n$b;"},
		{name: "keeps indent", in: "<?php\n$a;\n  \n    $b;", want: "<?php\n$a;\n\n    $b;"},
		{name: "after tag", in: "<?php\n  \n$a;", want: "<?php\n\n$a;"},
		{name: "eof", in: "<?php\n$a;\n   ", want: "<?php\n$a;\n"},
		unchanged("indent only", "<?php\n$a;\n    $b;"),
	})
}

func TestSingleBlankLineAtEOF(t *testing.T) {
	runCases(t, "single_blank_line_at_eof", []fixCase{
		{name: "missing", in: "<?php\n$a = 1;", want: "<?php\n$a = 1;\n"},
		{name: "too many", in: "<?php\n$a = 1;\n\n\n", want: "<?php\n$a = 1;\n"},
		{name: "crlf", in: "<?php\r\n$a = 1;", want: "<?php\r\n$a = 1;\r\n"},
		unchanged("close tag", "<?php\n$a = 1;\n?>\n"),
		unchanged("html", "<?php echo 1; ?>\n<p>x</p>"),
	})
}

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func TestCatalogueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range rules.BuiltIn() {
		if !namePattern.MatchString(f.Name()) {
			t.Errorf("bad fixer name %q", f.Name())
		}
		if seen[f.Name()] {
			t.Errorf("duplicate fixer %q", f.Name())
		}
		seen[f.Name()] = true
		if _, ok := f.(fixer.Described); !ok {
			t.Errorf("%s has no definition", f.Name())
		}
	}
}

func TestCatalogueRegistrationOrderIsPriorityOrder(t *testing.T) {
	all := rules.BuiltIn()
	for i := 1; i < len(all); i++ {
		if all[i-1].Priority() < all[i].Priority() {
			t.Errorf("%s(%d) registered before higher priority %s(%d)",
				all[i-1].Name(), all[i-1].Priority(), all[i].Name(), all[i].Priority())
		}
	}
}

// Пары, где порядок применения важен для результата.
func TestPriorityPairs(t *testing.T) {
	byName := map[string]fixer.Fixer{}
	for _, f := range rules.BuiltIn() {
		byName[f.Name()] = f
	}
	pairs := []struct{ first, second string }{
		{"no_spaces_after_function_name", "function_to_constant"},
		{"no_spaces_inside_parenthesis", "function_to_constant"},
		{"function_to_constant", "native_function_casing"},
		{"function_to_constant", "no_singleline_whitespace_before_semicolons"},
		{"function_to_constant", "no_trailing_whitespace"},
		{"function_to_constant", "no_whitespace_in_blank_line"},
		{"line_ending", "single_blank_line_at_eof"},
		{"blank_line_after_opening_tag", "no_blank_lines_before_namespace"},
		{"no_empty_statement", "no_singleline_whitespace_before_semicolons"},
		{"no_empty_statement", "no_trailing_whitespace"},
		{"no_empty_statement", "no_whitespace_in_blank_line"},
		{"simplified_null_return", "no_singleline_whitespace_before_semicolons"},
		{"cast_spaces", "no_whitespace_in_blank_line"},
		{"phpdoc_no_package", "no_whitespace_in_blank_line"},
		{"phpdoc_no_package", "no_trailing_whitespace"},
	}
	for _, p := range pairs {
		a, okA := byName[p.first]
		b, okB := byName[p.second]
		if !okA || !okB {
			t.Fatalf("unknown pair %s/%s", p.first, p.second)
		}
		if a.Priority() <= b.Priority() {
			t.Errorf("%s(%d) must run before %s(%d)", p.first, a.Priority(), p.second, b.Priority())
		}
	}
}

func TestEdgeFixers(t *testing.T) {
	all := rules.BuiltIn()
	first := map[string]int{"encoding": 0, "full_opening_tag": 1}
	for _, f := range all {
		switch f.Name() {
		case "encoding", "full_opening_tag", "single_blank_line_at_eof":
			continue
		}
		if f.Priority() >= byPriority(all, "full_opening_tag") {
			t.Errorf("%s must run after full_opening_tag", f.Name())
		}
		if f.Priority() <= byPriority(all, "single_blank_line_at_eof") {
			t.Errorf("%s must run before single_blank_line_at_eof", f.Name())
		}
	}
	for name, idx := range first {
		if all[idx].Name() != name {
			t.Errorf("position %d: got %s, want %s", idx, all[idx].Name(), name)
		}
	}
	if byPriority(all, "encoding") <= byPriority(all, "full_opening_tag") {
		t.Error("encoding must run first")
	}
}

func byPriority(all []fixer.Fixer, name string) int {
	for _, f := range all {
		if f.Name() == name {
			return f.Priority()
		}
	}
	return 0
}

func TestRiskyFlags(t *testing.T) {
	for _, f := range rules.BuiltIn() {
		want := f.Name() == "function_to_constant"
		if f.IsRisky() != want {
			t.Errorf("%s: IsRisky = %v", f.Name(), f.IsRisky())
		}
	}
}
