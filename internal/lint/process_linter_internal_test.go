package lint

import (
	"context"
	"os/exec"
	"testing"
)

func TestParseOutput(t *testing.T) {
	cases := []struct {
		out  string
		msg  string
		line int
	}{
		{
			out:  "PHP Parse error:  syntax error, unexpected 'echo' (T_ECHO) in Standard input code on line 5\nErrors parsing Standard input code\n",
			msg:  "syntax error, unexpected 'echo' (T_ECHO)",
			line: 5,
		},
		{
			out:  "Parse error: syntax error, unexpected token \"echo\" in /tmp/x.php on line 3\nErrors parsing /tmp/x.php\n",
			msg:  `syntax error, unexpected token "echo"`,
			line: 3,
		},
		{
			out: "Errors parsing -\nsomething odd\n",
			msg: "something odd",
		},
		{
			out: "",
			msg: "php -l reported an error",
		},
	}
	for _, tc := range cases {
		got := parseOutput(tc.out)
		if got.Msg != tc.msg || got.Line != tc.line {
			t.Errorf("parseOutput(%q) = %q/%d, want %q/%d", tc.out, got.Msg, got.Line, tc.msg, tc.line)
		}
	}
}

func TestProcessLinter(t *testing.T) {
	if _, err := exec.LookPath("php"); err != nil {
		t.Skip("php is not installed")
	}
	l, err := NewProcessLinter("php", 2)
	if err != nil {
		t.Fatal(err)
	}
	if !l.IsAsync() {
		t.Fatal("process linter must be async")
	}
	ctx := context.Background()
	if err := l.LintSource(ctx, []byte("<?php echo 123;")).Check(); err != nil {
		t.Fatalf("valid source: %v", err)
	}
	err = l.LintSource(ctx, []byte("<?php\n\n\n\necho echo;\n")).Check()
	lintErr, ok := err.(*LintingError)
	if !ok {
		t.Fatalf("invalid source: got %v", err)
	}
	if lintErr.Line != 5 {
		t.Fatalf("line = %d, want 5", lintErr.Line)
	}
}
