package lint_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilgerone/PHP-CS-Fixer/internal/lint"
)

func TestTokenLinterIsSync(t *testing.T) {
	assert.False(t, lint.TokenLinter{}.IsAsync())
}

func TestTokenLinterLintSource(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		invalid bool
		msg     string
		line    int
	}{
		{name: "valid", src: "<?php echo 123;"},
		{name: "html only", src: "<p>hello</p>"},
		{name: "control flow", src: "<?php if ($a) echo 1; else echo 2; foreach ($b as $c): echo $c; endforeach;"},
		{
			name:    "echo echo",
			src:     "<?php\n    print \"line 2\";\n    print \"line 3\";\n    print \"line 4\";\n    echo echo;\n",
			invalid: true,
			msg:     "syntax error, unexpected 'echo' (T_ECHO)",
			line:    5,
		},
		{name: "unclosed paren", src: "<?php\nfoo(1;\n", invalid: true, msg: "syntax error, unclosed '('", line: 2},
		{name: "stray brace", src: "<?php\n$a = 1;\n}\n", invalid: true, msg: "syntax error, unexpected '}'", line: 3},
		{name: "crossed", src: "<?php\n$a = [1);\n", invalid: true, msg: "syntax error, unexpected ')'", line: 2},
		{name: "unterminated string", src: "<?php\n$a = 'abc;\n", invalid: true, line: 2},
		{name: "unterminated comment", src: "<?php\n/* abc\n", invalid: true, line: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := lint.TokenLinter{}.LintSource(context.Background(), []byte(tc.src)).Check()
			if !tc.invalid {
				require.NoError(t, err)
				return
			}
			var lintErr *lint.LintingError
			require.ErrorAs(t, err, &lintErr)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, lintErr.Msg)
			}
			assert.Equal(t, tc.line, lintErr.Line)
		})
	}
}

func TestTokenLinterLintFile(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.php")
	invalid := filepath.Join(dir, "invalid.php")
	require.NoError(t, os.WriteFile(valid, []byte("<?php\necho 1;\n"), 0o644))
	require.NoError(t, os.WriteFile(invalid, []byte("<?php\n\n\n\necho echo;\n"), 0o644))

	ctx := context.Background()
	assert.NoError(t, lint.TokenLinter{}.LintFile(ctx, valid).Check())

	err := lint.TokenLinter{}.LintFile(ctx, invalid).Check()
	var lintErr *lint.LintingError
	require.ErrorAs(t, err, &lintErr)
	assert.Equal(t, "syntax error, unexpected 'echo' (T_ECHO) on line 5", lintErr.Error())

	err = lint.TokenLinter{}.LintFile(ctx, filepath.Join(dir, "missing.php")).Check()
	require.Error(t, err)
	assert.NotErrorAs(t, err, &lintErr)
}
