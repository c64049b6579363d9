package lint_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilgerone/PHP-CS-Fixer/internal/lint"
)

type countingLinter struct {
	calls atomic.Int32
	err   error
}

func (*countingLinter) IsAsync() bool { return false }

func (c *countingLinter) LintFile(ctx context.Context, _ string) lint.Result {
	return c.LintSource(ctx, nil)
}

func (c *countingLinter) LintSource(context.Context, []byte) lint.Result {
	c.calls.Add(1)
	return lint.Done(c.err)
}

func TestCachingLinterMemoisesVerdicts(t *testing.T) {
	inner := &countingLinter{}
	l := lint.NewCachingLinter(inner, "test", nil, quiet)
	ctx := context.Background()

	require.NoError(t, l.LintSource(ctx, []byte("<?php echo 1;")).Check())
	require.NoError(t, l.LintSource(ctx, []byte("<?php echo 1;")).Check())
	assert.Equal(t, int32(1), inner.calls.Load())

	require.NoError(t, l.LintSource(ctx, []byte("<?php echo 2;")).Check())
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachingLinterRemembersFailures(t *testing.T) {
	inner := &countingLinter{err: &lint.LintingError{Msg: "syntax error", Line: 3}}
	l := lint.NewCachingLinter(inner, "test", nil, quiet)
	ctx := context.Background()

	for range 2 {
		err := l.LintSource(ctx, []byte("<?php (")).Check()
		var lintErr *lint.LintingError
		require.ErrorAs(t, err, &lintErr)
		assert.Equal(t, 3, lintErr.Line)
	}
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachingLinterDoesNotCacheRunFailures(t *testing.T) {
	inner := &countingLinter{err: errors.New("php crashed")}
	l := lint.NewCachingLinter(inner, "test", nil, quiet)
	ctx := context.Background()

	require.Error(t, l.LintSource(ctx, []byte("<?php")).Check())
	require.Error(t, l.LintSource(ctx, []byte("<?php")).Check())
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachingLinterUsesDiskStore(t *testing.T) {
	store, err := lint.OpenDiskStoreAt(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	src := []byte("<?php foo(;")

	first := &countingLinter{err: &lint.LintingError{Msg: "bad", Line: 1}}
	require.Error(t, lint.NewCachingLinter(first, "php-8.3", store, quiet).LintSource(ctx, src).Check())

	second := &countingLinter{}
	err = lint.NewCachingLinter(second, "php-8.3", store, quiet).LintSource(ctx, src).Check()
	var lintErr *lint.LintingError
	require.ErrorAs(t, err, &lintErr)
	assert.Equal(t, "bad", lintErr.Msg)
	assert.Zero(t, second.calls.Load(), "verdict comes from disk")

	other := &countingLinter{}
	require.NoError(t, lint.NewCachingLinter(other, "php-7.4", store, quiet).LintSource(ctx, src).Check())
	assert.Equal(t, int32(1), other.calls.Load(), "another linter id does not share verdicts")
}
