package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/semaphore"
)

// ProcessLinter runs "php -l" in a child process. LintSource only starts the
// process; Result.Check waits for it. At most MaxProcesses run at once.
type ProcessLinter struct {
	executable string
	sem        *semaphore.Weighted
}

// NewProcessLinter resolves executable on PATH. maxProcesses <= 0 means 1.
func NewProcessLinter(executable string, maxProcesses int) (*ProcessLinter, error) {
	if executable == "" {
		executable = "php"
	}
	path, err := exec.LookPath(executable)
	if err != nil {
		return nil, fmt.Errorf("lint: php executable %q: %w", executable, err)
	}
	if maxProcesses <= 0 {
		maxProcesses = 1
	}
	return &ProcessLinter{executable: path, sem: semaphore.NewWeighted(int64(maxProcesses))}, nil
}

// Executable returns the resolved interpreter path.
func (l *ProcessLinter) Executable() string { return l.executable }

func (*ProcessLinter) IsAsync() bool { return true }

func (l *ProcessLinter) LintFile(ctx context.Context, path string) Result {
	return l.start(ctx, nil, path)
}

func (l *ProcessLinter) LintSource(ctx context.Context, src []byte) Result {
	// без имени файла php -l читает stdin
	return l.start(ctx, bytes.NewReader(src))
}

type processResult struct {
	done chan struct{}
	err  error
}

func (r *processResult) Check() error {
	<-r.done
	return r.err
}

func (l *ProcessLinter) start(ctx context.Context, stdin io.Reader, args ...string) Result {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return Done(fmt.Errorf("lint: %w", err))
	}
	cmd := exec.CommandContext(ctx, l.executable, append([]string{"-n", "-d", "display_errors=stderr", "-l"}, args...)...)
	cmd.Stdin = stdin
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Start(); err != nil {
		l.sem.Release(1)
		return Done(fmt.Errorf("lint: start %s: %w", l.executable, err))
	}

	r := &processResult{done: make(chan struct{})}
	go func() {
		defer close(r.done)
		defer l.sem.Release(1)
		r.err = interpretExit(cmd.Wait(), out.String())
	}()
	return r
}

func interpretExit(waitErr error, output string) error {
	if waitErr == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return fmt.Errorf("lint: %w", waitErr)
	}
	if exitErr.ExitCode() < 0 {
		// убит сигналом или отменой контекста
		return fmt.Errorf("lint: interrupted: %w", waitErr)
	}
	return parseOutput(output)
}

var (
	parseErrorRe = regexp.MustCompile(`(?m)^(?:PHP )?(?:Parse|Fatal) error:\s*(.+?)(?: in (?:.+?))? on line (\d+)\s*$`)
	noiseRe      = regexp.MustCompile(`(?m)^(?:Errors parsing .*|No syntax errors detected in .*)$`)
)

// parseOutput turns php -l output into a LintingError.
func parseOutput(output string) *LintingError {
	if m := parseErrorRe.FindStringSubmatch(output); m != nil {
		line, _ := strconv.Atoi(m[2])
		return &LintingError{Msg: strings.TrimSpace(m[1]), Line: line}
	}
	msg := strings.TrimSpace(noiseRe.ReplaceAllString(output, ""))
	if msg == "" {
		msg = "php -l reported an error"
	}
	return &LintingError{Msg: msg}
}
