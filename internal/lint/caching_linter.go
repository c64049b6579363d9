package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// CachingLinter memoises the verdict of another linter by content. Only
// verdicts are remembered: failures to run the check are returned as is.
type CachingLinter struct {
	inner  Linter
	id     string
	store  *DiskStore
	logger *slog.Logger

	mu  sync.Mutex
	mem map[uint64]*LintingError // nil значит "валидно"
}

// NewCachingLinter wraps inner. id names the inner linter (and its version)
// so verdicts of different interpreters never mix. store may be nil.
func NewCachingLinter(inner Linter, id string, store *DiskStore, logger *slog.Logger) *CachingLinter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingLinter{inner: inner, id: id, store: store, logger: logger, mem: make(map[uint64]*LintingError)}
}

func (l *CachingLinter) IsAsync() bool { return l.inner.IsAsync() }

func (l *CachingLinter) LintFile(ctx context.Context, path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Done(fmt.Errorf("lint: %w", err))
	}
	return l.LintSource(ctx, data)
}

func (l *CachingLinter) LintSource(ctx context.Context, src []byte) Result {
	key := l.key(src)
	if verdict, ok := l.lookup(key); ok {
		return Done(asError(verdict))
	}
	return &cachingResult{owner: l, key: key, inner: l.inner.LintSource(ctx, src)}
}

func (l *CachingLinter) key(src []byte) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(l.id)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(src)
	return d.Sum64()
}

func (l *CachingLinter) lookup(key uint64) (*LintingError, bool) {
	l.mu.Lock()
	verdict, ok := l.mem[key]
	l.mu.Unlock()
	if ok || l.store == nil {
		return verdict, ok
	}
	verdict, ok, err := l.store.Get(key)
	if err != nil {
		l.logger.Warn("lint cache entry unreadable", "err", err)
		return nil, false
	}
	if ok {
		l.remember(key, verdict)
	}
	return verdict, ok
}

func (l *CachingLinter) remember(key uint64, verdict *LintingError) {
	l.mu.Lock()
	l.mem[key] = verdict
	l.mu.Unlock()
}

func (l *CachingLinter) record(key uint64, verdict *LintingError) {
	l.remember(key, verdict)
	if l.store == nil {
		return
	}
	if err := l.store.Put(key, verdict); err != nil {
		l.logger.Warn("lint cache write failed", "err", err)
	}
}

type cachingResult struct {
	owner *CachingLinter
	key   uint64
	inner Result

	once sync.Once
	err  error
}

func (r *cachingResult) Check() error {
	r.once.Do(func() {
		r.err = r.inner.Check()
		var lintErr *LintingError
		switch {
		case r.err == nil:
			r.owner.record(r.key, nil)
		case errors.As(r.err, &lintErr):
			r.owner.record(r.key, lintErr)
		}
	})
	return r.err
}

// asError не даёт typed nil попасть в интерфейс error.
func asError(v *LintingError) error {
	if v == nil {
		return nil
	}
	return v
}
