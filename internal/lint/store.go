package lint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pilgerone/PHP-CS-Fixer/internal/cache"
)

// Текущая версия схемы: увеличить при изменении storeRecord.
const storeSchemaVersion uint16 = 1

// DiskStore keeps lint verdicts as msgpack records, one file per key.
// Safe for concurrent use.
type DiskStore struct {
	mu  sync.RWMutex
	dir string
}

type storeRecord struct {
	Schema uint16
	Valid  bool
	Msg    string
	Line   int
}

// OpenDiskStore opens the store under the user cache directory
// ($XDG_CACHE_HOME/<app>/lint, falling back to ~/.cache).
func OpenDiskStore(app string) (*DiskStore, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskStoreAt(filepath.Join(base, app, "lint"))
}

// OpenDiskStoreAt opens the store in dir, creating it if needed.
func OpenDiskStoreAt(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) pathFor(key uint64) string {
	name := fmt.Sprintf("%016x", key)
	// раскладываем по подкаталогам, чтобы не держать тысячи файлов в одном
	return filepath.Join(s.dir, name[len(name)-2:], name+".mp")
}

// Put stores a verdict; nil means the source is valid.
func (s *DiskStore) Put(key uint64, verdict *LintingError) error {
	if s == nil {
		return nil
	}
	rec := storeRecord{Schema: storeSchemaVersion, Valid: verdict == nil}
	if verdict != nil {
		rec.Msg, rec.Line = verdict.Msg, verdict.Line
	}
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return cache.WriteFileAtomic(s.pathFor(key), data)
}

// Get loads a verdict. found is false for a missing or outdated record.
func (s *DiskStore) Get(key uint64) (verdict *LintingError, found bool, err error) {
	if s == nil {
		return nil, false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var rec storeRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("lint store: %w", err)
	}
	if rec.Schema != storeSchemaVersion {
		return nil, false, nil
	}
	if rec.Valid {
		return nil, true, nil
	}
	return &LintingError{Msg: rec.Msg, Line: rec.Line}, true, nil
}

// DropAll removes every stored verdict.
func (s *DiskStore) DropAll() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(s.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(s.dir, 0o755)
}
