package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
)

// Manager is what the runner sees of the cache.
type Manager interface {
	// NeedFixing reports whether path with content has to be processed.
	NeedFixing(path string, content []byte) bool
	SetFile(path string, content []byte)
	ClearFile(path string)
	Save() error
}

// NullManager is used when caching is off: every file needs fixing.
type NullManager struct{}

func (NullManager) NeedFixing(string, []byte) bool { return true }
func (NullManager) SetFile(string, []byte)         {}
func (NullManager) ClearFile(string)               {}
func (NullManager) Save() error                    { return nil }

// FileManager keeps the cache in a JSON file. The file is read once on open
// and written atomically on Save.
type FileManager struct {
	mu     sync.Mutex
	file   string
	dir    string
	cache  *Cache
	dirty  bool
	logger *slog.Logger
}

// OpenFile loads the cache at file for sig. A missing file starts empty.
// An unreadable or corrupt document, or one built with another signature,
// is discarded with a warning and rebuilt from scratch.
func OpenFile(file string, sig Signature, logger *slog.Logger) (*FileManager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	m := &FileManager{
		file:   abs,
		dir:    filepath.Dir(abs),
		cache:  New(sig),
		logger: logger,
	}

	data, err := os.ReadFile(abs)
	switch {
	case errors.Is(err, os.ErrNotExist):
		m.dirty = true
		return m, nil
	case err != nil:
		logger.Warn("cache file is not readable, rebuilding", "file", abs, "err", err)
		m.dirty = true
		return m, nil
	}

	loaded, err := Deserialize(data)
	if err != nil {
		logger.Warn("cache file is corrupt, rebuilding", "file", abs, "err", err)
		m.dirty = true
		return m, nil
	}
	if !loaded.Signature().Equals(sig) {
		logger.Info("configuration changed, cache invalidated", "file", abs, "entries", loaded.Len())
		m.dirty = true
		return m, nil
	}
	m.cache = loaded
	return m, nil
}

// Path returns the absolute location of the cache file.
func (m *FileManager) Path() string { return m.file }

// Cache exposes the in-memory cache; callers must not mutate it concurrently
// with the manager.
func (m *FileManager) Cache() *Cache { return m.cache }

func (m *FileManager) key(path string) string {
	rel, err := source.RelativePath(path, m.dir)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return rel
}

func (m *FileManager) NeedFixing(path string, content []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.cache.Get(m.key(path))
	return !ok || h != Hash(content)
}

func (m *FileManager) SetFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, h := m.key(path), Hash(content)
	if old, ok := m.cache.Get(k); ok && old == h {
		return
	}
	m.cache.Set(k, h)
	m.dirty = true
}

func (m *FileManager) ClearFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(path)
	if !m.cache.Has(k) {
		return
	}
	m.cache.Clear(k)
	m.dirty = true
}

// Save writes the document if anything changed since it was loaded.
func (m *FileManager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirty {
		return nil
	}
	data, err := m.cache.Serialize()
	if err != nil {
		return fmt.Errorf("cache: serialize: %w", err)
	}
	if err := WriteFileAtomic(m.file, data); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	m.dirty = false
	return nil
}

// WriteFileAtomic пишет во временный файл рядом и переименовывает:
// читатель видит либо старый документ, либо новый целиком.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".php-cs-fixer-cache-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp)
		}
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	committed = true
	return nil
}
