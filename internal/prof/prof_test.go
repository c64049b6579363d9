package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pilgerone/PHP-CS-Fixer/internal/prof"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := prof.Options{CPU: filepath.Join(dir, "cpu.pprof"), Heap: filepath.Join(dir, "heap.pprof")}
	s, err := prof.Start(opts)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, p := range []string{opts.CPU, opts.Heap} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", p)
		}
	}
}

func TestSessionDisabled(t *testing.T) {
	s, err := prof.Start(prof.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	var nilSession *prof.Session
	if err := nilSession.Stop(); err != nil {
		t.Fatal(err)
	}
}
