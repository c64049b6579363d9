// Package prof captures CPU and heap profiles of a fix run.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

// Options name the output files; empty paths disable the profile.
type Options struct {
	CPU  string
	Heap string
}

// Session is an active profiling session. Stop is idempotent.
type Session struct {
	opts    Options
	cpuFile *os.File
	once    sync.Once
	err     error
}

// Start begins CPU profiling when requested. The heap profile is written on
// Stop so it reflects the state after the run.
func Start(opts Options) (*Session, error) {
	s := &Session{opts: opts}
	if opts.CPU == "" {
		return s, nil
	}
	f, err := os.Create(opts.CPU)
	if err != nil {
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	s.cpuFile = f
	return s, nil
}

// Stop ends the CPU profile and writes the heap profile.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		var errs []error
		if s.cpuFile != nil {
			pprof.StopCPUProfile()
			errs = append(errs, s.cpuFile.Close())
		}
		if s.opts.Heap != "" {
			errs = append(errs, writeHeap(s.opts.Heap))
		}
		s.err = errors.Join(errs...)
	})
	return s.err
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	return nil
}
