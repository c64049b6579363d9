package watch

import (
	"slices"
	"sync"
	"time"
)

// Debouncer collects paths and emits them as one sorted batch once no new
// path arrived for the interval.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	output   chan []string
	closed   bool
}

// NewDebouncer returns a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]struct{}),
		output:   make(chan []string, 16),
	}
}

// Output returns the channel receiving batches.
func (d *Debouncer) Output() <-chan []string { return d.output }

// Add records path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || len(d.pending) == 0 {
		return
	}
	batch := make([]string, 0, len(d.pending))
	for p := range d.pending {
		batch = append(batch, p)
	}
	slices.Sort(batch)
	d.pending = make(map[string]struct{})
	select {
	case d.output <- batch:
	default:
		// потребитель отстал: вернуть пути в ожидание
		for _, p := range batch {
			d.pending[p] = struct{}{}
		}
		d.timer = time.AfterFunc(d.interval, d.flush)
	}
}

// Close stops the timer and closes the output channel.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.output)
}
