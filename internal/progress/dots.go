package progress

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

const dotsLineWidth = 80

// DotsWriter prints one symbol per processed file. With a known total it
// wraps lines and appends a "current / total (pct%)" counter to each line.
type DotsWriter struct {
	mu        sync.Mutex
	w         io.Writer
	total     int
	processed int
	perLine   int
	digits    int
}

// NewDotsWriter returns a dots sink writing to w. total <= 0 disables
// the counters.
func NewDotsWriter(w io.Writer, total int) *DotsWriter {
	d := &DotsWriter{w: w, total: total}
	if total > 0 {
		d.digits = len(strconv.Itoa(total))
		d.perLine = dotsLineWidth - 2*d.digits - 11
	}
	return d
}

// Symbol returns the character printed for status.
func Symbol(status Status) byte {
	switch status {
	case StatusNoChange:
		return '.'
	case StatusFixed:
		return 'F'
	case StatusException, StatusInvalidInput:
		return 'E'
	case StatusInvalidOutput:
		return 'I'
	case StatusSkipped:
		return 'S'
	default:
		return '?'
	}
}

func (d *DotsWriter) OnEvent(evt Event) {
	if evt.Status == StatusQueued || evt.Status == StatusWorking {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.processed++
	out := []byte{Symbol(evt.Status)}
	if d.total > 0 {
		column := d.processed % d.perLine
		last := d.processed == d.total
		if column == 0 || last {
			if column != 0 {
				out = append(out, strings.Repeat(" ", d.perLine-column)...)
			}
			out = append(out, d.counter()...)
			if !last {
				out = append(out, '\n')
			}
		}
	}
	// ошибки записи в прогресс не критичны
	_, _ = d.w.Write(out)
}

func (d *DotsWriter) counter() string {
	pct := (d.processed*100 + d.total/2) / d.total
	return fmt.Sprintf(" %*d / %d (%3d%%)", d.digits, d.processed, d.total, pct)
}

// Processed returns how many final events were written.
func (d *DotsWriter) Processed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.processed
}
