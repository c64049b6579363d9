package observ

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pilgerone/PHP-CS-Fixer/internal/runner"
)

// Metrics holds the counters of one process on a private registry, so
// tests and repeated watch runs never collide with global state.
type Metrics struct {
	reg          *prometheus.Registry
	files        *prometheus.CounterVec
	fixers       *prometheus.CounterVec
	fileDuration prometheus.Histogram
	passes       prometheus.Histogram
	runs         prometheus.Counter
	lastRun      prometheus.Gauge
	lastExit     prometheus.Gauge
}

// NewMetrics registers the collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		files: f.NewCounterVec(prometheus.CounterOpts{
			Name: "php_cs_fixer_files_total",
			Help: "Processed files by result status.",
		}, []string{"status"}),
		fixers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "php_cs_fixer_fixer_applied_total",
			Help: "Files changed by each fixer.",
		}, []string{"fixer"}),
		fileDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "php_cs_fixer_file_duration_seconds",
			Help:    "Time spent on one file.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		passes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "php_cs_fixer_passes",
			Help:    "Passes needed per processed file.",
			Buckets: prometheus.LinearBuckets(1, 1, runner.DefaultMaxPasses),
		}),
		runs: f.NewCounter(prometheus.CounterOpts{
			Name: "php_cs_fixer_runs_total",
			Help: "Completed runs.",
		}),
		lastRun: f.NewGauge(prometheus.GaugeOpts{
			Name: "php_cs_fixer_last_run_duration_seconds",
			Help: "Wall time of the most recent run.",
		}),
		lastExit: f.NewGauge(prometheus.GaugeOpts{
			Name: "php_cs_fixer_last_run_exit_code",
			Help: "Exit status bits of the most recent run.",
		}),
	}
}

// Observe folds a run summary into the counters.
func (m *Metrics) Observe(s *runner.Summary) {
	if m == nil || s == nil {
		return
	}
	m.runs.Inc()
	m.lastRun.Set(s.Elapsed.Seconds())
	m.lastExit.Set(float64(s.ExitCode()))
	for _, f := range s.Files {
		m.files.WithLabelValues(string(f.Status)).Inc()
		m.fileDuration.Observe(f.Elapsed.Seconds())
		if f.Passes > 0 {
			m.passes.Observe(float64(f.Passes))
		}
		for _, name := range f.AppliedFixers {
			m.fixers.WithLabelValues(name).Inc()
		}
	}
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.reg }

// WriteTextfile writes the metrics in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
