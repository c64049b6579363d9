package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pilgerone/PHP-CS-Fixer/internal/observ"
	"github.com/pilgerone/PHP-CS-Fixer/internal/prof"
	"github.com/pilgerone/PHP-CS-Fixer/internal/progress"
	"github.com/pilgerone/PHP-CS-Fixer/internal/report"
	"github.com/pilgerone/PHP-CS-Fixer/internal/runner"
	"github.com/pilgerone/PHP-CS-Fixer/internal/watch"
)

type fixOptions struct {
	configPath      string
	rules           string
	allowRisky      bool
	dryRun          bool
	usingCache      string
	cacheFile       string
	jobs            int
	maxPasses       int
	linter          string
	format          string
	showProgress    string
	ui              string
	watch           bool
	metricsFile     string
	stopOnViolation bool
	cpuProfile      string
	memProfile      string
}

var fixOpts fixOptions

func init() {
	f := fixCmd.Flags()
	f.StringVar(&fixOpts.configPath, "config", "", "path to the config file (default: discovered upwards)")
	f.StringVar(&fixOpts.rules, "rules", "", `rules to apply: "@PSR2,-cast_spaces" or a JSON object`)
	f.BoolVar(&fixOpts.allowRisky, "allow-risky", false, "allow risky fixers")
	f.BoolVar(&fixOpts.dryRun, "dry-run", false, "only report files that need fixing")
	f.StringVar(&fixOpts.usingCache, "using-cache", "", "use the result cache (yes|no)")
	f.StringVar(&fixOpts.cacheFile, "cache-file", "", "path to the cache file")
	f.IntVar(&fixOpts.jobs, "jobs", 0, "number of files processed in parallel (0 = config)")
	f.IntVar(&fixOpts.maxPasses, "max-passes", 0, "pass cap per file (0 = config)")
	f.StringVar(&fixOpts.linter, "linter", "", "syntax guard (token|php)")
	f.StringVar(&fixOpts.format, "format", "text", "report format (text|json)")
	f.StringVar(&fixOpts.showProgress, "show-progress", "dots", "progress output without the TUI (dots|none)")
	f.StringVar(&fixOpts.ui, "ui", "auto", "interactive progress view (auto|on|off)")
	f.BoolVar(&fixOpts.watch, "watch", false, "keep running and fix files as they change")
	f.StringVar(&fixOpts.metricsFile, "metrics-file", "", "write prometheus textfile metrics to this path")
	f.BoolVar(&fixOpts.stopOnViolation, "stop-on-violation", false, "stop at the first file that needs fixing")
	f.StringVar(&fixOpts.cpuProfile, "cpu-profile", "", "write a CPU profile to this path")
	f.StringVar(&fixOpts.memProfile, "mem-profile", "", "write a heap profile to this path after the run")
}

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Fix PHP files in the given paths",
	Long:  `Fix rewrites every matched file until the enabled rules report no further changes`,
	RunE:  runFix,
}

func runFix(cmd *cobra.Command, args []string) error {
	opts := fixOpts
	opts.format = strings.ToLower(opts.format)
	switch opts.format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be text or json)", opts.format)
	}
	switch opts.showProgress {
	case "dots", "none":
	default:
		return fmt.Errorf("invalid --show-progress value %q (expected dots|none)", opts.showProgress)
	}
	mode, err := readUIMode(opts.ui)
	if err != nil {
		return err
	}
	colorValue, _ := cmd.Flags().GetString("color")
	colorOn, err := applyColorMode(colorValue)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	showTimings, _ := cmd.Flags().GetBool("timings")

	useTUI := opts.format == "text" && !opts.watch && shouldUseTUI(mode)
	logger, closeLog, err := configureLogging(verbose, useTUI)
	if err != nil {
		return err
	}
	defer closeLog()

	profiling, err := prof.Start(prof.Options{CPU: opts.cpuProfile, Heap: opts.memProfile})
	if err != nil {
		return err
	}
	defer func() {
		if err := profiling.Stop(); err != nil {
			logger.Warn("profiling failed", "err", err)
		}
	}()

	timer := observ.NewTimer()
	endSetup := timer.Begin("setup")
	setup, err := prepareRun(cmd, opts, args, logger)
	if err != nil {
		return err
	}
	endSetup(fmt.Sprintf("%d files, %d fixers", len(setup.files), len(setup.runner.Fixers)))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	reportOpts := report.Options{BaseDir: setup.baseDir, Color: colorOn, Verbose: verbose}
	var metrics *observ.Metrics
	if opts.metricsFile != "" {
		metrics = observ.NewMetrics()
	}

	endRun := timer.Begin("fix")
	summary, runErr := executeRun(ctx, setup, opts, useTUI, errOut)
	if summary != nil {
		endRun(fmt.Sprintf("%d files", len(summary.Files)))
		if err := publish(out, summary, opts, reportOpts, metrics, logger); err != nil {
			return err
		}
	} else {
		endRun("aborted")
	}
	if showTimings {
		if err := timer.WriteSummary(errOut); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	if opts.watch {
		return watchAndFix(ctx, setup, opts, reportOpts, metrics, logger, out, errOut)
	}
	if code := summary.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// executeRun runs the fixer over the whole file set with the chosen
// progress output.
func executeRun(ctx context.Context, setup *runSetup, opts fixOptions, useTUI bool, errOut io.Writer) (*runner.Summary, error) {
	r := setup.runner
	if useTUI {
		return runWithUI(ctx, "php-cs-fixer", r, setup.files)
	}
	if opts.showProgress == "dots" && opts.format == "text" {
		dots := progress.NewDotsWriter(errOut, len(setup.files))
		r.Sink = dots
		summary, err := r.Run(ctx, setup.files)
		if dots.Processed() > 0 {
			fmt.Fprintln(errOut)
		}
		return summary, err
	}
	return r.Run(ctx, setup.files)
}

// publish writes the report and, when requested, the metrics textfile.
func publish(out io.Writer, summary *runner.Summary, opts fixOptions, reportOpts report.Options, metrics *observ.Metrics, logger *slog.Logger) error {
	var err error
	if opts.format == "json" {
		err = report.JSON(out, summary, reportOpts)
	} else {
		err = report.Text(out, summary, reportOpts)
	}
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if metrics != nil {
		metrics.Observe(summary)
		if err := metrics.WriteTextfile(opts.metricsFile); err != nil {
			logger.Warn("metrics textfile not written", "path", opts.metricsFile, "err", err)
		}
	}
	return nil
}

// watchAndFix re-runs the fixer on changed files until ctx is cancelled.
func watchAndFix(ctx context.Context, setup *runSetup, opts fixOptions, reportOpts report.Options, metrics *observ.Metrics, logger *slog.Logger, out, errOut io.Writer) error {
	w, err := watch.New(watch.Options{
		Roots:       setup.watchRoots,
		Include:     setup.cfg.Finder.Name,
		ExcludeDirs: setup.cfg.Finder.Exclude,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	fmt.Fprintln(errOut, "watching for changes, press Ctrl+C to stop")
	err = w.Run(ctx, func(ctx context.Context, changed []string) {
		files := setup.filter(changed)
		if len(files) == 0 {
			return
		}
		logger.Debug("files changed", "count", len(files))
		summary, runErr := setup.runner.Run(ctx, files)
		if summary != nil {
			if err := publish(out, summary, opts, reportOpts, metrics, logger); err != nil {
				logger.Error("report failed", "err", err)
			}
		}
		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			logger.Error("fix run failed", "err", runErr)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
