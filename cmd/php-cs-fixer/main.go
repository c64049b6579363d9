package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pilgerone/PHP-CS-Fixer/internal/config"
	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "php-cs-fixer",
	Short:         "PHP coding standards fixer",
	Long:          `php-cs-fixer rewrites PHP sources to follow a configured set of coding standard rules`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a process exit code out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// main registers subcommands and persistent flags, executes the root command
// and turns the returned error into a process exit code.
func main() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(listFixersCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging and per-file details")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	err := rootCmd.Execute()
	code := exitCode(err)
	var exitErr *exitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(code)
}

// exitCode maps a command error to the process status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var fixerErr *fixer.ConfigurationError
	if errors.As(err, &fixerErr) {
		if fixerErr.Fixer != "" {
			return 32
		}
		return 16
	}
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return 16
	}
	return 1
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
