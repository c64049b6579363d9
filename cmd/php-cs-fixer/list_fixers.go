package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/registry"
)

var (
	listFilter    string
	listRiskyOnly bool
)

func init() {
	listFixersCmd.Flags().StringVar(&listFilter, "filter", "", "show only fixers whose name matches the glob")
	listFixersCmd.Flags().BoolVar(&listRiskyOnly, "risky", false, "show only risky fixers")
}

var listFixersCmd = &cobra.Command{
	Use:   "list-fixers",
	Short: "List the built-in fixers in application order",
	RunE: func(cmd *cobra.Command, args []string) error {
		colorValue, _ := cmd.Flags().GetString("color")
		if _, err := applyColorMode(colorValue); err != nil {
			return err
		}
		reg := registry.New()
		if err := reg.RegisterBuiltIn(); err != nil {
			return err
		}
		return listFixers(cmd.OutOrStdout(), reg.Fixers(), listFilter, listRiskyOnly)
	},
}

// listFixers prints name, priority, risk and summary for every fixer that
// passes the filters. Fixers are expected in application order.
func listFixers(w io.Writer, fixers []fixer.Fixer, filter string, riskyOnly bool) error {
	var match glob.Glob
	if filter != "" {
		g, err := glob.Compile(filter)
		if err != nil {
			return fmt.Errorf("invalid --filter %q: %w", filter, err)
		}
		match = g
	}
	risky := color.New(color.FgRed).SprintFunc()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range fixers {
		if match != nil && !match.Match(f.Name()) {
			continue
		}
		if riskyOnly && !f.IsRisky() {
			continue
		}
		marker := ""
		if f.IsRisky() {
			marker = risky("risky")
		}
		summary := ""
		if d, ok := f.(fixer.Described); ok {
			summary = d.Definition().Summary
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", f.Name(), f.Priority(), marker, summary)
	}
	return tw.Flush()
}
