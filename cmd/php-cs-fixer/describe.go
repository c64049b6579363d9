package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/pilgerone/PHP-CS-Fixer/internal/fixer"
	"github.com/pilgerone/PHP-CS-Fixer/internal/registry"
	"github.com/pilgerone/PHP-CS-Fixer/internal/ruleset"
	"github.com/pilgerone/PHP-CS-Fixer/internal/runner"
	"github.com/pilgerone/PHP-CS-Fixer/internal/source"
)

var describeCmd = &cobra.Command{
	Use:   "describe <fixer>",
	Short: "Describe a fixer with its options and examples",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		colorValue, _ := cmd.Flags().GetString("color")
		if _, err := applyColorMode(colorValue); err != nil {
			return err
		}
		return describe(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

// describe prints the definition of name and renders every sample as a
// diff produced by actually running the fixer.
func describe(ctx context.Context, w io.Writer, name string) error {
	reg := registry.New()
	if err := reg.RegisterBuiltIn(); err != nil {
		return err
	}
	f, ok := reg.Get(name)
	if !ok {
		return fixer.ConfigErrorf("", "rule %q not found", name)
	}
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "Description of %s rule.\n", bold(name))
	d, described := f.(fixer.Described)
	var def fixer.Definition
	if described {
		def = d.Definition()
		fmt.Fprintln(w, def.Summary)
		if def.Description != "" {
			fmt.Fprintln(w, def.Description)
		}
	}
	fmt.Fprintln(w)

	if f.IsRisky() {
		fmt.Fprintln(w, red("Fixer applying this rule is risky."))
		if def.RiskyDescription != "" {
			fmt.Fprintln(w, def.RiskyDescription)
		}
		fmt.Fprintln(w)
	}

	if c, ok := f.(fixer.Configurable); ok && len(c.Options()) > 0 {
		fmt.Fprintln(w, "Fixer is configurable using following options:")
		for _, opt := range c.Options() {
			writeOption(w, opt)
		}
		fmt.Fprintln(w)
	}

	if len(def.Samples) == 0 {
		return nil
	}
	fmt.Fprintln(w, "Fixing examples:")
	for i, sample := range def.Samples {
		if len(sample.Options) == 0 {
			fmt.Fprintf(w, " * Example #%d. Fixing with the default configuration.\n", i+1)
		} else {
			fmt.Fprintf(w, " * Example #%d. Fixing with configuration: %s.\n", i+1, compactJSON(sample.Options))
		}
		out, err := fixSample(ctx, name, f.IsRisky(), sample)
		if err != nil {
			return fmt.Errorf("example #%d: %w", i+1, err)
		}
		if err := writeSampleDiff(w, sample.Code, out); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func writeOption(w io.Writer, opt fixer.Option) {
	fmt.Fprintf(w, "* %s: %s\n", opt.Name, opt.Description)
	if len(opt.Allowed) > 0 {
		vals := make([]string, len(opt.Allowed))
		for i, v := range opt.Allowed {
			vals[i] = compactJSON(v)
		}
		fmt.Fprintf(w, "  Allowed values: %s\n", strings.Join(vals, ", "))
	} else if len(opt.Types) > 0 {
		fmt.Fprintf(w, "  Allowed types: %s\n", strings.Join(opt.Types, ", "))
	}
	fmt.Fprintf(w, "  Default value: %s\n", compactJSON(opt.Default))
}

// fixSample runs only fixer name, configured with the sample options, over
// the sample code. A fresh registry keeps the shared instance unconfigured.
func fixSample(ctx context.Context, name string, risky bool, sample fixer.CodeSample) (string, error) {
	reg := registry.New()
	if err := reg.RegisterBuiltIn(); err != nil {
		return "", err
	}
	var rule any = true
	if len(sample.Options) > 0 {
		rule = sample.Options
	}
	fixers, err := reg.Resolve(ruleset.Rules{name: rule}, risky)
	if err != nil {
		return "", err
	}
	r := runner.Runner{Fixers: fixers}
	res, err := r.FixSource(ctx, source.MetaFor("example.php"), []byte(sample.Code))
	if err != nil {
		return "", err
	}
	if res.Status == runner.StatusFixed {
		return string(res.Output), nil
	}
	return sample.Code, nil
}

func writeSampleDiff(w io.Writer, before, after string) error {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "Original",
		ToFile:   "New",
		Context:  3,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "   ---------- begin diff ----------")
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintln(w, "   "+line)
	}
	fmt.Fprintln(w, "   ----------- end diff -----------")
	return nil
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
