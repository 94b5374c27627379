package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"texconv/internal/diag"
	"texconv/internal/diagfmt"
	"texconv/internal/driver"
	"texconv/internal/observ"
)

type outputOptions struct {
	color      bool
	quiet      bool
	timings    bool
	diagFormat string
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return outputOptions{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	var useColor bool
	switch strings.ToLower(colorFlag) {
	case "on":
		useColor = true
	case "off":
		useColor = false
	case "auto", "":
		useColor = isTerminal(os.Stderr)
	default:
		return outputOptions{}, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return outputOptions{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return outputOptions{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	diagFormat, err := flags.GetString("diagnostics-format")
	if err != nil {
		return outputOptions{}, fmt.Errorf("failed to get diagnostics-format flag: %w", err)
	}
	switch diagFormat {
	case "pretty", "json":
	default:
		return outputOptions{}, fmt.Errorf("invalid --diagnostics-format value %q (expected pretty|json)", diagFormat)
	}
	return outputOptions{color: useColor, quiet: quiet, timings: timings, diagFormat: diagFormat}, nil
}

// printDiagnostics writes the bag of res to w. Quiet mode keeps errors only.
func printDiagnostics(w io.Writer, res *driver.Result, opts outputOptions) error {
	if res == nil || res.Bag.Len() == 0 {
		return nil
	}
	bag := res.Bag
	bag.Sort()
	if opts.quiet {
		if !bag.HasErrors() {
			return nil
		}
		bag = onlyErrors(bag)
	}
	if opts.diagFormat == "json" {
		return diagfmt.JSON(w, bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	}
	diagfmt.Pretty(w, bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     opts.color,
		ShowNotes: true,
		ShowFixes: !opts.quiet,
	})
	return nil
}

func onlyErrors(bag *diag.Bag) *diag.Bag {
	return bag.Filter(func(d diag.Diagnostic) bool { return d.Severity >= diag.SevError })
}

func printTimings(w io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(w, timer.Summary())
}
