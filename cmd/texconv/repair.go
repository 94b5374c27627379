package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"texconv/internal/driver"
	"texconv/internal/fix"
)

var repairCmd = &cobra.Command{
	Use:   "repair [flags] [expr]",
	Short: "Print the expression with its suggested fixes applied",
	Long: `Repair tokenizes the expression and applies the fixes attached to its
diagnostics, such as closing unbalanced groups`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().String("surface", "latex", "input notation (latex|plain)")
}

func runRepair(cmd *cobra.Command, args []string) error {
	surface, err := cmd.Flags().GetString("surface")
	if err != nil {
		return fmt.Errorf("failed to get surface flag: %w", err)
	}
	dir, err := surfaceDirection(surface)
	if err != nil {
		return err
	}
	opts, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	input, name, err := readExpression(cmd, args)
	if err != nil {
		return err
	}

	res, err := driver.Tokenize(cmd.Context(), driver.Request{
		Name:      name,
		Input:     input,
		Direction: dir,
		Config:    cfg.Convert,
	})
	if err != nil {
		if perr := printDiagnostics(cmd.ErrOrStderr(), res, opts); perr != nil {
			return perr
		}
		return fmt.Errorf("tokenization failed: %w", err)
	}

	repaired, err := fix.Apply(res.File.ID, res.File.Content, res.Bag.Items())
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		return err
	}
	if !opts.quiet {
		for _, a := range repaired.Applied {
			fmt.Fprintf(cmd.ErrOrStderr(), "fixed %s: %s\n", a.Code.ID(), a.Title)
		}
		for _, s := range repaired.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", s.Title, s.Reason)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), repaired.Output)
	return nil
}

// surfaceDirection maps an input notation to the direction that reads it.
func surfaceDirection(surface string) (driver.Direction, error) {
	switch surface {
	case "latex":
		return driver.ToPlain, nil
	case "plain":
		return driver.ToLatex, nil
	}
	return driver.ToPlain, fmt.Errorf("unknown surface %q (expected latex|plain)", surface)
}
