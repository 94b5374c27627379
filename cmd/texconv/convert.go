package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"texconv/internal/driver"
	"texconv/internal/observ"
)

var plainCmd = &cobra.Command{
	Use:   "plain [expr]",
	Short: "Convert a LaTeX expression to plain text",
	Long:  `Convert reads the expression from the argument, or from stdin when it is omitted`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args, driver.ToPlain)
	},
}

var latexCmd = &cobra.Command{
	Use:   "latex [expr]",
	Short: "Convert a plain-text expression to LaTeX",
	Long:  `Convert reads the expression from the argument, or from stdin when it is omitted`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args, driver.ToLatex)
	},
}

func runConvert(cmd *cobra.Command, args []string, dir driver.Direction) error {
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

	var timer *observ.Timer
	if opts.timings {
		timer = observ.NewTimer()
	}
	res, convErr := driver.Convert(cmd.Context(), driver.Request{
		Name:      name,
		Input:     input,
		Direction: dir,
		Config:    cfg.Convert,
		Timer:     timer,
	})
	if err := printDiagnostics(cmd.ErrOrStderr(), res, opts); err != nil {
		return err
	}
	if convErr != nil {
		return fmt.Errorf("conversion failed: %w", convErr)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Output)
	printTimings(cmd.ErrOrStderr(), timer)
	return nil
}

// readExpression returns the argument, or stdin without its final line
// break when no argument is given.
func readExpression(cmd *cobra.Command, args []string) (input, name string, err error) {
	if len(args) == 1 {
		return args[0], "<arg>", nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	input = strings.TrimSuffix(string(data), "\n")
	input = strings.TrimSuffix(input, "\r")
	return input, "<stdin>", nil
}
