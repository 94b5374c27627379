package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"texconv/internal/prof"
	"texconv/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "texconv",
	Short: "Convert math expressions between LaTeX and plain text",
	Long: `texconv converts mathematical expressions between a LaTeX-like notation
and a plain-text notation, reporting every input it had to repair`,
	SilenceUsage:      true,
	PersistentPreRunE: setupCommand,
}

// main executes the root command; a failed command exits with status 1.
func main() {
	err := rootCmd.Execute()
	teardown()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(plainCmd)
	rootCmd.AddCommand(latexCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress warnings and informational diagnostics")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per expression")
	flags.String("diagnostics-format", "pretty", "diagnostics output format (pretty|json)")
	flags.String("config", "", "path to texconv.toml (default: search from the working directory up)")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
}

// teardown releases what setupCommand acquired; set by setupCommand.
var teardown = func() {}

func setupCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	cpuPath, err := flags.GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memPath, err := flags.GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	session, err := prof.Start(cpuPath, memPath)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		_ = session.Stop()
		return err
	}
	teardown = func() {
		cleanup()
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
