package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"texconv/internal/driver"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] file",
	Short: "Convert every line of a file",
	Long: `Batch converts a file holding one expression per line. Lines are converted
in parallel; results are printed in input order, one per line, and failed
lines print as empty lines`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("to", "plain", "target notation (plain|latex)")
	batchCmd.Flags().Int("jobs", 0, "parallel conversions (0 = GOMAXPROCS or the config value)")
	batchCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	batchCmd.Flags().Bool("drop-cache", false, "clear the on-disk cache before converting")
	batchCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	toFlag, err := cmd.Flags().GetString("to")
	if err != nil {
		return fmt.Errorf("failed to get to flag: %w", err)
	}
	dir, err := driver.ParseDirection(toFlag)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
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
	if cmd.Flags().Changed("jobs") {
		if cfg.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if cmd.Flags().Changed("cache") {
		if cfg.Cache, err = cmd.Flags().GetBool("cache"); err != nil {
			return fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return fmt.Errorf("failed to get drop-cache flag: %w", err)
	}

	reqs, err := driver.LoadBatch(path, dir, cfg.Convert)
	if err != nil {
		return err
	}

	batchOpts := driver.BatchOptions{Jobs: cfg.Jobs}
	if cfg.Cache || dropCache {
		cache, err := driver.OpenDiskCache("texconv")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if dropCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if cfg.Cache {
			batchOpts.Cache = cache
		}
	}

	started := time.Now()
	var items []driver.BatchItem
	if shouldUseTUI(mode) && !opts.quiet {
		items, err = runBatchWithUI(cmd.Context(), path, reqs, batchOpts)
	} else {
		items, err = driver.ConvertBatch(cmd.Context(), reqs, batchOpts)
	}
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	failed, cached := 0, 0
	for _, item := range items {
		if err := printDiagnostics(cmd.ErrOrStderr(), item.Result, opts); err != nil {
			return err
		}
		if item.Err != nil {
			failed++
			fmt.Fprintln(cmd.OutOrStdout())
			continue
		}
		if item.Result.Cached {
			cached++
		}
		fmt.Fprintln(cmd.OutOrStdout(), item.Result.Output)
	}

	if opts.timings {
		fmt.Fprintf(cmd.ErrOrStderr(), "converted %d expressions (%d cached) in %.1f ms\n",
			len(items), cached, toMillis(time.Since(started)))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(items))
	}
	return nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
