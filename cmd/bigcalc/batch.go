package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bigcalc/internal/batch"
	"bigcalc/internal/cache"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Evaluate a file of expressions in parallel",
	Long: `Evaluate one expression per line of FILE ("-" reads stdin).
Blank lines and # comments are skipped. Every line gets its own
environment seeded with [vars]; results are printed in file order.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "parallel evaluations (0 = config or GOMAXPROCS)")
	batchCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	batchCmd.Flags().String("ui", "", "progress UI (auto|on|off, default from config)")
	batchCmd.Flags().String("format", "", "output format (text|json, default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	jobs := sess.cfg.Eval.Jobs
	if cmd.Flags().Changed("jobs") {
		if jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	if uiFlag == "" {
		uiFlag = sess.cfg.Output.UI
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	done := sess.timer.Track("read")
	items, title, err := readBatchInput(cmd.InOrStdin(), args[0])
	done(fmt.Sprintf("%d expressions", len(items)))
	if err != nil {
		return err
	}

	var dc *cache.DiskCache
	if sess.cfg.Cache.Enabled && !noCache {
		if dc, err = cache.Open(sess.cfg.Cache.Dir); err != nil {
			// Evaluation still works without the cache.
			if !sess.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v (continuing without cache)\n", err)
			}
			dc = nil
		}
	}

	req := batch.Request{
		Items:     items,
		Vars:      sess.cfg.Vars,
		MaxDigits: sess.cfg.Eval.MaxDigits,
		Jobs:      jobs,
		Cache:     dc,
		Timer:     sess.timer,
	}

	var results []batch.Result
	if shouldUseTUI(mode, format, sess.quiet) {
		results, err = runBatchWithUI(cmd.Context(), cmd.ErrOrStderr(), title, req)
	} else {
		results, err = batch.Run(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	records := make([]resultRecord, len(results))
	for i, r := range results {
		records[i] = newRecord(r.Line, r.Expr, r.Value, r.Err)
		records[i].Cached = r.Cached
	}
	if err := writeRecords(cmd.OutOrStdout(), format, records, true); err != nil {
		return err
	}

	stats := batch.Summarize(results)
	if !sess.quiet && format == "text" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d evaluated, %d failed, %d from cache\n", stats.Total, stats.Failed, stats.Cached)
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d expressions failed: %w", stats.Failed, stats.Total, errReported)
	}
	return nil
}

func readBatchInput(stdin io.Reader, path string) ([]batch.Item, string, error) {
	if path == "-" {
		items, err := batch.ReadItems(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("stdin: %w", err)
		}
		return items, "stdin", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	items, err := batch.ReadItems(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return items, filepath.Base(path), nil
}
