package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bigcalc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bigcalc",
	Short: "Arbitrary-precision integer calculator",
	Long: `bigcalc evaluates integer expressions of any size:
+ - * / % with truncating division, ^ powers, ! factorials and variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: startSession,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(factCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("config", "", "config file (default: nearest bigcalc.toml)")
	flags.Int("max-digits", 0, "reject results longer than this many digits (0 = config or default, -1 = unlimited)")

	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 0, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")

	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go execution trace to this file")
}

// main runs the root command under a context cancelled by Ctrl+C and
// exits with status 1 when the command fails.
func main() {
	rootCmd.Version = version.Current().Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if sess != nil {
		sess.finish(err)
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		}
		os.Exit(1)
	}
}

// errReported marks failures whose details were already printed.
var errReported = errors.New("failed")

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int.
}
