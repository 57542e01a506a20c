package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bigcalc/internal/prof"
)

// setupProfiling starts the profilers requested by the persistent
// --cpu-profile, --mem-profile and --runtime-trace flags.
func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()

	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if opts == (prof.Options{}) {
		return nil, nil
	}
	return prof.Start(opts)
}
