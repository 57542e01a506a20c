package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bigcalc/internal/config"
	"bigcalc/internal/trace"
)

// setupTracing builds the tracer from the [trace] config section, with
// explicitly set --trace* flags taking precedence.
func setupTracing(cmd *cobra.Command, cfg config.TraceConfig) (trace.Tracer, *trace.Heartbeat, error) {
	flags := cmd.Root().PersistentFlags()

	output := cfg.Output
	if flags.Changed("trace") {
		v, err := flags.GetString("trace")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get trace flag: %w", err)
		}
		output = v
	}

	level := cfg.Level
	if flags.Changed("trace-level") {
		v, err := flags.GetString("trace-level")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get trace-level flag: %w", err)
		}
		if level, err = trace.ParseLevel(v); err != nil {
			return nil, nil, err
		}
	} else if flags.Changed("trace") && level == trace.LevelOff {
		// --trace alone means "show me something".
		level = trace.LevelPhase
	}

	modeStr := cfg.Mode
	if flags.Changed("trace-mode") {
		v, err := flags.GetString("trace-mode")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
		}
		modeStr = v
	}

	ringSize := cfg.RingSize
	if flags.Changed("trace-ring-size") {
		v, err := flags.GetInt("trace-ring-size")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
		}
		ringSize = v
	}

	heartbeat := cfg.Heartbeat.Duration
	if flags.Changed("trace-heartbeat") {
		v, err := flags.GetDuration("trace-heartbeat")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
		}
		heartbeat = v
	}

	if level == trace.LevelOff {
		return trace.Nop, nil, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: output,
		RingSize:   ringSize,
		Heartbeat:  heartbeat,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	return tracer, trace.StartHeartbeat(tracer, heartbeat), nil
}
