package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bigcalc/internal/config"
	"bigcalc/internal/observ"
	"bigcalc/internal/prof"
	"bigcalc/internal/trace"
)

// session is the per-invocation state shared by every command.
type session struct {
	cfg       config.Config
	useColor  bool
	quiet     bool
	timings   bool
	timer     *observ.Timer
	tracer    trace.Tracer
	heartbeat *trace.Heartbeat
	span      *trace.Span
	profiler  *prof.Session
	stderr    io.Writer
}

var sess *session

// startSession loads configuration, applies global flags and starts
// tracing. It runs before every subcommand.
func startSession(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Resolve(configPath, ".")
	if err != nil {
		return err
	}

	colorFlag := cfg.Output.Color
	if flags.Changed("color") {
		if colorFlag, err = flags.GetString("color"); err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	useColor, err := resolveColor(colorFlag, os.Stdout)
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	if flags.Changed("max-digits") {
		if cfg.Eval.MaxDigits, err = flags.GetInt("max-digits"); err != nil {
			return fmt.Errorf("failed to get max-digits flag: %w", err)
		}
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	tracer, heartbeat, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		return err
	}
	profiler, err := setupProfiling(cmd)
	if err != nil {
		heartbeat.Stop()
		_ = tracer.Close()
		return err
	}

	s := &session{
		cfg:       cfg,
		useColor:  useColor,
		quiet:     quiet,
		timings:   timings,
		timer:     observ.NewTimer(),
		tracer:    tracer,
		heartbeat: heartbeat,
		profiler:  profiler,
		stderr:    cmd.ErrOrStderr(),
	}
	ctx := trace.WithTracer(cmd.Context(), tracer)
	s.span, ctx = trace.Start(ctx, trace.ScopeCommand, cmd.Name())
	if cfg.Path != "" {
		trace.Point(tracer, trace.ScopeCommand, "config", cfg.Path, s.span.ID())
	}
	cmd.SetContext(ctx)
	sess = s
	return nil
}

// finish ends the command span, prints timings and releases the tracer.
// When err is set and the tracer keeps a ring, the ring is dumped to stderr.
func (s *session) finish(err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	s.span.End(detail)
	s.heartbeat.Stop()
	if perr := s.profiler.Stop(); perr != nil {
		fmt.Fprintf(s.stderr, "profile: %v\n", perr)
	}

	if s.timings {
		printTimings(s.stderr, s.timer, s.cfg.Output.Format)
	}
	if err != nil {
		if ring := trace.RingOf(s.tracer); ring != nil && ring.Len() > 0 {
			fmt.Fprintln(s.stderr, "trace (most recent events):")
			if dumpErr := ring.Dump(s.stderr, trace.FormatText); dumpErr != nil {
				fmt.Fprintf(s.stderr, "trace: dump error: %v\n", dumpErr)
			}
		}
	}
	if cerr := s.tracer.Close(); cerr != nil {
		fmt.Fprintf(s.stderr, "trace: close error: %v\n", cerr)
	}
}

func resolveColor(value string, out *os.File) (bool, error) {
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return os.Getenv("NO_COLOR") == "" && isTerminal(out), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}
