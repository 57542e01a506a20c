package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/bignum"
	"bigcalc/internal/expr"
	"bigcalc/internal/trace"
)

var evalCmd = &cobra.Command{
	Use:   "eval EXPR...",
	Short: "Evaluate expressions in one shared environment",
	Long: `Evaluate each argument in order. Variables assigned by one argument
are visible to the next, and predefined [vars] from bigcalc.toml are set.`,
	Example: `  bigcalc eval "x = 2^128" "x * x" "x % 1_000_000_007"
  bigcalc eval --format json "30!"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().String("format", "", "output format (text|json, default from config)")
	evalCmd.Flags().BoolP("verbose", "v", false, "echo each expression before its result")
}

func runEval(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	env := newEnv()
	done := sess.timer.Track("eval")
	records, failed := evalAll(cmd.Context(), env, args)
	done(strconv.Itoa(len(records)) + " expressions")

	if err := writeRecords(cmd.OutOrStdout(), format, records, verbose); err != nil {
		return err
	}
	if failed {
		return errReported
	}
	return nil
}

// evalAll evaluates srcs in order in env. Evaluation stops at the first
// failure, which is the last record returned.
func evalAll(ctx context.Context, env *expr.Env, srcs []string) ([]resultRecord, bool) {
	records := make([]resultRecord, 0, len(srcs))
	for _, src := range srcs {
		v, err := evalTraced(ctx, env, src)
		records = append(records, newRecord(0, src, v, err))
		if err != nil {
			return records, true
		}
	}
	return records, false
}

func evalTraced(ctx context.Context, env *expr.Env, src string) (bignum.BigInt, error) {
	span, ctx := trace.Start(ctx, trace.ScopeJob, "expr")
	v, err := expr.Eval(ctx, env, src)
	if err != nil {
		span.End(err.Error())
		return v, err
	}
	span.WithExtra("digits", strconv.Itoa(v.NumDigits())).End("")
	return v, nil
}

// newEnv returns an environment seeded with the configured variables.
func newEnv() *expr.Env {
	env := expr.NewEnv()
	env.MaxDigits = sess.cfg.Eval.MaxDigits
	for name, v := range sess.cfg.Vars {
		env.Set(name, v)
	}
	return env
}

func formatFlag(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", err
	}
	if format == "" {
		format = sess.cfg.Output.Format
	}
	format = strings.ToLower(format)
	return format, checkFormat(format)
}
