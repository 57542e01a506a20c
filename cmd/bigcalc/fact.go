package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bigcalc/bignum"
	"bigcalc/internal/expr"
)

var factCmd = &cobra.Command{
	Use:   "fact N",
	Short: "Print N! and its number of digits",
	Args:  cobra.ExactArgs(1),
	RunE:  runFact,
}

func init() {
	factCmd.Flags().String("format", "", "output format (text|json, default from config)")
}

func runFact(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	n, err := bignum.Parse(args[0])
	if err != nil {
		return fmt.Errorf("N: %w", err)
	}

	env := expr.NewEnv()
	env.MaxDigits = sess.cfg.Eval.MaxDigits
	done := sess.timer.Track("factorial")
	v, err := expr.EvalNode(cmd.Context(), env, &expr.Factorial{X: &expr.IntLit{Value: n}})
	done(n.String() + "!")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			N      bignum.BigInt `json:"n"`
			Value  bignum.BigInt `json:"value"`
			Digits int           `json:"digits"`
		}{n, v, v.NumDigits()})
	}
	fmt.Fprintln(out, v)
	if !sess.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), faintColor.Sprintf("%s! has %d digits", n, v.NumDigits()))
	}
	return nil
}
