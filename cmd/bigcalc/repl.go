package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/internal/expr"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive read-eval-print loop",
	Long: `Read expressions line by line. Variables persist between lines and
"ans" holds the previous result. Commands: :vars, :reset, :quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		prompt := ""
		if isTerminal(os.Stdin) && !sess.quiet {
			prompt = "> "
		}
		return runREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), prompt, newEnv)
	},
}

// runREPL evaluates lines from in until EOF, ":quit" or cancellation.
// Errors are printed and do not end the loop.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, prompt string, fresh func() *expr.Env) error {
	env := fresh()
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for {
		if prompt != "" {
			fmt.Fprint(out, prompt)
		}
		if !sc.Scan() {
			if prompt != "" {
				fmt.Fprintln(out)
			}
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "", "#":
			continue
		case ":quit", ":q", ":exit":
			return nil
		case ":reset":
			env = fresh()
			continue
		case ":vars":
			for _, name := range env.Names() {
				v, _ := env.Get(name)
				fmt.Fprintf(out, "%s = %s\n", nameColor.Sprint(name), v)
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		v, err := evalTraced(ctx, env, line)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(out, "%s %v\n", errorColor.Sprint("error:"), err)
			continue
		}
		env.Set("ans", v)
		fmt.Fprintln(out, v)
	}
}
