package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bigcalc/bignum"
	"bigcalc/internal/expr"
	"bigcalc/internal/observ"
	"bigcalc/internal/version"
)

// runCLI executes the root command with an isolated config and cache.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bigcalc.toml")
	body := "[cache]\ndir = \"" + filepath.ToSlash(filepath.Join(dir, "cache")) + "\"\n[vars]\nbase = 10\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--color", "off", "--quiet"}, args...))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	sess = nil
	err := rootCmd.ExecuteContext(context.Background())
	if sess != nil {
		sess.finish(err)
	}
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default; cobra keeps values
// between executions of the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func noColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestCLI_Eval(t *testing.T) {
	out, _, err := runCLI(t, "", "eval", "x = base ^ 20", "x + 1", "(-x) / 3")
	if err != nil {
		t.Fatal(err)
	}
	want := "100000000000000000000\n100000000000000000001\n-33333333333333333333\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestCLI_EvalError(t *testing.T) {
	out, _, err := runCLI(t, "", "eval", "1", "1 / 0", "2")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if out != "1\nerror: at 2: division by zero\n" {
		t.Errorf("output = %q", out)
	}
}

func TestCLI_BatchJSON(t *testing.T) {
	out, _, err := runCLI(t, "# squares\n2^64\n\n7 % -3\n", "batch", "--format", "json", "--ui", "off", "-")
	if err != nil {
		t.Fatal(err)
	}
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatal(err)
	}
	if len(raw) != 2 {
		t.Fatalf("got %d records", len(raw))
	}
	if string(raw[0]["value"]) != "18446744073709551616" || string(raw[0]["line"]) != "2" {
		t.Errorf("record 0 = %v", raw[0])
	}
	if string(raw[1]["value"]) != "1" || string(raw[1]["line"]) != "4" {
		t.Errorf("record 1 = %v", raw[1])
	}
}

func TestCLI_BatchFailures(t *testing.T) {
	out, _, err := runCLI(t, "1+1\nnope\n", "batch", "--ui", "off", "--no-cache", "-")
	if !errors.Is(err, errReported) || !strings.Contains(err.Error(), "1 of 2 expressions failed") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out, "1: 1+1 = 2\n") || !strings.Contains(out, "2: nope = error: at 0: undefined variable: nope\n") {
		t.Errorf("output = %q", out)
	}
}

func TestCLI_Fact(t *testing.T) {
	out, _, err := runCLI(t, "", "fact", "25")
	if err != nil {
		t.Fatal(err)
	}
	if out != "15511210043330985984000000\n" {
		t.Errorf("25! = %q", out)
	}
	if _, _, err := runCLI(t, "", "fact", "--", "-1"); !errors.Is(err, expr.ErrDomain) {
		t.Errorf("fact -1 err = %v", err)
	}
	if _, _, err := runCLI(t, "", "fact", "x"); !errors.Is(err, bignum.ErrInvalidFormat) {
		t.Errorf("fact x err = %v", err)
	}
}

func TestCLI_Profiling(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	if _, _, err := runCLI(t, "", "--cpu-profile", cpu, "--mem-profile", mem, "eval", "30!"); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{cpu, mem} {
		if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
			t.Errorf("%s not written: %v", p, err)
		}
	}
}

func TestCLI_VersionJSON(t *testing.T) {
	out, _, err := runCLI(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var p versionPayload
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatal(err)
	}
	if p.Tool != "bigcalc" || p.Version != version.Current().Version {
		t.Errorf("payload = %+v", p)
	}
}

func TestRunREPL(t *testing.T) {
	noColor(t)
	in := strings.Join([]string{
		"a = 6",
		"a * 7",
		"ans + 1",
		"# comment",
		"a++",
		":vars",
		"1 / 0",
		":reset",
		"a",
		":quit",
		"99",
	}, "\n")
	var out bytes.Buffer
	err := runREPL(context.Background(), strings.NewReader(in), &out, "", expr.NewEnv)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"6",
		"42",
		"43",
		"6",
		"a = 7",
		"ans = 6",
		"error: at 2: division by zero",
		"error: at 0: undefined variable: a",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("repl output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestEvalAll_StopsAtFirstError(t *testing.T) {
	recs, failed := evalAll(context.Background(), expr.NewEnv(), []string{"1", "x", "2"})
	if !failed || len(recs) != 2 || recs[1].Error == "" {
		t.Errorf("records = %+v, failed = %v", recs, failed)
	}
}

func TestWriteRecords_Text(t *testing.T) {
	noColor(t)
	recs := []resultRecord{
		newRecord(3, "2*2", bignum.FromInt64(4), nil),
		newRecord(0, "q", bignum.BigInt{}, errors.New("boom")),
	}
	var buf bytes.Buffer
	if err := writeRecords(&buf, "text", recs, true); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "3: 2*2 = 4\nq = error: boom\n" {
		t.Errorf("text = %q", got)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("invalid mode accepted")
	}
	if shouldUseTUI(uiModeAuto, "json", false) {
		t.Error("auto mode must not draw over json output")
	}
}

func TestResolveColor(t *testing.T) {
	if on, err := resolveColor("on", os.Stdout); !on || err != nil {
		t.Errorf("on = %v, %v", on, err)
	}
	if on, err := resolveColor("off", os.Stdout); on || err != nil {
		t.Errorf("off = %v, %v", on, err)
	}
	if _, err := resolveColor("purple", os.Stdout); err == nil {
		t.Error("invalid color accepted")
	}
}

func TestPrintTimings(t *testing.T) {
	timer := observ.NewTimer()
	timer.Track("eval")("1 expressions")

	var text bytes.Buffer
	printTimings(&text, timer, "text")
	if !strings.Contains(text.String(), "eval") || !strings.Contains(text.String(), "total") {
		t.Errorf("text timings = %q", text.String())
	}

	var js bytes.Buffer
	printTimings(&js, timer, "json")
	var payload struct {
		Timings observ.Report `json:"timings"`
	}
	if err := json.Unmarshal(js.Bytes(), &payload); err != nil || len(payload.Timings.Phases) != 1 {
		t.Errorf("json timings = %q, %v", js.String(), err)
	}

	var empty bytes.Buffer
	printTimings(&empty, observ.NewTimer(), "text")
	if empty.Len() != 0 {
		t.Errorf("empty timer printed %q", empty.String())
	}
}
