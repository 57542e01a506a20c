package expr

import (
	"context"
	"errors"
	"testing"
	"time"

	"bigcalc/bignum"
	"bigcalc/internal/trace"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  1 + 2 ", "1 + 2"},
		{"１２３＋４", "123+4"},
		{"7 − 2", "7 - 2"},
		{"6 × 7 ÷ 2", "6 * 7 / 2"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLexer_Tokens(t *testing.T) {
	toks := NewLexer("x = 1_000++ -- ( y ) ^ 2! % 3 / 4 * 5").All()
	want := []Kind{Name, Assign, Int, PlusPlus, MinusMinus, LParen, Name, RParen, Caret, Int, Bang, Percent, Int, Slash, Int, Star, Int, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d = %s, want %s", i, toks[i].Kind, k)
		}
	}
	if toks[2].Text != "1000" {
		t.Errorf("underscores not stripped: %q", toks[2].Text)
	}
	if toks[6].Pos != 17 {
		t.Errorf("y at %d, want 17", toks[6].Pos)
	}
}

func TestLexer_Invalid(t *testing.T) {
	for _, src := range []string{"1__0", "10_", "$", "é"} {
		toks := NewLexer(src).All()
		if toks[0].Kind != Invalid {
			t.Errorf("%q lexed as %s, want invalid", src, toks[0].Kind)
		}
	}
}

func TestEval_Expressions(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"10 - 4 - 3", "3"},
		{"100 / 7 / 2", "7"},
		{"-7 / 2", "-3"},
		{"-7 % 2", "-1"},
		{"7 % -2", "1"},
		{"-2 ^ 2", "-4"},
		{"(-2) ^ 3", "-8"},
		{"2 ^ 3 ^ 2", "512"},
		{"2 ^ 64", "18446744073709551616"},
		{"5!", "120"},
		{"-3!", "-6"},
		{"3!!", "720"},
		{"0!", "1"},
		{"5--3", "8"},
		{"5++3", "8"},
		{"--5", "5"},
		{"+-+5", "-5"},
		{"9223372036854775807 + 1", "9223372036854775808"},
		{"-123 * 0", "0"},
		{"1000 / 7", "142"},
		{"1000 % 7", "6"},
		{"5 - 5", "0"},
		{"1_000_000 * 1_000_000", "1000000000000"},
		{"３０！ / ２９！", "30"},
		{"25! / 23!", "600"},
	}
	for _, tc := range cases {
		got, err := Eval(context.Background(), NewEnv(), tc.src)
		if err != nil {
			t.Errorf("Eval(%q) error: %v", tc.src, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Eval(%q) = %s, want %s", tc.src, got, tc.want)
		}
	}
}

func TestEval_Variables(t *testing.T) {
	ctx := context.Background()
	env := NewEnv()
	steps := []struct {
		src, want string
	}{
		{"x = 41", "41"},
		{"x++", "41"},
		{"x", "42"},
		{"++x", "43"},
		{"x--", "43"},
		{"--x", "41"},
		{"y = x * x - 1", "1680"},
		{"y / x", "40"},
		{"z = -0", "0"},
	}
	for _, st := range steps {
		got, err := Eval(ctx, env, st.src)
		if err != nil {
			t.Fatalf("Eval(%q) error: %v", st.src, err)
		}
		if got.String() != st.want {
			t.Fatalf("Eval(%q) = %s, want %s", st.src, got, st.want)
		}
	}
	names := env.Names()
	if len(names) != 3 || names[0] != "x" || names[1] != "y" || names[2] != "z" {
		t.Errorf("Names() = %v", names)
	}
	if z, _ := env.Get("z"); z.IsNeg() {
		t.Error("z = -0 stored a negative zero")
	}
}

func TestEnv_CloneIsIndependent(t *testing.T) {
	env := NewEnv()
	env.Set("a", bignum.FromInt64(1))
	c := env.Clone()
	if _, err := Eval(context.Background(), c, "a++"); err != nil {
		t.Fatal(err)
	}
	if v, _ := env.Get("a"); v.String() != "1" {
		t.Errorf("original a = %s, want 1", v)
	}
	if v, _ := c.Get("a"); v.String() != "2" {
		t.Errorf("clone a = %s, want 2", v)
	}
}

func TestEval_Errors(t *testing.T) {
	cases := []struct {
		src  string
		want error
		pos  int
	}{
		{"1 / 0", bignum.ErrDivisionByZero, 2},
		{"1 % (3 - 3)", bignum.ErrDivisionByZero, 2},
		{"q + 1", ErrUndefined, 0},
		{"q++", ErrUndefined, 0},
		{"1 +", ErrSyntax, 3},
		{"(1 + 2", ErrSyntax, 6},
		{"1 2", ErrSyntax, 2},
		{"1 $ 2", ErrSyntax, 2},
		{"(-1)!", ErrDomain, 4},
		{"2 ^ -1", ErrDomain, 4},
		{"10 ^ 200000", ErrTooLarge, 3},
		{"100000!", ErrTooLarge, 6},
		{"x = ", ErrSyntax, 3},
	}
	for _, tc := range cases {
		_, err := Eval(context.Background(), NewEnv(), tc.src)
		if !errors.Is(err, tc.want) {
			t.Errorf("Eval(%q) error = %v, want %v", tc.src, err, tc.want)
			continue
		}
		var e *Error
		if !errors.As(err, &e) {
			t.Errorf("Eval(%q) error %T is not *Error", tc.src, err)
			continue
		}
		if e.Pos != tc.pos {
			t.Errorf("Eval(%q) error at %d, want %d (%v)", tc.src, e.Pos, tc.pos, err)
		}
	}
}

func TestEval_MaxDigits(t *testing.T) {
	env := NewEnv()
	env.MaxDigits = 5
	if _, err := Eval(context.Background(), env, "99999 + 1"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("99999+1 with limit 5: %v", err)
	}
	if v, err := Eval(context.Background(), env, "99998 + 1"); err != nil || v.String() != "99999" {
		t.Errorf("99998+1 = %s, %v", v, err)
	}
	env.MaxDigits = -1
	if v, err := Eval(context.Background(), env, "10 ^ 20"); err != nil || v.NumDigits() != 21 {
		t.Errorf("10^20 unlimited = %s, %v", v, err)
	}
}

func TestEval_DigitLimitAtBoundary(t *testing.T) {
	cases := []struct {
		src  string
		want string // empty means ErrTooLarge
	}{
		{"2 ^ 33", "8589934592"},
		{"2 ^ 34", ""},
		{"(-2) ^ 33", "-8589934592"},
		{"9 ^ 10", "3486784401"},
		{"9 ^ 11", ""},
		{"10 ^ 9", "1000000000"},
		{"10 ^ 10", ""},
		{"13!", "6227020800"},
		{"14!", ""},
		{"1 ^ 18446744073709551615", "1"},
		{"(-1) ^ 18446744073709551615", "-1"},
		{"0 ^ 18446744073709551615", "0"},
		{"7 ^ 0", "1"},
	}
	for _, tc := range cases {
		env := NewEnv()
		env.MaxDigits = 10
		got, err := Eval(context.Background(), env, tc.src)
		if tc.want == "" {
			if !errors.Is(err, ErrTooLarge) {
				t.Errorf("Eval(%q) = %s, %v; want ErrTooLarge", tc.src, got, err)
			}
			continue
		}
		if err != nil || got.String() != tc.want {
			t.Errorf("Eval(%q) = %s, %v; want %s", tc.src, got, err, tc.want)
		}
	}
}

func TestEval_HugePowerRejectedQuickly(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, src := range []string{"2 ^ 100000000", "9 ^ 200000", "(-3) ^ 1000000", "123456789 ^ 20000"} {
		if _, err := Eval(ctx, NewEnv(), src); !errors.Is(err, ErrTooLarge) {
			t.Errorf("Eval(%q) error = %v, want ErrTooLarge", src, err)
		}
	}
}

func TestEval_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Eval(ctx, NewEnv(), "1 + 1"); !errors.Is(err, context.Canceled) {
		t.Errorf("Eval with cancelled context: %v", err)
	}
}

func TestError_Message(t *testing.T) {
	_, err := Eval(context.Background(), NewEnv(), "4 / 0")
	if err == nil || err.Error() != "at 2: division by zero" {
		t.Errorf("error = %v", err)
	}
	_, err = Eval(context.Background(), NewEnv(), "nope")
	if err == nil || err.Error() != "at 0: undefined variable: nope" {
		t.Errorf("error = %v", err)
	}
}

func TestEval_TracesOps(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := Eval(ctx, NewEnv(), "2 * 3 + 4!"); err != nil {
		t.Fatal(err)
	}
	var ends []string
	var last trace.Event
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanEnd && ev.Scope == trace.ScopeOp {
			ends = append(ends, ev.Name)
			last = ev
		}
	}
	if len(ends) != 3 || ends[0] != "*" || ends[1] != "!" || ends[2] != "+" {
		t.Fatalf("op spans = %v", ends)
	}
	if last.Extra["digits"] != "2" {
		t.Errorf("+ digits = %q, want 2", last.Extra["digits"])
	}

	ring = trace.NewRingTracer(64, trace.LevelDetail)
	ctx = trace.WithTracer(context.Background(), ring)
	if _, err := Eval(ctx, NewEnv(), "2 * 3"); err != nil {
		t.Fatal(err)
	}
	if ring.Len() != 0 {
		t.Errorf("detail level recorded %d op events", ring.Len())
	}
}
