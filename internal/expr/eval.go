package expr

import (
	"context"
	"maps"
	"math"
	"slices"
	"strconv"

	"bigcalc/bignum"
	"bigcalc/internal/trace"
)

// DefaultMaxDigits bounds result length when an Env does not set its own limit.
const DefaultMaxDigits = 100_000

// Env holds variables shared by successive statements.
type Env struct {
	vars map[string]bignum.BigInt
	// MaxDigits caps the decimal length of any intermediate result.
	// Zero means DefaultMaxDigits; a negative value disables the check.
	MaxDigits int
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]bignum.BigInt)}
}

// Get returns the value bound to name.
func (e *Env) Get(name string) (bignum.BigInt, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set binds name to v.
func (e *Env) Set(name string, v bignum.BigInt) {
	if e.vars == nil {
		e.vars = make(map[string]bignum.BigInt)
	}
	e.vars[name] = v
}

// Names returns the bound variable names in sorted order.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// Clone returns an independent copy of the environment.
func (e *Env) Clone() *Env {
	out := &Env{vars: make(map[string]bignum.BigInt, len(e.vars)), MaxDigits: e.MaxDigits}
	maps.Copy(out.vars, e.vars)
	return out
}

func (e *Env) maxDigits() int {
	switch {
	case e.MaxDigits == 0:
		return DefaultMaxDigits
	case e.MaxDigits < 0:
		return int(^uint(0) >> 1)
	default:
		return e.MaxDigits
	}
}

// Eval normalizes src, parses it and evaluates it in env.
// Assignments bind the variable and yield the assigned value.
func Eval(ctx context.Context, env *Env, src string) (bignum.BigInt, error) {
	node, err := Parse(Normalize(src))
	if err != nil {
		return bignum.BigInt{}, err
	}
	return EvalNode(ctx, env, node)
}

// EvalNode evaluates a parsed statement.
func EvalNode(ctx context.Context, env *Env, node Node) (bignum.BigInt, error) {
	if env == nil {
		env = NewEnv()
	}
	ev := evaluator{ctx: ctx, env: env, limit: env.maxDigits()}
	return ev.eval(node)
}

type evaluator struct {
	ctx   context.Context
	env   *Env
	limit int
}

func (ev *evaluator) eval(node Node) (bignum.BigInt, error) {
	if err := ev.ctx.Err(); err != nil {
		return bignum.BigInt{}, err
	}
	switch n := node.(type) {
	case *IntLit:
		return ev.check(n.At, n.Value)
	case *Ident:
		v, ok := ev.env.Get(n.Name)
		if !ok {
			return bignum.BigInt{}, errorf(n.At, ErrUndefined, "%s", n.Name)
		}
		return v, nil
	case *AssignStmt:
		v, err := ev.eval(n.Value)
		if err != nil {
			return bignum.BigInt{}, err
		}
		ev.env.Set(n.Name, v)
		return v, nil
	case *IncDec:
		return ev.incDec(n)
	case *Unary:
		x, err := ev.eval(n.X)
		if err != nil {
			return bignum.BigInt{}, err
		}
		if n.Op == Minus {
			return x.Neg(), nil
		}
		return x, nil
	case *Factorial:
		x, err := ev.eval(n.X)
		if err != nil {
			return bignum.BigInt{}, err
		}
		return ev.op("!", func() (bignum.BigInt, error) { return ev.factorial(n.At, x) })
	case *Binary:
		return ev.binary(n)
	default:
		return bignum.BigInt{}, errorf(node.Pos(), ErrSyntax, "unsupported node %T", node)
	}
}

func (ev *evaluator) incDec(n *IncDec) (bignum.BigInt, error) {
	v, ok := ev.env.Get(n.Name)
	if !ok {
		return bignum.BigInt{}, errorf(n.At, ErrUndefined, "%s", n.Name)
	}
	var result bignum.BigInt
	switch {
	case n.Op == PlusPlus && n.Prefix:
		result = v.Inc()
	case n.Op == PlusPlus:
		result = v.PostInc()
	case n.Prefix:
		result = v.Dec()
	default:
		result = v.PostDec()
	}
	if _, err := ev.check(n.At, v); err != nil {
		return bignum.BigInt{}, err
	}
	ev.env.Set(n.Name, v)
	return result, nil
}

func (ev *evaluator) binary(n *Binary) (bignum.BigInt, error) {
	x, err := ev.eval(n.X)
	if err != nil {
		return bignum.BigInt{}, err
	}
	y, err := ev.eval(n.Y)
	if err != nil {
		return bignum.BigInt{}, err
	}
	return ev.op(n.Op.String(), func() (bignum.BigInt, error) { return ev.apply(n, x, y) })
}

// op runs one arithmetic step inside an op-scoped trace span.
func (ev *evaluator) op(name string, f func() (bignum.BigInt, error)) (bignum.BigInt, error) {
	span, _ := trace.Start(ev.ctx, trace.ScopeOp, name)
	out, err := f()
	if err != nil {
		span.End(err.Error())
		return bignum.BigInt{}, err
	}
	span.WithExtra("digits", strconv.Itoa(out.NumDigits())).End("")
	return out, nil
}

func (ev *evaluator) apply(n *Binary, x, y bignum.BigInt) (bignum.BigInt, error) {
	var (
		out bignum.BigInt
		err error
	)
	switch n.Op {
	case Plus:
		out = bignum.Add(x, y)
	case Minus:
		out = bignum.Sub(x, y)
	case Star:
		if x.NumDigits()+y.NumDigits()-1 > ev.limit {
			return bignum.BigInt{}, ev.tooLarge(n.At)
		}
		out = bignum.Mul(x, y)
	case Slash:
		out, err = bignum.Quo(x, y)
	case Percent:
		out, err = bignum.Rem(x, y)
	case Caret:
		return ev.pow(n, x, y)
	default:
		return bignum.BigInt{}, errorf(n.At, ErrSyntax, "unknown operator %s", n.Op)
	}
	if err != nil {
		return bignum.BigInt{}, &Error{Pos: n.At, Err: err}
	}
	return ev.check(n.At, out)
}

func (ev *evaluator) pow(n *Binary, x, y bignum.BigInt) (bignum.BigInt, error) {
	exp, ok := y.Uint64()
	if !ok {
		if y.IsNeg() {
			return bignum.BigInt{}, errorf(n.Y.Pos(), ErrDomain, "negative exponent %s", y)
		}
		return bignum.BigInt{}, ev.tooLarge(n.At)
	}
	if powDigits(x, exp) > float64(ev.limit)+1 {
		return bignum.BigInt{}, ev.tooLarge(n.At)
	}

	// Square-and-multiply. No squared base is longer than the result.
	result, base := bignum.One(), x
	for exp > 0 {
		if err := ev.ctx.Err(); err != nil {
			return bignum.BigInt{}, err
		}
		if exp&1 == 1 {
			result.MulAssign(base)
		}
		exp >>= 1
		if exp > 0 {
			base = bignum.Mul(base, base)
			if base.NumDigits() > ev.limit {
				return bignum.BigInt{}, ev.tooLarge(n.At)
			}
		}
	}
	return ev.check(n.At, result)
}

// powDigits approximates the decimal length of |x|^exp from the leading
// digits of x.
func powDigits(x bignum.BigInt, exp uint64) float64 {
	if exp == 0 || x.IsZero() {
		return 1
	}
	s := x.Abs().String()
	lead := s[:min(len(s), 15)]
	f, err := strconv.ParseFloat(lead, 64)
	if err != nil {
		return math.Inf(1)
	}
	log10 := float64(len(s)-len(lead)) + math.Log10(f)
	return math.Floor(float64(exp)*log10) + 1
}

func (ev *evaluator) factorial(pos int, x bignum.BigInt) (bignum.BigInt, error) {
	if x.IsNeg() {
		return bignum.BigInt{}, errorf(pos, ErrDomain, "factorial of negative value %s", x)
	}
	n, ok := x.Uint64()
	if !ok || factorialDigits(n) > float64(ev.limit)+1 {
		return bignum.BigInt{}, ev.tooLarge(pos)
	}
	result := bignum.One()
	for i := uint64(2); i <= n; i++ {
		if i%64 == 0 {
			if err := ev.ctx.Err(); err != nil {
				return bignum.BigInt{}, err
			}
		}
		result.MulAssign(bignum.FromUint64(i))
		if result.NumDigits() > ev.limit {
			return bignum.BigInt{}, ev.tooLarge(pos)
		}
	}
	return result, nil
}

// factorialDigits approximates the decimal length of n! from log Gamma.
func factorialDigits(n uint64) float64 {
	lg, _ := math.Lgamma(float64(n) + 1)
	return math.Floor(lg/math.Ln10) + 1
}

func (ev *evaluator) check(pos int, v bignum.BigInt) (bignum.BigInt, error) {
	if v.NumDigits() > ev.limit {
		return bignum.BigInt{}, ev.tooLarge(pos)
	}
	return v, nil
}

func (ev *evaluator) tooLarge(pos int) *Error {
	return errorf(pos, ErrTooLarge, "more than %d digits", ev.limit)
}
