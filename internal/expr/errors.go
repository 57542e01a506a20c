package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax reports malformed input.
	ErrSyntax = errors.New("syntax error")
	// ErrUndefined reports a reference to an unset variable.
	ErrUndefined = errors.New("undefined variable")
	// ErrDomain reports an operand outside an operator's domain (negative factorial or exponent).
	ErrDomain = errors.New("operand out of domain")
	// ErrTooLarge reports a result longer than the environment's digit limit.
	ErrTooLarge = errors.New("result too large")
)

// Error is an evaluation or parse failure at a byte offset of the normalized input.
type Error struct {
	Pos int
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("at %d: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("at %d: %v: %s", e.Pos, e.Err, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func errorf(pos int, sentinel error, format string, args ...any) *Error {
	return &Error{Pos: pos, Err: sentinel, Msg: fmt.Sprintf(format, args...)}
}
