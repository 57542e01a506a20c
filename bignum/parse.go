package bignum

import (
	"fmt"
	"io"
)

// Parse converts decimal text of the form -?[0-9]+ into a BigInt.
// Leading zeros are accepted and dropped; "-0" parses as 0.
func Parse(s string) (BigInt, error) {
	body := s
	neg := false
	if len(body) > 0 && body[0] == '-' {
		neg = true
		body = body[1:]
	}
	if body == "" {
		return BigInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	// Read from the least significant end so digits land in storage order.
	digits := make([]uint8, 0, len(body))
	for i := len(body) - 1; i >= 0; i-- {
		ch := body[i]
		if ch < '0' || ch > '9' {
			return BigInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		digits = append(digits, ch-'0')
	}
	return newInt(neg, digits), nil
}

// MustParse is like Parse but panics if s is malformed.
func MustParse(s string) BigInt {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// Scan implements fmt.Scanner. It skips leading space and reads a single
// -?[0-9]+ token. Supported verbs are 'd', 's' and 'v'.
func (z *BigInt) Scan(state fmt.ScanState, verb rune) error {
	switch verb {
	case 'd', 's', 'v':
	default:
		return fmt.Errorf("bignum: unsupported scan verb %%%c", verb)
	}
	state.SkipSpace()

	first := true
	tok, err := state.Token(false, func(r rune) bool {
		if first {
			first = false
			return r == '-' || (r >= '0' && r <= '9')
		}
		return r >= '0' && r <= '9'
	})
	if err != nil {
		return err
	}
	if len(tok) == 0 {
		return io.ErrUnexpectedEOF
	}
	x, err := Parse(string(tok))
	if err != nil {
		return err
	}
	*z = x
	return nil
}
