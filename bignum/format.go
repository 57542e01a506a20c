package bignum

import (
	"fmt"
	"strings"
)

// String returns the decimal representation of x.
func (x BigInt) String() string {
	return string(x.Append(nil))
}

// Append appends the decimal representation of x to buf and returns the
// extended buffer.
func (x BigInt) Append(buf []byte) []byte {
	d := x.mag()
	if x.IsNeg() {
		buf = append(buf, '-')
	}
	for i := len(d) - 1; i >= 0; i-- {
		buf = append(buf, '0'+d[i])
	}
	return buf
}

// Format implements fmt.Formatter for the verbs 'd', 's' and 'v'.
// The '+' and ' ' flags force a sign character for non-negative values;
// width pads with spaces, or with zeros after the sign when '0' is set.
func (x BigInt) Format(s fmt.State, verb rune) {
	switch verb {
	case 'd', 's', 'v':
	default:
		fmt.Fprintf(s, "%%!%c(bignum.BigInt=%s)", verb, x.String())
		return
	}

	var sign string
	switch {
	case x.IsNeg():
		sign = "-"
	case s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}
	digits := x.Abs().String()

	pad := 0
	if w, ok := s.Width(); ok {
		pad = max(w-len(sign)-len(digits), 0)
	}

	var b strings.Builder
	b.Grow(len(sign) + len(digits) + pad)
	switch {
	case s.Flag('-'):
		b.WriteString(sign)
		b.WriteString(digits)
		b.WriteString(strings.Repeat(" ", pad))
	case s.Flag('0'):
		b.WriteString(sign)
		b.WriteString(strings.Repeat("0", pad))
		b.WriteString(digits)
	default:
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(sign)
		b.WriteString(digits)
	}
	_, _ = fmt.Fprint(s, b.String())
}
