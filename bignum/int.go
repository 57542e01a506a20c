package bignum

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidFormat reports text that is not an optionally negative run of decimal digits.
	ErrInvalidFormat = errors.New("invalid integer format")
	// ErrDivisionByZero indicates an attempt to divide by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// BigInt is an arbitrary-precision signed integer stored as decimal digits.
//
// The zero value is 0 and ready to use. A BigInt is a plain value: copying it
// is cheap and safe because digit slices are never written after an
// operation returns them.
type BigInt struct {
	neg bool
	// digits are base-10, least significant first. Canonical form has no
	// most-significant zeros; zero is the single digit 0 (or nil in the zero value).
	digits []uint8
}

// Zero returns 0.
func Zero() BigInt { return BigInt{digits: zeroDigits} }

// One returns 1.
func One() BigInt { return BigInt{digits: []uint8{1}} }

// FromInt64 creates a BigInt from an int64.
func FromInt64(v int64) BigInt {
	// The decimal text of v is parsed rather than negating v, which would
	// overflow for math.MinInt64.
	return MustParse(strconv.FormatInt(v, 10))
}

// FromUint64 creates a BigInt from a uint64.
func FromUint64(v uint64) BigInt {
	return MustParse(strconv.FormatUint(v, 10))
}

func newInt(neg bool, digits []uint8) BigInt {
	digits = trimDigits(digits)
	if isZeroDigits(digits) {
		return Zero()
	}
	return BigInt{neg: neg, digits: digits}
}

func (x BigInt) mag() []uint8 {
	if len(x.digits) == 0 {
		return zeroDigits
	}
	return x.digits
}

// Clone returns a copy of x that shares no storage with it.
func (x BigInt) Clone() BigInt {
	return BigInt{neg: x.neg, digits: cloneDigits(x.mag())}
}

// IsZero reports whether x is zero.
func (x BigInt) IsZero() bool { return isZeroDigits(x.mag()) }

// IsNeg reports whether x is strictly negative.
func (x BigInt) IsNeg() bool { return x.neg && !x.IsZero() }

// Sign returns -1, 0, or 1 depending on the sign of x.
func (x BigInt) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// NumDigits returns the number of decimal digits in |x|. Zero has one digit.
func (x BigInt) NumDigits() int { return len(x.mag()) }

// Neg returns -x. Negating zero yields zero.
func (x BigInt) Neg() BigInt {
	return newInt(!x.neg, x.mag())
}

// Abs returns |x|.
func (x BigInt) Abs() BigInt {
	return newInt(false, x.mag())
}

// Cmp compares x and y and returns -1, 0, or 1.
func (x BigInt) Cmp(y BigInt) int {
	xn, yn := x.IsNeg(), y.IsNeg()
	switch {
	case xn && !yn:
		return -1
	case !xn && yn:
		return 1
	}
	cmp := cmpMagnitudes(x.mag(), y.mag())
	if xn {
		return -cmp
	}
	return cmp
}

// CmpAbs compares |x| and |y| and returns -1, 0, or 1.
func (x BigInt) CmpAbs(y BigInt) int {
	return cmpMagnitudes(x.mag(), y.mag())
}

// Equal reports whether x and y hold the same value.
func (x BigInt) Equal(y BigInt) bool { return x.Cmp(y) == 0 }

// Less reports whether x < y.
func (x BigInt) Less(y BigInt) bool { return x.Cmp(y) < 0 }
