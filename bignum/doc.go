// Package bignum implements an arbitrary-precision signed integer stored as
// base-10 digits.
//
// Arithmetic uses schoolbook algorithms: column addition and subtraction,
// digit-pair multiplication with a single carry pass, and long division with
// a descending digit search. Division truncates toward zero and the remainder
// takes the sign of the dividend, matching Go's native / and % operators.
//
//	a := bignum.FromInt64(math.MaxInt64)
//	b := bignum.Add(a, bignum.One())   // 9223372036854775808
//	q, r, err := bignum.QuoRem(b, bignum.FromInt64(7))
//
// Malformed text fails with ErrInvalidFormat and a zero divisor fails with
// ErrDivisionByZero; every other operation is total.
package bignum
