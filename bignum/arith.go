package bignum

// Add returns a+b.
func Add(a, b BigInt) BigInt {
	an, bn := a.IsNeg(), b.IsNeg()
	switch {
	case !an && !bn:
		return newInt(false, addMagnitudes(a.mag(), b.mag()))
	case an && bn:
		return newInt(true, addMagnitudes(a.mag(), b.mag()))
	case an:
		// -|a| + b = b - |a|
		return Sub(b, a.Abs())
	default:
		// a + -|b| = a - |b|
		return Sub(a, b.Abs())
	}
}

// Sub returns a-b.
func Sub(a, b BigInt) BigInt {
	an, bn := a.IsNeg(), b.IsNeg()
	switch {
	case an && !bn:
		// -|a| - b = -(|a| + b)
		return newInt(true, addMagnitudes(a.mag(), b.mag()))
	case !an && bn:
		// a - -|b| = a + |b|
		return newInt(false, addMagnitudes(a.mag(), b.mag()))
	}

	// Same sign: the result magnitude is the difference of the magnitudes.
	// For negatives, -|a| - -|b| = |b| - |a|, so the sign flips.
	if cmpMagnitudes(a.mag(), b.mag()) >= 0 {
		return newInt(an, subMagnitudes(a.mag(), b.mag()))
	}
	return newInt(!an, subMagnitudes(b.mag(), a.mag()))
}

// Mul returns a*b.
func Mul(a, b BigInt) BigInt {
	if a.IsZero() || b.IsZero() {
		return Zero()
	}
	return newInt(a.IsNeg() != b.IsNeg(), mulMagnitudes(a.mag(), b.mag()))
}

// QuoRem returns the truncated quotient a/b and the remainder a%b.
// The remainder takes the sign of a. It fails with ErrDivisionByZero if b is zero.
func QuoRem(a, b BigInt) (q, r BigInt, err error) {
	if b.IsZero() {
		return BigInt{}, BigInt{}, ErrDivisionByZero
	}
	qm, rm := divMagnitudes(a.mag(), b.mag(), false)
	return newInt(a.IsNeg() != b.IsNeg(), qm), newInt(a.IsNeg(), rm), nil
}

// Quo returns the quotient a/b truncated toward zero.
func Quo(a, b BigInt) (BigInt, error) {
	if b.IsZero() {
		return BigInt{}, ErrDivisionByZero
	}
	if a.CmpAbs(b) < 0 {
		return Zero(), nil
	}
	qm, _ := divMagnitudes(a.mag(), b.mag(), false)
	return newInt(a.IsNeg() != b.IsNeg(), qm), nil
}

// Rem returns the remainder a%b, which has the sign of a.
func Rem(a, b BigInt) (BigInt, error) {
	if b.IsZero() {
		return BigInt{}, ErrDivisionByZero
	}
	_, rm := divMagnitudes(a.mag(), b.mag(), true)
	return newInt(a.IsNeg(), rm), nil
}

// AddAssign sets z to z+y and returns z.
func (z *BigInt) AddAssign(y BigInt) *BigInt {
	*z = Add(*z, y)
	return z
}

// SubAssign sets z to z-y and returns z.
func (z *BigInt) SubAssign(y BigInt) *BigInt {
	*z = Sub(*z, y)
	return z
}

// MulAssign sets z to z*y and returns z.
func (z *BigInt) MulAssign(y BigInt) *BigInt {
	*z = Mul(*z, y)
	return z
}

// QuoAssign sets z to z/y. z is left unchanged on error.
func (z *BigInt) QuoAssign(y BigInt) error {
	q, err := Quo(*z, y)
	if err != nil {
		return err
	}
	*z = q
	return nil
}

// RemAssign sets z to z%y. z is left unchanged on error.
func (z *BigInt) RemAssign(y BigInt) error {
	r, err := Rem(*z, y)
	if err != nil {
		return err
	}
	*z = r
	return nil
}

// Inc increments z and returns the new value.
func (z *BigInt) Inc() BigInt {
	*z = Add(*z, One())
	return *z
}

// Dec decrements z and returns the new value.
func (z *BigInt) Dec() BigInt {
	*z = Sub(*z, One())
	return *z
}

// PostInc increments z and returns the value it held before.
func (z *BigInt) PostInc() BigInt {
	old := *z
	*z = Add(*z, One())
	return old
}

// PostDec decrements z and returns the value it held before.
func (z *BigInt) PostDec() BigInt {
	old := *z
	*z = Sub(*z, One())
	return old
}
