package bignum

// divMagnitudes performs schoolbook long division of a by b (b != 0).
// Quotient digits are produced most significant first and reversed at the
// end. When remOnly is set the quotient is not recorded and q is nil.
func divMagnitudes(a, b []uint8, remOnly bool) (q, r []uint8) {
	a = trimDigits(a)
	b = trimDigits(b)
	if cmpMagnitudes(a, b) < 0 {
		if remOnly {
			return nil, a
		}
		return zeroDigits, a
	}

	// multiples[k] = k*b, so the digit search never re-multiplies.
	var multiples [base][]uint8
	for k := range multiples {
		multiples[k] = mulSmall(b, uint8(k)) //nolint:gosec // G115: k < base.
	}

	i := len(a) - 1
	partial := zeroDigits
	// Leading window: these positions contribute only zero quotient digits.
	for ; i >= 0; i-- {
		next := shiftIn(partial, a[i])
		if cmpMagnitudes(next, b) >= 0 {
			break
		}
		partial = next
	}

	var quot []uint8
	if !remOnly {
		quot = make([]uint8, 0, i+1)
	}
	for ; i >= 0; i-- {
		partial = shiftIn(partial, a[i])
		digit := base - 1
		for digit > 0 && cmpMagnitudes(multiples[digit], partial) > 0 {
			digit--
		}
		partial = subMagnitudes(partial, multiples[digit])
		if !remOnly {
			quot = append(quot, uint8(digit)) //nolint:gosec // G115: digit < base.
		}
	}

	if remOnly {
		return nil, trimDigits(partial)
	}
	for lo, hi := 0, len(quot)-1; lo < hi; lo, hi = lo+1, hi-1 {
		quot[lo], quot[hi] = quot[hi], quot[lo]
	}
	return trimDigits(quot), trimDigits(partial)
}
