package bignum

// base is the radix of the digit slices. Digits are stored least significant first.
const base = 10

var zeroDigits = []uint8{0}

// trimDigits drops redundant most-significant zeros, keeping a single 0 for zero.
func trimDigits(d []uint8) []uint8 {
	for len(d) > 1 && d[len(d)-1] == 0 {
		d = d[:len(d)-1]
	}
	if len(d) == 0 {
		return zeroDigits
	}
	return d
}

func isZeroDigits(d []uint8) bool {
	d = trimDigits(d)
	return len(d) == 1 && d[0] == 0
}

// cmpMagnitudes compares two canonical magnitudes and returns -1, 0, or 1.
func cmpMagnitudes(a, b []uint8) int {
	a = trimDigits(a)
	b = trimDigits(b)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// addMagnitudes returns a+b. The result may be one digit longer than the longer operand.
func addMagnitudes(a, b []uint8) []uint8 {
	n := max(len(a), len(b))
	out := make([]uint8, n+1)
	carry := 0
	for i := range n {
		sum := carry
		if i < len(a) {
			sum += int(a[i])
		}
		if i < len(b) {
			sum += int(b[i])
		}
		out[i] = uint8(sum % base) //nolint:gosec // G115: sum%base is a single digit.
		carry = sum / base
	}
	out[n] = uint8(carry) //nolint:gosec // G115: carry is 0 or 1.
	return trimDigits(out)
}

// subMagnitudes returns a-b. The caller guarantees |a| >= |b|.
func subMagnitudes(a, b []uint8) []uint8 {
	out := make([]uint8, len(a))
	borrow := 0
	for i := range a {
		diff := int(a[i]) - borrow
		if i < len(b) {
			diff -= int(b[i])
		}
		if diff < 0 {
			diff += base
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint8(diff) //nolint:gosec // G115: diff is in [0, 9] here.
	}
	return trimDigits(out)
}

// mulMagnitudes multiplies every digit pair into an accumulator indexed by
// i+j, then runs one carry pass over it.
func mulMagnitudes(a, b []uint8) []uint8 {
	if isZeroDigits(a) || isZeroDigits(b) {
		return zeroDigits
	}
	acc := make([]uint64, len(a)+len(b))
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			acc[i+j] += uint64(ai) * uint64(bj)
		}
	}

	out := make([]uint8, 0, len(acc)+1)
	var carry uint64
	for _, cell := range acc {
		cur := cell + carry
		out = append(out, uint8(cur%base)) //nolint:gosec // G115: cur%base is a single digit.
		carry = cur / base
	}
	for carry > 0 {
		out = append(out, uint8(carry%base)) //nolint:gosec // G115: carry%base is a single digit.
		carry /= base
	}
	return trimDigits(out)
}

// mulSmall returns d*m for a single digit m.
func mulSmall(d []uint8, m uint8) []uint8 {
	if m == 0 || isZeroDigits(d) {
		return zeroDigits
	}
	if m == 1 {
		return d
	}
	out := make([]uint8, len(d)+1)
	carry := 0
	for i, di := range d {
		cur := int(di)*int(m) + carry
		out[i] = uint8(cur % base) //nolint:gosec // G115: cur%base is a single digit.
		carry = cur / base
	}
	out[len(d)] = uint8(carry) //nolint:gosec // G115: carry < base.
	return trimDigits(out)
}

// shiftIn returns d*base + digit, i.e. d with digit appended as the new least
// significant position.
func shiftIn(d []uint8, digit uint8) []uint8 {
	if isZeroDigits(d) {
		return []uint8{digit}
	}
	out := make([]uint8, len(d)+1)
	out[0] = digit
	copy(out[1:], d)
	return out
}

func cloneDigits(d []uint8) []uint8 {
	if len(d) == 0 {
		return zeroDigits
	}
	out := make([]uint8, len(d))
	copy(out, d)
	return out
}
