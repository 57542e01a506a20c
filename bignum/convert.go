package bignum

import (
	"math"

	"fortio.org/safecast"
)

// Uint64 converts x to uint64 if x is non-negative and fits.
func (x BigInt) Uint64() (uint64, bool) {
	if x.IsNeg() {
		return 0, false
	}
	return magnitudeUint64(x.mag())
}

// Int64 converts x to int64 if it fits.
func (x BigInt) Int64() (int64, bool) {
	mag, ok := magnitudeUint64(x.mag())
	if !ok {
		return 0, false
	}
	if !x.IsNeg() {
		v, err := safecast.Conv[int64](mag)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	// Negative: allow magnitude up to 2^63.
	switch {
	case mag > uint64(math.MaxInt64)+1:
		return 0, false
	case mag == uint64(math.MaxInt64)+1:
		return math.MinInt64, true
	default:
		return -int64(mag), true //nolint:gosec // G115: mag <= MaxInt64 here.
	}
}

func magnitudeUint64(d []uint8) (uint64, bool) {
	var v uint64
	for i := len(d) - 1; i >= 0; i-- {
		if v > (math.MaxUint64-uint64(d[i]))/base {
			return 0, false
		}
		v = v*base + uint64(d[i])
	}
	return v, true
}
