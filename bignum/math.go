package bignum

// Pow returns x**n using square-and-multiply. Pow(x, 0) is 1, including for x == 0.
func Pow(x BigInt, n uint64) BigInt {
	result := One()
	b := x
	for n > 0 {
		if n&1 == 1 {
			result = Mul(result, b)
		}
		n >>= 1
		if n == 0 {
			break
		}
		b = Mul(b, b)
	}
	return result
}

// Factorial returns n!.
func Factorial(n uint64) BigInt {
	result := One()
	for i := uint64(2); i <= n; i++ {
		result = Mul(result, FromUint64(i))
	}
	return result
}
