package math

import "golang.org/x/exp/constraints"

func DivFloor[T constraints.Integer](dividend, divisor T) T {
	base := dividend / divisor
	return base
}

func IsPowerOfTwo[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// Mask reduces hash into [0, size) for a power-of-two size.
func Mask[T constraints.Unsigned](hash T, size T) T {
	return hash & (size - 1)
}
