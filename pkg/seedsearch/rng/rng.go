// Package rng implements the deterministic seed-mixer and the reference
// platform's default PRNG first-draw semantics (spec sections 4.B and
// 4.C): combining up to five 32-bit integers into an RNG seed, and turning
// that RNG seed into a uniform double or a bounded integer.
package rng

import "seedsearch/pkg/seedsearch/hash"

// m31 is the Mersenne prime 2^31-1, the modulus used throughout the
// mixer and the LCG step.
const m31 int64 = 2147483647

// mod reduces x modulo m31 using truncated division (sign follows the
// dividend), matching Go's own % operator semantics — this is spelled
// out explicitly because callers pass already-negative intermediates
// through it and rely on that sign being preserved.
func mod(x int64) int32 {
	return int32(x % m31)
}

// Mix combines five 32-bit integers and a mode flag into a deterministic
// 32-bit RNG seed (spec section 4.B). Each argument is first reduced
// modulo m31, preserving sign.
func Mix(a, b, c, d, e int32, legacy bool) int32 {
	a2 := mod(int64(a))
	b2 := mod(int64(b))
	c2 := mod(int64(c))
	d2 := mod(int64(d))
	e2 := mod(int64(e))

	if legacy {
		sum := int64(a2) + int64(b2) + int64(c2) + int64(d2) + int64(e2)
		return mod(sum)
	}
	return hash.Ints(a2, b2, c2, d2, e2)
}

// Step performs the reference platform's default PRNG first linear
// congruential draw from a 32-bit RNG seed (spec section 4.C), returning
// the reduced value r in [0, m31).
func Step(seed int32) int64 {
	s := int64(seed)
	if s == -2147483648 {
		// abs(INT32_MIN) overflows int32's two's-complement negation;
		// the reference saturates to INT32_MAX.
		s = 2147483647
	} else if s < 0 {
		s = -s
	}

	r := (1121899819*s + 1559595546) % m31
	if r < 0 {
		r += m31
	}
	return r
}

// NextDouble derives the uniform double in [0,1) from an RNG seed.
func NextDouble(seed int32) float64 {
	r := Step(seed)
	return float64(r) / float64(m31)
}

// NextInt derives a bounded integer in [0,N) from an RNG seed. Returns 0
// when n <= 0.
func NextInt(seed int32, n int32) int32 {
	if n <= 0 {
		return 0
	}
	r := Step(seed)
	return int32((r * int64(n)) / m31)
}
