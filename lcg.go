package qbench

import "math"

const (
	// LCGModulus is the Mersenne prime 2^31-1 used by the Park-Miller generator.
	LCGModulus int64 = 2147483647
	// LCGMultiplier is the "minimal standard" multiplier recommended by Park, Miller and Stockmeyer.
	LCGMultiplier int64 = 48271
)

// LCG is a Lehmer (Park-Miller) multiplicative congruential generator.
// It exists to make "random" benchmark circuits reproducible: for a fixed seed the sequence
// of Next, IntN and Angle results is identical on every platform and across implementations
// that use 64-bit integer arithmetic and IEEE-754 doubles.
// This random number generator is not cryptographically secure.
// This random number generator is not thread-safe. Give every goroutine its own instance.
// The state is always in [1, LCGModulus-1].
type LCG struct {
	State int64
}

// NewLCG returns a generator seeded with seed reduced modulo LCGModulus.
// Seeds that reduce to zero (0, LCGModulus, multiples thereof) are mapped to LCGModulus-1.
// Negative seeds use the non-negative remainder, so -5 yields LCGModulus-5.
func NewLCG(seed int64) *LCG {
	s := seed % LCGModulus
	if s < 0 {
		s += LCGModulus
	}
	if s <= 0 {
		s += LCGModulus - 1
	}
	return &LCG{State: s}
}

// Next advances the generator and returns the new state.
// The product of a 31-bit state and the multiplier fits comfortably into 64 bits.
func (l *LCG) Next() int64 {
	l.State = (l.State * LCGMultiplier) % LCGModulus
	return l.State
}

// IntN returns Next() % max.
// For max <= 0 it returns 0 without advancing the generator. Circuits generated by
// earlier versions depend on this, so do not turn it into an error.
func (l *LCG) IntN(max int) int {
	if max <= 0 {
		return 0
	}
	return int(l.Next() % int64(max))
}

// Angle returns a rotation angle in [-π, π).
func (l *LCG) Angle() float64 {
	u := float64(l.Next()) / float64(LCGModulus)
	// the conversion forces rounding of the product, which rules out a fused multiply-add
	return float64(u*(2*math.Pi)) - math.Pi
}
