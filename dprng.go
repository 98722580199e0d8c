package qbench

import "math/rand/v2"

// DPRNG is a Deterministic Pseudo-Random Number Generator based on the xorshift* algorithm
// (see https://en.wikipedia.org/wiki/Xorshift#xorshift*).
// The harness uses it for bootstrap resampling of runtime samples. Circuit generation uses LCG instead,
// because its sequence has to match other implementations.
// This random number generator is deterministic in the sequence of numbers it generates. It has a period of 2^64-1.
// This random number generator is not cryptographically secure.
// This random number generator is not thread-safe.
// The state must not be zero.
type DPRNG struct {
	State uint64
	Round uint64 // for debugging purposes
}

// NewDPRNG returns a generator seeded with the first non-zero seed given.
// Without a non-zero seed the generator is seeded from the runtime's random source.
func NewDPRNG(seed ...uint64) *DPRNG {
	for _, s := range seed {
		if s != 0 {
			return &DPRNG{State: s}
		}
	}
	s := rand.Uint64()
	for s == 0 {
		s = rand.Uint64()
	}
	return &DPRNG{State: s}
}

// Uint64 returns the next pseudo-random number in the sequence.
func (thisState *DPRNG) Uint64() uint64 {
	x := thisState.State
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	thisState.State = x
	thisState.Round++
	return x * 0x2545F4914F6CDD1D
}

// UInt32N returns a pseudo-random number in [0,n) without modulo bias.
// For n=0 and n=1 it returns 0.
// See https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction
func (thisState *DPRNG) UInt32N(n uint32) uint32 {
	v := uint32(thisState.Uint64() >> 32)
	prod := uint64(v) * uint64(n)
	low := uint32(prod)
	if low < n {
		thresh := -n % n
		for low < thresh {
			v = uint32(thisState.Uint64() >> 32)
			prod = uint64(v) * uint64(n)
			low = uint32(prod)
		}
	}
	return uint32(prod >> 32)
}
