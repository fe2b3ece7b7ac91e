// Package vmath provides Q32.32 fixed point arithmetic and a seedable xorshift source.
//
// Lattice positions are stored as fixed point so grid intersection tests are exact
// integer modulo checks instead of float equality.
package vmath

import "math"

// Q32.32 Fixed Point constants
const (
	Shift = 32
	Scale = 1 << Shift
)

// --- Arithmetic ---

func FromInt(i int) int64 { return int64(i) << Shift }

// FromFloat rounds to the nearest representable value
func FromFloat(f float64) int64 { return int64(math.Round(f * Scale)) }
func ToFloat(f int64) float64   { return float64(f) / Scale }

// Abs returns absolute value
func Abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0, or 1 (plain integer, not fixed point)
func Sign(x int64) int64 {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}

// RoundTo rounds v to the nearest multiple of step, halves away from zero
func RoundTo(v, step int64) int64 {
	if step <= 0 {
		return v
	}
	q := v / step
	r := v % step
	if 2*Abs(r) >= step {
		q += Sign(r)
	}
	return q * step
}

// IsMultiple reports whether v is an exact multiple of step
func IsMultiple(v, step int64) bool {
	if step == 0 {
		return v == 0
	}
	return v%step == 0
}

// --- Randomness ---

// FastRand is an xorshift64 generator. Not safe for concurrent use.
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	r := &FastRand{state: seed}
	// Small seeds produce low-entropy first outputs
	for i := 0; i < 8; i++ {
		r.Next()
	}
	return r
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}
