package vmath

// FastRand is a xorshift64 generator (shifts 13, 17, 5)
// The sequence is fixed for a seed and independent of Go's math/rand
type FastRand struct {
	state uint64
}

// NewFastRand seeds the generator; seed 0 is mapped to 1 since xorshift sticks at zero
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
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

// NextBool returns the top bit of the next output
func (r *FastRand) NextBool() bool {
	return r.Next()>>63 == 1
}

// Float64 returns a value in [0,1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo,hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}
