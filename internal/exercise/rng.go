package exercise

// RNG returns the next pseudo-random float in [0, 1) on every call.
type RNG func() float64

// NewRNG returns a mulberry32 generator seeded with the low 32 bits of seed.
// The generator is fast, non-cryptographic and fully deterministic: two
// generators built from the same seed yield the same sequence. Each RNG owns
// its state, so separate generators may be used from separate goroutines.
func NewRNG(seed int64) RNG {
	state := uint32(seed)
	return func() float64 {
		state += 0x6D2B79F5
		t := (state ^ (state >> 15)) * (1 | state)
		t = (t + (t^(t>>7))*(61|t)) ^ t
		return float64(t^(t>>14)) / 4294967296
	}
}
