package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that every shuffle in a run is reproducible from one number.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ResolveSeed returns seed unchanged, or a time-derived seed when seed is zero.
// Callers log the resolved value so a surprising round can be replayed.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := time.Now().UnixNano()
	if s == 0 {
		s = 1
	}
	return s
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
