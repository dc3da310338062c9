// Package randutil derives the explicit random sources threaded through the
// equity engine.
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
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed when it is non-nil, otherwise a time derived value.
func Seed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}

// Split draws a child source from parent. Children drawn in the same order
// from the same parent are identical, which keeps parallel workers
// reproducible.
func Split(parent *rand.Rand) *rand.Rand {
	return New(parent.Int64())
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
