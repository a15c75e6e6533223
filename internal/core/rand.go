package core

import (
	"math/rand"
	"time"
)

// Rand is the random stream consumed by course generation and exploration.
// *rand.Rand satisfies it; tests substitute deterministic stubs.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a seeded source. A zero seed is replaced by the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
