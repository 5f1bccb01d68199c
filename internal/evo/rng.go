package evo

import (
	"math/rand"
	"time"
)

// NewSeededRNG creates a seeded random number generator. If seed is 0 the
// current time is used, so repeated unseeded runs diverge; callers that
// need reproducibility must always pass an explicit seed.
func NewSeededRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
