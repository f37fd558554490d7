package schedule

import (
	"math/rand"
	"time"
)

// Rand draws the initial jitter for new entries.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniformly random int in [0, n). n > 0.
	Intn(n int) int
}

// NewRand returns a Rand seeded from the wall clock.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// jitter returns the initial offset in days for a task with interval days.
func jitter(rng Rand, interval int) int {
	if interval <= IntervalDaily {
		return 0
	}
	return rng.Intn(interval)
}
