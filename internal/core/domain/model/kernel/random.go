package kernel

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random is a seedable source of randomness that is safe for concurrent use.
// Every randomized decision in the system (gateway delay and decline, preparation
// time, driver pick, delivery deadlines) draws from an injected Random so tests can
// reproduce a run from its seed.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Random seeded with seed. A zero seed picks a time-based seed.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN returns a value in [0, n). It returns 0 for n <= 0.
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// Float64 returns a value in [0.0, 1.0).
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Duration returns a duration in [minDuration, maxDuration], inclusive, at
// millisecond granularity. It returns minDuration when maxDuration <= minDuration.
func (r *Random) Duration(minDuration, maxDuration time.Duration) time.Duration {
	if maxDuration <= minDuration {
		return minDuration
	}
	span := int64((maxDuration - minDuration) / time.Millisecond)
	if span <= 0 {
		return minDuration
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return minDuration + time.Duration(r.rng.Int64N(span+1))*time.Millisecond
}
