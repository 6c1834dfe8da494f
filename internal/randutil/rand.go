// Package randutil supplies the random samples the game engine consumes.
package randutil

import (
	"time"

	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source yields samples in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the seed so equal seeds replay the same
// sequence of games.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed unchanged when it is non-zero and a time-based seed
// otherwise, so a zero flag value means "random".
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Sequence replays a fixed list of samples, cycling when exhausted. It makes
// engine runs reproducible in tests.
type Sequence struct {
	samples []float64
	next    int
}

// NewSequence returns a Source that yields samples in order.
func NewSequence(samples ...float64) *Sequence {
	if len(samples) == 0 {
		samples = []float64{0}
	}
	return &Sequence{samples: samples}
}

// Float64 returns the next sample.
func (s *Sequence) Float64() float64 {
	v := s.samples[s.next]
	s.next = (s.next + 1) % len(s.samples)
	return v
}
