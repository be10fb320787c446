package omeganet

import (
	"math"
	"math/rand"
	"sync"
)

// RandomSource supplies the uniform draws that drive drift.
// Uniform must return a value in [lo, hi).
type RandomSource interface {
	Uniform(lo, hi float64) float64
}

// SourceFunc adapts a plain function to RandomSource.
// Tests use it to script exact drift sequences.
type SourceFunc func(lo, hi float64) float64

// Uniform calls f(lo, hi).
func (f SourceFunc) Uniform(lo, hi float64) float64 {
	return f(lo, hi)
}

// lockedSource wraps math/rand behind a mutex so agents drifting on
// separate goroutines can share one seeded stream.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a seeded, goroutine-safe RandomSource.
func NewRandomSource(seed int64) RandomSource {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Uniform(lo, hi float64) float64 {
	s.mu.Lock()
	f := s.rng.Float64()
	s.mu.Unlock()
	return lo + (hi-lo)*f
}

// intBetween draws an integer in [lo, hi] (both inclusive).
func intBetween(src RandomSource, lo, hi int) int {
	n := lo + int(src.Uniform(0, float64(hi-lo+1)))
	if n > hi {
		n = hi
	}
	return n
}

// sigmoid is the logistic function 1/(1+e^-x).
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
