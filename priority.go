package omeganet

import (
	"math"
	"sort"
	"sync"
)

// PriorityTracker keeps a ring buffer of recent priority scores so a run can
// report how the population's priority is distributed, not just its mean.
//
// The priority power amplifies differences between agents: an agent that
// restarted early sits orders of magnitude below one that kept its initial
// state. The P99/P50 tail ratio makes that spread visible.
//
// Example:
//
//	tracker := NewPriorityTracker(1000)
//	for _, a := range agents {
//	    tracker.Record(a.PriorityScore())
//	}
//	stats := tracker.GetStats()
type PriorityTracker struct {
	mu    sync.Mutex
	buf   []float64
	next  int
	full  bool
	total int64
}

// defaultPrioritySamples bounds the tracker when no size is given.
const defaultPrioritySamples = 1000

// NewPriorityTracker creates a tracker holding the last size scores.
func NewPriorityTracker(size int) *PriorityTracker {
	if size <= 0 {
		size = defaultPrioritySamples
	}
	return &PriorityTracker{buf: make([]float64, size)}
}

// Record adds a priority score sample. Nil-safe.
func (t *PriorityTracker) Record(score float64) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.buf[t.next] = score
	t.next++
	if t.next == len(t.buf) {
		t.next = 0
		t.full = true
	}
	t.total++
	t.mu.Unlock()
}

// sorted returns the buffered scores in ascending order and the total
// number ever recorded.
func (t *PriorityTracker) sorted() ([]float64, int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.next
	if t.full {
		n = len(t.buf)
	}
	out := append([]float64(nil), t.buf[:n]...)
	sort.Float64s(out)
	return out, t.total
}

// quantile picks the floor((n-1)·p)-th element of an ascending slice.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	i := int(math.Floor(float64(len(sorted)-1) * p))
	return sorted[min(max(i, 0), len(sorted)-1)]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func tailRatio(p50, p99 float64) float64 {
	if p50 == 0 {
		return 1.0
	}
	return p99 / p50
}

// P50 returns the median score.
func (t *PriorityTracker) P50() float64 {
	s, _ := t.sorted()
	return quantile(s, 0.50)
}

// P99 returns the 99th percentile score.
func (t *PriorityTracker) P99() float64 {
	s, _ := t.sorted()
	return quantile(s, 0.99)
}

// Mean returns the average over the buffered samples.
func (t *PriorityTracker) Mean() float64 {
	s, _ := t.sorted()
	return mean(s)
}

// TailRatio returns P99/P50, or 1.0 when the median is zero.
func (t *PriorityTracker) TailRatio() float64 {
	s, _ := t.sorted()
	return tailRatio(quantile(s, 0.50), quantile(s, 0.99))
}

// PriorityStats is a statistical snapshot of the tracked scores.
type PriorityStats struct {
	SampleCount int64   `json:"sample_count"`
	Mean        float64 `json:"mean"`
	P50         float64 `json:"p50"`
	P99         float64 `json:"p99"`
	TailRatio   float64 `json:"tail_ratio"`
}

// GetStats returns a consistent snapshot. A nil tracker yields the zero value.
func (t *PriorityTracker) GetStats() PriorityStats {
	if t == nil {
		return PriorityStats{}
	}
	s, total := t.sorted()
	p50, p99 := quantile(s, 0.50), quantile(s, 0.99)
	return PriorityStats{
		SampleCount: total,
		Mean:        mean(s),
		P50:         p50,
		P99:         p99,
		TailRatio:   tailRatio(p50, p99),
	}
}
