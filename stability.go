package omeganet

// DefaultStabilityWindow is the number of consecutive quiet ticks that
// terminates a run.
const DefaultStabilityWindow = 200

// Stability predicate bounds. Every agent must satisfy both on the same tick.
const (
	StableCoherence = 0.9  // validationCoherence > 0.9
	StableEntropy   = 0.02 // driftEntropy < 0.02
)

// StabilityWindow is a debounce counter over the population's stability.
//
// Hysteresis:
//   - Each quiet tick extends the current streak by one
//   - Any unstable tick resets the streak to zero
//   - The window is satisfied once the streak reaches Length
//
// A single violating tick anywhere restarts the count, so 199 quiet ticks,
// one bad tick, then 200 quiet ticks is satisfied on tick 400, not 399.
type StabilityWindow struct {
	Length  int // Required streak length
	Counter int // Current streak
	Longest int // Longest streak observed
	Resets  int // Number of times a non-empty streak was broken
}

// NewStabilityWindow creates a window requiring length consecutive quiet ticks.
// Non-positive lengths fall back to DefaultStabilityWindow.
func NewStabilityWindow(length int) *StabilityWindow {
	if length <= 0 {
		length = DefaultStabilityWindow
	}
	return &StabilityWindow{Length: length}
}

// Observe records one tick and reports whether the window is satisfied.
func (w *StabilityWindow) Observe(stable bool) bool {
	if stable {
		w.Counter++
		if w.Counter > w.Longest {
			w.Longest = w.Counter
		}
	} else {
		if w.Counter > 0 {
			w.Resets++
		}
		w.Counter = 0
	}
	return w.Satisfied()
}

// Satisfied reports whether the current streak has reached Length.
func (w *StabilityWindow) Satisfied() bool {
	return w.Counter >= w.Length
}

// IsStable is the per-agent stability predicate.
func IsStable(a *Agent) bool {
	return a.validationCoherence > StableCoherence && a.driftEntropy < StableEntropy
}

// PopulationStable reports whether every agent is stable. An empty
// population is trivially stable.
func PopulationStable(agents []*Agent) bool {
	for _, a := range agents {
		if !IsStable(a) {
			return false
		}
	}
	return true
}
