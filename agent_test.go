package omeganet

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// scriptedDrift returns a source whose entropy draw is inc and whose
// interference draw is zero.
func scriptedDrift(inc float64) RandomSource {
	return SourceFunc(func(lo, hi float64) float64 {
		if hi == 0.1 {
			return inc
		}
		return 0
	})
}

func TestAgent_Defaults(t *testing.T) {
	a := NewAgent("Ash", []string{"  fact one ", "fact one", "", "fact two"}, scriptedDrift(0))

	if a.MemorySize() != 2 {
		t.Errorf("MemorySize = %d, want 2 (trimmed, deduplicated, empty dropped)", a.MemorySize())
	}
	// Seeding must not apply the AddFact growth update.
	if a.State() != 10000 || a.Bias() != 1.0 || a.Alpha() != 1.5 {
		t.Errorf("state/bias/alpha = %.2f/%.2f/%.2f, want 10000/1/1.5", a.State(), a.Bias(), a.Alpha())
	}
	if a.DriftEntropy() != 0 || a.ValidationCoherence() != 1 {
		t.Errorf("entropy/coherence = %.3f/%.3f, want 0/1", a.DriftEntropy(), a.ValidationCoherence())
	}
	if a.AccuracyPotential() != 0.5 {
		t.Errorf("AccuracyPotential = %.3f, want 0.5", a.AccuracyPotential())
	}
}

// TestAgent_ClampInvariant drifts agents many times with real randomness.
func TestAgent_ClampInvariant(t *testing.T) {
	src := NewRandomSource(7)
	agents := []*Agent{
		NewAgent("Ash", DefaultFacts, src),
		NewAgent("Vell", nil, src),
	}

	for i := 0; i < 5000; i++ {
		for _, a := range agents {
			a.Drift()
			AssertClampInvariants(t, a)
		}
	}

	t.Logf("✓ Clamp invariants held over 5000 drifts (restarts: %d, %d)",
		agents[0].Restarts(), agents[1].Restarts())
}

// TestAgent_RestartThreshold checks restart happens iff a bound is breached
// right after the entropy/coherence update.
func TestAgent_RestartThreshold(t *testing.T) {
	tests := []struct {
		name          string
		entropy       float64
		coherence     float64
		inc           float64
		expectRestart bool
	}{
		{"Entropy at boundary", 0, 1, 0.05, false},
		{"Entropy just above boundary", 0, 1, 0.0500001, true},
		{"Coherence stays above 0.85", 0, 0.86, 0.01, false},
		{"Coherence drops below 0.85", 0, 0.86, 0.02, true},
		{"Quiet step", 0, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAgent("Ash", nil, scriptedDrift(tt.inc))
			a.driftEntropy = tt.entropy
			a.validationCoherence = tt.coherence
			a.state = 4242

			restarted := a.Drift()

			if restarted != tt.expectRestart {
				t.Fatalf("Drift() restarted = %v, want %v (entropy=%.4f, coherence=%.4f)",
					restarted, tt.expectRestart, a.DriftEntropy(), a.ValidationCoherence())
			}

			if tt.expectRestart {
				if a.State() != 1000 || a.DriftEntropy() != 0 || a.ValidationCoherence() != 1 {
					t.Errorf("restart baseline not applied: state=%.1f entropy=%.3f coherence=%.3f",
						a.State(), a.DriftEntropy(), a.ValidationCoherence())
				}
				if a.Restarts() != 1 {
					t.Errorf("Restarts = %d, want 1", a.Restarts())
				}
			} else if a.State() != 4242 {
				t.Errorf("state changed without restart: %.1f", a.State())
			}
		})
	}
}

// TestAgent_InterferenceClamp drives spatial interference into both bounds.
func TestAgent_InterferenceClamp(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		draw  float64
		want  float64
	}{
		{"Upper bound", 0.29, 0.029, MaxSpatialInterference},
		{"Lower bound", 0.01, -0.02, 0},
		{"Interior", 0.1, 0.02, 0.12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Entropy draw is 0, so only interference moves.
			src := SourceFunc(func(lo, hi float64) float64 {
				if hi == 0.03 {
					return tt.draw
				}
				return 0
			})
			a := NewAgent("Ash", nil, src)
			a.spatialInterference = tt.start

			if a.Drift() {
				t.Fatalf("unexpected restart")
			}
			if math.Abs(a.SpatialInterference()-tt.want) > 1e-12 {
				t.Errorf("SpatialInterference = %.6f, want %.6f", a.SpatialInterference(), tt.want)
			}
			AssertClampInvariants(t, a)
		})
	}

	t.Logf("✓ Spatial interference stays within [0, %.1f]", MaxSpatialInterference)
}

func TestAgent_RestartKeepsMemory(t *testing.T) {
	a := NewAgent("Ash", DefaultFacts, scriptedDrift(0))
	a.AddFact("A brand new fact.")
	before := a.MemorySize()

	a.Restart()

	if a.MemorySize() != before {
		t.Errorf("MemorySize after restart = %d, want %d", a.MemorySize(), before)
	}
	if a.Bias() != 0.1 || a.Alpha() != 0.5 || a.AccuracyPotential() != 0.5 || a.SpatialInterference() != 0 {
		t.Errorf("baseline not restored: bias=%.2f alpha=%.2f ap=%.2f si=%.2f",
			a.Bias(), a.Alpha(), a.AccuracyPotential(), a.SpatialInterference())
	}
}

// TestAgent_AddFactIdempotent verifies a duplicate fact is a strict no-op.
func TestAgent_AddFactIdempotent(t *testing.T) {
	a := NewAgent("Ash", nil, scriptedDrift(0))

	if !a.AddFact("  Neutron stars spin fast. ") {
		t.Fatal("first AddFact returned false")
	}
	state, bias, alpha, ap := a.State(), a.Bias(), a.Alpha(), a.AccuracyPotential()

	wantState := 10000 + 500*sigmoid(0.5)
	if math.Abs(state-wantState) > 1e-9 {
		t.Errorf("state = %.6f, want %.6f", state, wantState)
	}
	if math.Abs(bias-1.1) > 1e-12 || math.Abs(alpha-1.51) > 1e-12 || math.Abs(ap-0.51) > 1e-12 {
		t.Errorf("bias/alpha/ap = %.4f/%.4f/%.4f, want 1.1/1.51/0.51", bias, alpha, ap)
	}

	for _, dup := range []string{"Neutron stars spin fast.", "Neutron stars spin fast.  ", "", "   "} {
		if a.AddFact(dup) {
			t.Errorf("AddFact(%q) returned true for duplicate/empty text", dup)
		}
	}

	if a.State() != state || a.Bias() != bias || a.Alpha() != alpha || a.AccuracyPotential() != ap {
		t.Errorf("duplicate AddFact changed numeric state")
	}
	if a.MemorySize() != 1 {
		t.Errorf("MemorySize = %d, want 1", a.MemorySize())
	}
}

func TestAgent_AddFactSaturatesAccuracyPotential(t *testing.T) {
	a := NewAgent("Ash", nil, scriptedDrift(0))
	a.accuracyPotential = 0.995

	a.AddFact("one")
	a.AddFact("two")

	if a.AccuracyPotential() != 1.0 {
		t.Errorf("AccuracyPotential = %.4f, want clamp at 1.0", a.AccuracyPotential())
	}
}

// TestAgent_CapacityMonotoneInInterference holds everything but si fixed.
func TestAgent_CapacityMonotoneInInterference(t *testing.T) {
	a := NewAgent("Ash", nil, scriptedDrift(0))

	prev := math.Inf(1)
	for si := 0.0; si <= MaxSpatialInterference+1e-9; si += 0.01 {
		a.spatialInterference = si
		c := a.Capacity()
		if c > prev {
			t.Fatalf("Capacity increased from %.4f to %.4f at si=%.2f", prev, c, si)
		}
		prev = c
	}

	t.Logf("✓ Capacity non-increasing in spatial interference (Ω at si=0.3: %.2f)", prev)
}

func TestAgent_CapacityClampedAtZero(t *testing.T) {
	a := NewAgent("Ash", []string{"x"}, scriptedDrift(0))
	a.state = -50000

	if a.Capacity() != 0 {
		t.Errorf("Capacity = %.4f, want 0 for negative base", a.Capacity())
	}
	if a.AccuracyScore() != 0 {
		t.Errorf("AccuracyScore = %.4f, want 0", a.AccuracyScore())
	}
	if err := a.UpdatePriority(1, 1, 1.3); err != nil {
		t.Errorf("UpdatePriority with zero capacity: %v", err)
	}
}

func TestAgent_DerivedValues(t *testing.T) {
	a := NewAgent("Ash", []string{"a", "b"}, scriptedDrift(0))
	a.spatialInterference = 0.1
	a.driftEntropy = 0.5

	omega := (10000 + 1.0) * 1.5 * 0.9
	mf := (omega * 2 * 0.8) / 1.5 * (1 - 0.05)
	as := (omega * mf * 0.5) / 1.5 * (1 - 0.07)

	if math.Abs(a.Capacity()-omega) > 1e-6 {
		t.Errorf("Capacity = %.6f, want %.6f", a.Capacity(), omega)
	}
	if math.Abs(a.MemoryFactor()-mf) > 1e-6 {
		t.Errorf("MemoryFactor = %.6f, want %.6f", a.MemoryFactor(), mf)
	}
	if math.Abs(a.AccuracyScore()-as)/as > 1e-12 {
		t.Errorf("AccuracyScore = %.6f, want %.6f", a.AccuracyScore(), as)
	}
}

func TestAgent_UpdatePriority(t *testing.T) {
	a := NewAgent("Ash", nil, scriptedDrift(0))

	if err := a.UpdatePriority(1, 1, 1); err != nil {
		t.Fatalf("UpdatePriority: %v", err)
	}
	if math.Abs(a.PriorityScore()-15001.5) > 1e-9 {
		t.Errorf("PriorityScore = %.4f, want 15001.5", a.PriorityScore())
	}

	if err := a.UpdatePriority(0.9, 0.85, 1.2); err != nil {
		t.Fatalf("UpdatePriority: %v", err)
	}
	want := math.Pow(15001.5*0.9*0.85, 1.2)
	if math.Abs(a.PriorityScore()-want)/want > 1e-12 {
		t.Errorf("PriorityScore = %.4f, want %.4f", a.PriorityScore(), want)
	}
}

func TestAgent_UpdatePriorityRejectsNegativeBase(t *testing.T) {
	a := NewAgent("Ash", nil, scriptedDrift(0))
	a.priorityScore = 12

	err := a.UpdatePriority(-1, 1, 1.3)
	if !errors.Is(err, ErrNegativePriorityBase) {
		t.Fatalf("err = %v, want ErrNegativePriorityBase", err)
	}
	if a.PriorityScore() != 12 {
		t.Errorf("PriorityScore changed to %.4f on error", a.PriorityScore())
	}
	if !strings.Contains(err.Error(), "Ash") {
		t.Errorf("error should name the agent: %v", err)
	}
}

func TestAgent_Respond(t *testing.T) {
	a := NewAgent("Ash", DefaultFacts, NewRandomSource(3))

	for i := 0; i < 20; i++ {
		reply := a.Respond("  hello cosmos ")
		if !strings.HasPrefix(reply, "Ash: ") {
			t.Fatalf("reply missing name prefix: %q", reply)
		}
		if !strings.Contains(reply, "Facts=8)") {
			t.Fatalf("reply missing fact count: %q", reply)
		}
		if a.LastResponse() != reply {
			t.Fatalf("LastResponse not recorded")
		}
	}
}

func TestAgent_Describe(t *testing.T) {
	a := NewAgent("Ash", []string{"x"}, scriptedDrift(0))

	got := a.Describe()
	want := "Ash: Ω=15001.50, Entropy=0.000, Facts=1"
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
