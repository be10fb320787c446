package omeganet

import (
	"testing"
)

// AssertClampInvariants verifies an agent's bounded fields are in range.
//
// Invariants:
//
//	driftEntropy        ∈ [0, 1]
//	validationCoherence ∈ [0, 1]
//	spatialInterference ∈ [0, 0.3]
//	accuracyPotential   ∈ [0, 1]
//	capacity            ≥ 0
func AssertClampInvariants(t *testing.T, a *Agent) {
	t.Helper()

	if a.DriftEntropy() < 0 || a.DriftEntropy() > 1 {
		t.Errorf("%s: driftEntropy = %.6f outside [0, 1]", a.Name(), a.DriftEntropy())
	}
	if a.ValidationCoherence() < 0 || a.ValidationCoherence() > 1 {
		t.Errorf("%s: validationCoherence = %.6f outside [0, 1]", a.Name(), a.ValidationCoherence())
	}
	if a.SpatialInterference() < 0 || a.SpatialInterference() > MaxSpatialInterference {
		t.Errorf("%s: spatialInterference = %.6f outside [0, %.1f]",
			a.Name(), a.SpatialInterference(), MaxSpatialInterference)
	}
	if a.AccuracyPotential() < 0 || a.AccuracyPotential() > 1 {
		t.Errorf("%s: accuracyPotential = %.6f outside [0, 1]", a.Name(), a.AccuracyPotential())
	}
	if a.Capacity() < 0 {
		t.Errorf("%s: capacity = %.6f is negative", a.Name(), a.Capacity())
	}
}

// AssertEntityClampInvariants verifies an entity's drift fields are in range.
func AssertEntityClampInvariants(t *testing.T, e *SecondaryEntity) {
	t.Helper()

	if e.DriftEntropy() < 0 || e.DriftEntropy() > 1 {
		t.Errorf("entity %d: driftEntropy = %.6f outside [0, 1]", e.ID(), e.DriftEntropy())
	}
	if e.ValidationCoherence() < 0 || e.ValidationCoherence() > 1 {
		t.Errorf("entity %d: validationCoherence = %.6f outside [0, 1]", e.ID(), e.ValidationCoherence())
	}
}

// AssertStrictlyDecreasing verifies values is a strictly decreasing sequence
// bounded below by zero (exclusive).
func AssertStrictlyDecreasing(t *testing.T, name string, values []float64) {
	t.Helper()

	for i, v := range values {
		if v <= 0 {
			t.Errorf("%s[%d] = %g, want > 0", name, i, v)
			return
		}
		if i > 0 && v >= values[i-1] {
			t.Errorf("%s[%d] = %g not below %s[%d] = %g", name, i, v, name, i-1, values[i-1])
			return
		}
	}

	if len(values) > 0 {
		t.Logf("✓ %s strictly decreasing over %d steps: %g → %g",
			name, len(values), values[0], values[len(values)-1])
	}
}
