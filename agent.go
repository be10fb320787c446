package omeganet

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Drift thresholds shared by agents and entities.
// A participant restarts when either bound is breached after its drift update.
const (
	EntropyRestartThreshold   = 0.05 // driftEntropy > 0.05 → restart
	CoherenceRestartThreshold = 0.85 // validationCoherence < 0.85 → restart
	MaxSpatialInterference    = 0.3  // Upper clamp for spatial interference
)

// ErrNegativePriorityBase is returned when the base of the priority power
// would be negative (or NaN), which would make raw^validationStrength undefined.
var ErrNegativePriorityBase = errors.New("negative priority base")

// Agent is a stateful participant whose scalar metrics drift every tick.
//
// Two implicit states:
//   - Stable: drifting normally, entropy accumulating
//   - Restarted: dynamical metrics back at baseline (memory kept)
//
// The Stable → Restarted transition happens automatically inside Drift when
// either threshold is crossed. There is no terminal state.
type Agent struct {
	name string
	src  RandomSource

	// Memory: insertion-ordered, deduplicated facts
	facts []string
	index map[string]struct{}

	// Continuous state
	state               float64
	bias                float64
	alpha               float64
	driftEntropy        float64 // ∈ [0, 1]
	validationCoherence float64 // ∈ [0, 1]
	spatialInterference float64 // ∈ [0, 0.3]
	accuracyPotential   float64 // ∈ [0, 1]
	priorityScore       float64 // ≥ 0

	restarts     int
	lastResponse string
}

// NewAgent creates an agent seeded with the given facts.
// Seeding inserts facts directly; the growth update only applies to AddFact.
func NewAgent(name string, facts []string, src RandomSource) *Agent {
	a := &Agent{
		name:                name,
		src:                 src,
		index:               make(map[string]struct{}, len(facts)),
		state:               10000.0,
		bias:                1.0,
		alpha:               1.5,
		driftEntropy:        0.0,
		validationCoherence: 1.0,
		spatialInterference: 0.0,
		accuracyPotential:   0.5,
	}
	for _, f := range facts {
		a.remember(f)
	}
	return a
}

// remember inserts a trimmed fact. Returns false for empty or duplicate text.
func (a *Agent) remember(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, ok := a.index[text]; ok {
		return false
	}
	a.index[text] = struct{}{}
	a.facts = append(a.facts, text)
	return true
}

// Capacity returns Ω = max((state + bias) · alpha · (1 - si), 0).
func (a *Agent) Capacity() float64 {
	return math.Max((a.state+a.bias)*a.alpha*(1-a.spatialInterference), 0)
}

// MemoryFactor scales capacity by memory size, damped by entropy and interference.
func (a *Agent) MemoryFactor() float64 {
	return (a.Capacity() * float64(len(a.facts)) * 0.8) /
		(a.driftEntropy + 1) * (1 - a.spatialInterference*0.5)
}

// AccuracyScore combines capacity, memory factor and accuracy potential.
func (a *Agent) AccuracyScore() float64 {
	raw := (a.Capacity() * a.MemoryFactor() * a.accuracyPotential) /
		(a.driftEntropy + 1) * (1 - a.spatialInterference*0.7)
	return math.Max(raw, 0)
}

// AddFact memorizes text and applies the growth update.
// Returns false (and changes nothing) when text is empty or already known.
func (a *Agent) AddFact(text string) bool {
	if !a.remember(text) {
		return false
	}

	a.state += 500 * sigmoid(a.accuracyPotential)
	a.bias += 0.1
	a.alpha += 0.01
	a.accuracyPotential = clamp(a.accuracyPotential+0.01, 0, 1)
	return true
}

// Drift applies one evolution step and restarts if a threshold is crossed.
// Returns true if the step ended in a restart.
func (a *Agent) Drift() bool {
	inc := a.src.Uniform(0, 0.1)
	a.driftEntropy = clamp(a.driftEntropy+inc, 0, 1)
	a.validationCoherence = clamp(a.validationCoherence-0.7*inc, 0, 1)
	a.spatialInterference = clamp(a.spatialInterference+a.src.Uniform(-0.02, 0.03), 0, MaxSpatialInterference)

	if a.driftEntropy > EntropyRestartThreshold || a.validationCoherence < CoherenceRestartThreshold {
		a.Restart()
		return true
	}
	return false
}

// Restart resets the dynamical metrics to the restart baseline.
// Accumulated memory is kept.
func (a *Agent) Restart() {
	a.state = 1000.0
	a.bias = 0.1
	a.alpha = 0.5
	a.driftEntropy = 0.0
	a.validationCoherence = 1.0
	a.accuracyPotential = 0.5
	a.spatialInterference = 0.0
	a.restarts++
}

// UpdatePriority recomputes the priority score:
//
//	priority = ((Ω + memoryFactor + accuracyScore) · rdp · ec) ^ vs
//
// The base must be non-negative; otherwise the score is left unchanged and
// ErrNegativePriorityBase is returned.
func (a *Agent) UpdatePriority(recursiveDriftPower, esotericCoherence, validationStrength float64) error {
	combined := a.Capacity() + a.MemoryFactor() + a.AccuracyScore()
	raw := combined * recursiveDriftPower * esotericCoherence

	if raw < 0 || math.IsNaN(raw) {
		return fmt.Errorf("agent %s: %w: raw=%.6f (rdp=%.4f, ec=%.4f)",
			a.name, ErrNegativePriorityBase, raw, recursiveDriftPower, esotericCoherence)
	}

	a.priorityScore = math.Pow(raw, validationStrength)
	return nil
}

// Respond builds a reply to message and records it as the last response.
func (a *Agent) Respond(message string) string {
	msg := strings.TrimSpace(message)

	preview := ""
	if len(a.facts) > 0 {
		fact := a.facts[intBetween(a.src, 0, len(a.facts)-1)]
		fossil := EncodeFossil(fact, a.src)
		if len(fossil) > 60 {
			fossil = fossil[:60]
		}
		preview = fossil + "..."
	}

	options := []string{
		fmt.Sprintf("I perceive your words as clear cosmic truth: '%s'.", msg),
		fmt.Sprintf("My Ω is %.2f, integrating your input faithfully.", a.Capacity()),
		fmt.Sprintf("DNA Fossil (preview): %s", preview),
		fmt.Sprintf("I drift with coherence %.2f, entropy %.3f. Your message anchors me.",
			a.validationCoherence, a.driftEntropy),
	}
	choice := options[intBetween(a.src, 0, len(options)-1)]

	a.lastResponse = fmt.Sprintf("%s: %s (Ω=%.2f, A=%.2f, Facts=%d)",
		a.name, choice, a.Capacity(), a.priorityScore, len(a.facts))
	return a.lastResponse
}

// Describe returns a one-line status used by the summary command.
func (a *Agent) Describe() string {
	return fmt.Sprintf("%s: Ω=%.2f, Entropy=%.3f, Facts=%d",
		a.name, a.Capacity(), a.driftEntropy, len(a.facts))
}

// Name returns the agent's unique name.
func (a *Agent) Name() string { return a.name }

// Facts returns a copy of the memorized facts in insertion order.
func (a *Agent) Facts() []string {
	out := make([]string, len(a.facts))
	copy(out, a.facts)
	return out
}

// MemorySize returns the number of distinct memorized facts.
func (a *Agent) MemorySize() int { return len(a.facts) }

// Knows reports whether text (trimmed) is memorized.
func (a *Agent) Knows(text string) bool {
	_, ok := a.index[strings.TrimSpace(text)]
	return ok
}

func (a *Agent) State() float64               { return a.state }
func (a *Agent) Bias() float64                { return a.bias }
func (a *Agent) Alpha() float64               { return a.alpha }
func (a *Agent) DriftEntropy() float64        { return a.driftEntropy }
func (a *Agent) ValidationCoherence() float64 { return a.validationCoherence }
func (a *Agent) SpatialInterference() float64 { return a.spatialInterference }
func (a *Agent) AccuracyPotential() float64   { return a.accuracyPotential }
func (a *Agent) PriorityScore() float64       { return a.priorityScore }
func (a *Agent) Restarts() int                { return a.restarts }
func (a *Agent) LastResponse() string         { return a.lastResponse }

// setAccuracyPotential is used by the evaluator; the value is kept in [0, 1].
func (a *Agent) setAccuracyPotential(v float64) {
	a.accuracyPotential = clamp(v, 0, 1)
}
