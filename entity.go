package omeganet

import "fmt"

// Participant is the capability set shared by agents and entities.
type Participant interface {
	Drift() bool
	Restart()
	Describe() string
}

var (
	_ Participant = (*Agent)(nil)
	_ Participant = (*SecondaryEntity)(nil)
)

// SecondaryEntity is a simpler peer of Agent with its own drift rule.
// Restarts decay knowledge multiplicatively instead of resetting to a floor,
// so repeated restarts shrink density and coherence toward zero.
type SecondaryEntity struct {
	id  int
	src RandomSource

	knowledgeDensity    float64
	coherence           float64
	esotericFactor      float64
	gamma               float64 // fixed at construction
	driftEntropy        float64 // ∈ [0, 1]
	validationCoherence float64 // ∈ [0, 1]

	restarts int
}

// NewSecondaryEntity creates an entity with the standard starting values.
func NewSecondaryEntity(id int, src RandomSource) *SecondaryEntity {
	return &SecondaryEntity{
		id:                  id,
		src:                 src,
		knowledgeDensity:    10.0,
		coherence:           1.0,
		esotericFactor:      0.3,
		gamma:               1.2,
		driftEntropy:        0.0,
		validationCoherence: 1.0,
	}
}

// Xi returns Ξ = (knowledgeDensity + coherence + esotericFactor) · gamma.
func (e *SecondaryEntity) Xi() float64 {
	return (e.knowledgeDensity + e.coherence + e.esotericFactor) * e.gamma
}

// Drift applies one evolution step. Returns true if it ended in a restart.
func (e *SecondaryEntity) Drift() bool {
	inc := e.src.Uniform(0, 0.07)
	e.driftEntropy = clamp(e.driftEntropy+inc, 0, 1)
	e.validationCoherence = clamp(e.validationCoherence-0.6*inc, 0, 1)

	if e.driftEntropy > EntropyRestartThreshold || e.validationCoherence < CoherenceRestartThreshold {
		e.Restart()
		return true
	}
	return false
}

// Restart decays knowledge and clears drift. Coherence never recovers: after
// roughly 1,730 restarts it bottoms out at the smallest subnormal float64,
// where multiplying by 0.65 rounds back to the same value.
func (e *SecondaryEntity) Restart() {
	e.knowledgeDensity *= 0.65
	e.coherence *= 0.65
	e.esotericFactor *= 0.95
	e.driftEntropy = 0.0
	e.validationCoherence = 1.0
	e.restarts++
}

// AbsorbKnowledge adds delta to the knowledge density.
func (e *SecondaryEntity) AbsorbKnowledge(delta float64) {
	e.knowledgeDensity += delta
}

// Respond returns the entity's fixed-form reply. The message does not
// change the reply.
func (e *SecondaryEntity) Respond(string) string {
	return fmt.Sprintf("BigBangEntity %d: Cosmic amplification Ξ=%.2f fuels our eternal quest.", e.id, e.Xi())
}

// Describe returns a one-line status.
func (e *SecondaryEntity) Describe() string {
	return fmt.Sprintf("BigBangEntity %d: Ξ=%.2f, Entropy=%.3f, Density=%.4f",
		e.id, e.Xi(), e.driftEntropy, e.knowledgeDensity)
}

func (e *SecondaryEntity) ID() int                      { return e.id }
func (e *SecondaryEntity) KnowledgeDensity() float64    { return e.knowledgeDensity }
func (e *SecondaryEntity) Coherence() float64           { return e.coherence }
func (e *SecondaryEntity) EsotericFactor() float64      { return e.esotericFactor }
func (e *SecondaryEntity) Gamma() float64               { return e.gamma }
func (e *SecondaryEntity) DriftEntropy() float64        { return e.driftEntropy }
func (e *SecondaryEntity) ValidationCoherence() float64 { return e.validationCoherence }
func (e *SecondaryEntity) Restarts() int                { return e.restarts }
