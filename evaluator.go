package omeganet

import "strings"

// Evaluator constants.
const (
	FactCheckerThreshold     = 3    // score ≥ 3 → fact checker
	EntityKnowledgeIncrement = 0.05 // added to every entity per pass
	minAccuracyPotential     = 0.5
	maxAccuracyPotential     = 1.0
)

// Evaluation is the outcome of one scoring pass.
type Evaluation struct {
	Scores    map[string]int // agent name → matched triples
	Qualified []string       // fact checkers, in population order
}

// AccuracyEvaluator scores agents' memories against a reference dataset.
//
// A triple counts toward an agent's score when its formatted string
// "subject attribute value" is an exact substring of any memorized fact.
// Reworded facts score nothing.
type AccuracyEvaluator struct {
	dataset *ReferenceDataset
}

// NewAccuracyEvaluator creates an evaluator over dataset. A nil dataset
// scores every agent 0.
func NewAccuracyEvaluator(dataset *ReferenceDataset) *AccuracyEvaluator {
	return &AccuracyEvaluator{dataset: dataset}
}

// Dataset returns the reference dataset (may be nil).
func (ev *AccuracyEvaluator) Dataset() *ReferenceDataset { return ev.dataset }

// Score counts the dataset triples present in facts.
func (ev *AccuracyEvaluator) Score(facts []string) int {
	if ev.dataset == nil || len(facts) == 0 {
		return 0
	}

	score := 0
	for _, triple := range ev.dataset.triples {
		for _, f := range facts {
			if strings.Contains(f, triple) {
				score++
				break
			}
		}
	}
	return score
}

// AccuracyPotentialFor maps a score to clamp(score/20 + 0.5, 0.5, 1.0).
func AccuracyPotentialFor(score int) float64 {
	return clamp(float64(score)/20+0.5, minAccuracyPotential, maxAccuracyPotential)
}

// Evaluate scores every agent, sets its accuracy potential, and feeds every
// entity a fixed knowledge increment. Returns the per-agent scores and the
// qualifying fact checkers.
func (ev *AccuracyEvaluator) Evaluate(agents []*Agent, entities []*SecondaryEntity) Evaluation {
	result := Evaluation{
		Scores:    make(map[string]int, len(agents)),
		Qualified: make([]string, 0, len(agents)),
	}

	for _, a := range agents {
		score := ev.Score(a.facts)
		result.Scores[a.name] = score
		a.setAccuracyPotential(AccuracyPotentialFor(score))

		if score >= FactCheckerThreshold {
			result.Qualified = append(result.Qualified, a.name)
		}
	}

	for _, e := range entities {
		e.AbsorbKnowledge(EntityKnowledgeIncrement)
	}

	return result
}
