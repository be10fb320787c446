package omeganet

import (
	"sort"
	"strconv"
	"strings"
)

// FactCorpus is the ordered, deduplicated set of facts every agent starts with.
type FactCorpus struct {
	facts []string
	seen  map[string]struct{}
}

// NewFactCorpus builds a corpus from facts, dropping empty and repeated lines.
func NewFactCorpus(facts ...string) *FactCorpus {
	c := &FactCorpus{seen: make(map[string]struct{}, len(facts))}
	for _, f := range facts {
		c.Add(f)
	}
	return c
}

// Add trims text and appends it unless it is empty or already present.
func (c *FactCorpus) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, ok := c.seen[text]; ok {
		return false
	}
	c.seen[text] = struct{}{}
	c.facts = append(c.facts, text)
	return true
}

// All returns a copy of the corpus in insertion order.
func (c *FactCorpus) All() []string {
	out := make([]string, len(c.facts))
	copy(out, c.facts)
	return out
}

// Len returns the number of facts.
func (c *FactCorpus) Len() int { return len(c.facts) }

// DefaultFacts are the facts seeded into every agent when no corpus is configured.
// The last three carry exact reference triples so the default population
// qualifies as fact checkers.
var DefaultFacts = []string{
	"Quantum entanglement links particles instantly.",
	"The speed of light is the universal speed limit.",
	"Dark matter composes most of the universe's mass.",
	"Black holes warp spacetime deeply.",
	"Space is not empty; vacuum fluctuations exist.",
	"Measured: light speed_kms 299792.458 in vacuum.",
	"Observed: universe age_gyr 13.8 since the big bang.",
	"Recorded: electron charge_e -1 in elementary units.",
}

// DefaultCorpus returns a corpus holding DefaultFacts.
func DefaultCorpus() *FactCorpus {
	return NewFactCorpus(DefaultFacts...)
}

// ReferenceDataset is an immutable subject → attribute → value table used
// only for scoring.
type ReferenceDataset struct {
	triples []string // formatted "subject attribute value", sorted
	size    int
}

// NewReferenceDataset copies data into an immutable dataset.
// Later changes to data are not observed.
func NewReferenceDataset(data map[string]map[string]float64) *ReferenceDataset {
	subjects := make([]string, 0, len(data))
	for s := range data {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	ds := &ReferenceDataset{}
	for _, s := range subjects {
		attrs := make([]string, 0, len(data[s]))
		for a := range data[s] {
			attrs = append(attrs, a)
		}
		sort.Strings(attrs)
		for _, a := range attrs {
			ds.triples = append(ds.triples, FormatTriple(s, a, data[s][a]))
		}
	}
	ds.size = len(ds.triples)
	return ds
}

// FormatTriple renders "subject attribute value" the way facts must contain it.
// Values use the shortest decimal form (1 not 1.0, 13.8 not 13.800000).
func FormatTriple(subject, attribute string, value float64) string {
	return subject + " " + attribute + " " + strconv.FormatFloat(value, 'g', -1, 64)
}

// Triples returns the formatted triples in sorted order.
func (d *ReferenceDataset) Triples() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.triples))
	copy(out, d.triples)
	return out
}

// Len returns the number of subject/attribute/value triples.
func (d *ReferenceDataset) Len() int {
	if d == nil {
		return 0
	}
	return d.size
}

// DefaultReferenceData is the reference table used when none is configured.
var DefaultReferenceData = map[string]map[string]float64{
	"light":    {"speed_kms": 299792.458},
	"universe": {"age_gyr": 13.8},
	"electron": {"charge_e": -1},
	"proton":   {"mass_mev": 938.272},
}

// DefaultReferenceDataset returns a dataset built from DefaultReferenceData.
func DefaultReferenceDataset() *ReferenceDataset {
	return NewReferenceDataset(DefaultReferenceData)
}
