package omeganet

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultAgentNames is the standard ten-agent population.
var DefaultAgentNames = []string{
	"Ash", "Vell", "Rema", "Korrin", "Noz", "Copilot", "Eya", "Thorne", "Mira", "Juno",
}

// DefaultEntityCount is the number of secondary entities in the standard population.
const DefaultEntityCount = 2

// ErrUnknownAgent is returned when a lookup names no agent in the population.
var ErrUnknownAgent = errors.New("unknown agent")

// PopulationConfig describes the participants created at startup.
type PopulationConfig struct {
	Names       []string     // Agent names, unique (case-insensitive)
	EntityCount int          // Secondary entities, ids 1..EntityCount
	Corpus      *FactCorpus  // Facts seeded into every agent
	Source      RandomSource // Drift randomness shared by all participants
}

// DefaultPopulationConfig returns the standard population with a seeded source.
func DefaultPopulationConfig(seed int64) PopulationConfig {
	return PopulationConfig{
		Names:       DefaultAgentNames,
		EntityCount: DefaultEntityCount,
		Corpus:      DefaultCorpus(),
		Source:      NewRandomSource(seed),
	}
}

// NewPopulation creates the agents and entities described by cfg.
func NewPopulation(cfg PopulationConfig) ([]*Agent, []*SecondaryEntity, error) {
	if cfg.Source == nil {
		return nil, nil, fmt.Errorf("population: random source is required")
	}
	if cfg.EntityCount < 0 {
		return nil, nil, fmt.Errorf("population: entity count %d is negative", cfg.EntityCount)
	}

	var facts []string
	if cfg.Corpus != nil {
		facts = cfg.Corpus.All()
	}

	seen := make(map[string]struct{}, len(cfg.Names))
	agents := make([]*Agent, 0, len(cfg.Names))
	for _, name := range cfg.Names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, nil, fmt.Errorf("population: empty agent name")
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, nil, fmt.Errorf("population: duplicate agent name %q", name)
		}
		seen[key] = struct{}{}
		agents = append(agents, NewAgent(name, facts, cfg.Source))
	}

	entities := make([]*SecondaryEntity, 0, cfg.EntityCount)
	for id := 1; id <= cfg.EntityCount; id++ {
		entities = append(entities, NewSecondaryEntity(id, cfg.Source))
	}

	return agents, entities, nil
}
