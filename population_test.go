package omeganet

import (
	"strings"
	"testing"
)

func TestFactCorpus_Dedup(t *testing.T) {
	c := NewFactCorpus("one", " one ", "", "two")

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if c.Add("two") {
		t.Errorf("Add accepted a duplicate")
	}
	if !c.Add("three") {
		t.Errorf("Add rejected a new fact")
	}

	all := c.All()
	all[0] = "mutated"
	if c.All()[0] != "one" {
		t.Errorf("All must return a copy")
	}
}

func TestNewPopulation_Default(t *testing.T) {
	agents, entities, err := NewPopulation(DefaultPopulationConfig(42))
	if err != nil {
		t.Fatalf("NewPopulation: %v", err)
	}

	if len(agents) != len(DefaultAgentNames) {
		t.Errorf("agents = %d, want %d", len(agents), len(DefaultAgentNames))
	}
	for i, a := range agents {
		if a.Name() != DefaultAgentNames[i] {
			t.Errorf("agent %d = %s, want %s", i, a.Name(), DefaultAgentNames[i])
		}
		if a.MemorySize() != len(DefaultFacts) {
			t.Errorf("%s memory = %d, want %d", a.Name(), a.MemorySize(), len(DefaultFacts))
		}
	}

	if len(entities) != DefaultEntityCount {
		t.Fatalf("entities = %d, want %d", len(entities), DefaultEntityCount)
	}
	for i, e := range entities {
		if e.ID() != i+1 {
			t.Errorf("entity %d id = %d, want %d", i, e.ID(), i+1)
		}
	}
}

func TestNewPopulation_Invalid(t *testing.T) {
	src := NewRandomSource(1)

	tests := []struct {
		name    string
		cfg     PopulationConfig
		wantErr string
	}{
		{"Nil source", PopulationConfig{Names: []string{"Ash"}}, "random source"},
		{"Negative entities", PopulationConfig{Names: []string{"Ash"}, EntityCount: -1, Source: src}, "negative"},
		{"Empty name", PopulationConfig{Names: []string{"Ash", "  "}, Source: src}, "empty agent name"},
		{"Duplicate name", PopulationConfig{Names: []string{"Ash", "ash"}, Source: src}, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewPopulation(tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewPopulation_Empty(t *testing.T) {
	agents, entities, err := NewPopulation(PopulationConfig{Source: NewRandomSource(1)})
	if err != nil {
		t.Fatalf("NewPopulation: %v", err)
	}
	if len(agents) != 0 || len(entities) != 0 {
		t.Errorf("got %d agents, %d entities, want none", len(agents), len(entities))
	}
}
