package omeganet

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// AgentSummary is the final per-agent record handed to the log writer.
type AgentSummary struct {
	Facts               int     `json:"facts"`
	Capacity            float64 `json:"omega"`
	Entropy             float64 `json:"entropy"`
	SpatialInterference float64 `json:"spatial_interference"`
	PriorityScore       float64 `json:"priority_score"`
	Restarts            int     `json:"restarts"`
	LastResponse        string  `json:"last_response"`
}

// EntitySummary is the final per-entity record.
type EntitySummary struct {
	Xi               float64 `json:"xi"`
	KnowledgeDensity float64 `json:"knowledge_density"`
	Coherence        float64 `json:"coherence"`
	Restarts         int     `json:"restarts"`
}

// Summary is the end-of-run log document.
type Summary struct {
	RunID      string                   `json:"run_id"`
	Timestamp  time.Time                `json:"timestamp"`
	Ticks      int                      `json:"ticks"`
	Terminated bool                     `json:"terminated"`
	Agents     map[string]AgentSummary  `json:"agents"`
	Entities   map[string]EntitySummary `json:"entities"`
	Priority   PriorityStats            `json:"priority"`
}

// NewSummary snapshots the controller's population.
func NewSummary(c *LoopController, runID string) Summary {
	s := Summary{
		RunID:      runID,
		Timestamp:  time.Now().UTC(),
		Ticks:      c.Tick(),
		Terminated: c.Terminated(),
		Agents:     make(map[string]AgentSummary, len(c.agents)),
		Entities:   make(map[string]EntitySummary, len(c.entities)),
		Priority:   c.priority.GetStats(),
	}

	for _, a := range c.agents {
		s.Agents[a.name] = AgentSummary{
			Facts:               len(a.facts),
			Capacity:            a.Capacity(),
			Entropy:             a.driftEntropy,
			SpatialInterference: a.spatialInterference,
			PriorityScore:       a.priorityScore,
			Restarts:            a.restarts,
			LastResponse:        a.lastResponse,
		}
	}
	for _, e := range c.entities {
		s.Entities[strconv.Itoa(e.id)] = EntitySummary{
			Xi:               e.Xi(),
			KnowledgeDensity: e.knowledgeDensity,
			Coherence:        e.coherence,
			Restarts:         e.restarts,
		}
	}
	return s
}

// WriteSummary encodes s as indented JSON.
func WriteSummary(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

// WriteSummaryFile writes s to path, replacing any existing file.
func WriteSummaryFile(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary %s: %w", path, err)
	}
	if err := WriteSummary(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close summary %s: %w", path, err)
	}
	return nil
}
