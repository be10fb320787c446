package omeganet

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryController(t *testing.T) *LoopController {
	t.Helper()
	agents, entities, err := NewPopulation(PopulationConfig{
		Names:       []string{"Ash", "Vell"},
		EntityCount: 2,
		Corpus:      DefaultCorpus(),
		Source:      SourceFunc(func(lo, hi float64) float64 { return lo }),
	})
	require.NoError(t, err)

	cfg := DefaultControllerConfig()
	cfg.Priority = NewPriorityTracker(100)
	ctrl := NewLoopController(agents, entities, NewAccuracyEvaluator(DefaultReferenceDataset()), cfg)
	for i := 0; i < 3; i++ {
		_, err := ctrl.Step(context.Background())
		require.NoError(t, err)
	}
	return ctrl
}

func TestNewSummary(t *testing.T) {
	ctrl := summaryController(t)
	ash, err := ctrl.Agent("Ash")
	require.NoError(t, err)
	ash.Respond("hello")

	runID := uuid.NewString()
	s := NewSummary(ctrl, runID)

	assert.Equal(t, runID, s.RunID)
	assert.Equal(t, 3, s.Ticks)
	assert.False(t, s.Terminated)
	require.Len(t, s.Agents, 2)
	require.Len(t, s.Entities, 2)
	assert.Contains(t, s.Entities, "1")
	assert.Contains(t, s.Entities, "2")
	assert.Equal(t, int64(6), s.Priority.SampleCount)

	want := AgentSummary{
		Facts:               len(DefaultFacts),
		Capacity:            ash.Capacity(),
		Entropy:             0,
		SpatialInterference: 0,
		PriorityScore:       ash.PriorityScore(),
		Restarts:            0,
		LastResponse:        ash.LastResponse(),
	}
	if diff := cmp.Diff(want, s.Agents["Ash"]); diff != "" {
		t.Errorf("Ash summary mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, s.Agents["Vell"].LastResponse)
}

func TestWriteSummary_JSON(t *testing.T) {
	s := NewSummary(summaryController(t), uuid.NewString())

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"run_id", "timestamp", "ticks", "terminated", "agents", "entities", "priority"} {
		assert.Contains(t, raw, key)
	}

	agents := raw["agents"].(map[string]any)
	ash := agents["Ash"].(map[string]any)
	for _, key := range []string{"facts", "omega", "entropy", "spatial_interference", "priority_score", "restarts", "last_response"} {
		assert.Contains(t, ash, key)
	}

	var decoded Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	if diff := cmp.Diff(s, decoded, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("decoded summary mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSummaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omeganet.json")
	s := NewSummary(summaryController(t), "run-1")

	require.NoError(t, WriteSummaryFile(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id": "run-1"`)

	err = WriteSummaryFile(filepath.Join(t.TempDir(), "missing", "x.json"), s)
	assert.Error(t, err)
}
