package omeganet

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Validation strength bounds: vs = clamp(0.8 + 0.05·|fact checkers|, 0.8, 1.5).
const (
	baseValidationStrength = 0.8
	maxValidationStrength  = 1.5
	validationPerChecker   = 0.05
)

// ControllerConfig tunes a LoopController. The zero value is usable.
type ControllerConfig struct {
	Workers         int              // Drift fan-out width (≤ 1 = sequential)
	StabilityWindow int              // Quiet ticks required to terminate (0 = default 200)
	Metrics         *Metrics         // Optional Prometheus export
	Priority        *PriorityTracker // Optional priority distribution tracker
	Logger          *slog.Logger     // Optional, defaults to slog.Default()
}

// DefaultControllerConfig returns a sequential controller with the standard window.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		Workers:         1,
		StabilityWindow: DefaultStabilityWindow,
	}
}

// LoopController runs the simulation one tick at a time.
//
// Control loop (one Step):
//  1. Advance the tick counter
//  2. Drift every agent, then every entity (barrier between groups)
//  3. Recompute the oscillating modulation factors from the tick
//  4. Score agents and derive validation strength from the fact checker count
//  5. Update every agent's priority score
//  6. Feed the population's stability into the debounce window
//
// Step reports true once the window is satisfied.
type LoopController struct {
	agents    []*Agent
	entities  []*SecondaryEntity
	evaluator *AccuracyEvaluator

	tick   int
	window *StabilityWindow

	// Population-wide modulation
	recursiveDriftPower float64
	esotericCoherence   float64
	validationStrength  float64

	lastEvaluation Evaluation
	agentRestarts  int
	entityRestarts int
	terminated     bool

	workers  int
	metrics  *Metrics
	priority *PriorityTracker
	logger   *slog.Logger
}

// NewLoopController creates a controller over a fixed population.
func NewLoopController(agents []*Agent, entities []*SecondaryEntity, evaluator *AccuracyEvaluator, cfg ControllerConfig) *LoopController {
	if evaluator == nil {
		evaluator = NewAccuracyEvaluator(nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &LoopController{
		agents:              agents,
		entities:            entities,
		evaluator:           evaluator,
		window:              NewStabilityWindow(cfg.StabilityWindow),
		recursiveDriftPower: 1.0,
		esotericCoherence:   1.0,
		validationStrength:  baseValidationStrength,
		workers:             cfg.Workers,
		metrics:             cfg.Metrics,
		priority:            cfg.Priority,
		logger:              logger,
	}
}

// Step executes one tick and reports whether the run should terminate.
// A cancelled context is honored before the tick starts; a tick in progress
// always runs to completion.
func (c *LoopController) Step(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.tick++

	// Drift is never interrupted: once a tick starts, every participant moves.
	agentRestarts := fanOutDrift(c.agents, c.workers)
	entityRestarts := fanOutDrift(c.entities, c.workers)
	c.agentRestarts += agentRestarts
	c.entityRestarts += entityRestarts
	if agentRestarts+entityRestarts > 0 {
		c.logger.Debug("participants restarted",
			"tick", c.tick, "agents", agentRestarts, "entities", entityRestarts)
	}

	c.recursiveDriftPower, c.esotericCoherence = Modulation(c.tick)

	c.lastEvaluation = c.evaluator.Evaluate(c.agents, c.entities)
	c.validationStrength = ValidationStrengthFor(len(c.lastEvaluation.Qualified))

	for _, a := range c.agents {
		if err := a.UpdatePriority(c.recursiveDriftPower, c.esotericCoherence, c.validationStrength); err != nil {
			return false, fmt.Errorf("tick %d: %w", c.tick, err)
		}
		c.priority.Record(a.priorityScore)
	}

	done := c.window.Observe(PopulationStable(c.agents))
	c.metrics.observeTick(agentRestarts, entityRestarts, c, len(c.lastEvaluation.Qualified))

	if done && !c.terminated {
		c.terminated = true
		c.logger.Info("population stable",
			"tick", c.tick, "window", c.window.Length)
	}

	return done, nil
}

// fanOutDrift drifts every participant and returns how many restarted.
// With workers > 1 participants drift concurrently; the call returns only
// after all of them finish.
func fanOutDrift[P Participant](items []P, workers int) int {
	if workers <= 1 || len(items) <= 1 {
		restarts := 0
		for _, p := range items {
			if p.Drift() {
				restarts++
			}
		}
		return restarts
	}

	var restarts atomic.Int64
	var g errgroup.Group
	g.SetLimit(workers)
	for _, p := range items {
		g.Go(func() error {
			if p.Drift() {
				restarts.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
	return int(restarts.Load())
}

// Modulation returns the tick-dependent oscillating factors:
//
//	recursiveDriftPower = 0.9 + 0.2·sin(tick/50)
//	esotericCoherence   = 0.85 + 0.15·cos(tick/60)
func Modulation(tick int) (recursiveDriftPower, esotericCoherence float64) {
	t := float64(tick)
	return 0.9 + 0.2*math.Sin(t/50), 0.85 + 0.15*math.Cos(t/60)
}

// ValidationStrengthFor maps the fact checker count to the priority exponent.
func ValidationStrengthFor(qualified int) float64 {
	return clamp(baseValidationStrength+validationPerChecker*float64(qualified),
		baseValidationStrength, maxValidationStrength)
}

// Tick returns the number of completed ticks.
func (c *LoopController) Tick() int { return c.tick }

// StabilityCounter returns the current quiet streak.
func (c *LoopController) StabilityCounter() int { return c.window.Counter }

// Window returns the stability window.
func (c *LoopController) Window() *StabilityWindow { return c.window }

// Terminated reports whether the stability window has been satisfied.
func (c *LoopController) Terminated() bool { return c.terminated }

func (c *LoopController) RecursiveDriftPower() float64 { return c.recursiveDriftPower }
func (c *LoopController) EsotericCoherence() float64   { return c.esotericCoherence }
func (c *LoopController) ValidationStrength() float64  { return c.validationStrength }

// LastEvaluation returns the most recent scoring pass.
func (c *LoopController) LastEvaluation() Evaluation { return c.lastEvaluation }

// Agents returns the agent population in creation order.
func (c *LoopController) Agents() []*Agent { return c.agents }

// Entities returns the secondary entities in creation order.
func (c *LoopController) Entities() []*SecondaryEntity { return c.entities }

// Priority returns the priority tracker (may be nil).
func (c *LoopController) Priority() *PriorityTracker { return c.priority }

// Agent looks up an agent by name, ignoring case.
func (c *LoopController) Agent(name string) (*Agent, error) {
	name = strings.TrimSpace(name)
	for _, a := range c.agents {
		if strings.EqualFold(a.name, name) {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
}

// Restarts returns the cumulative agent and entity restart counts.
func (c *LoopController) Restarts() (agents, entities int) {
	return c.agentRestarts, c.entityRestarts
}

// Statistics returns controller operational stats.
func (c *LoopController) Statistics() map[string]interface{} {
	return map[string]interface{}{
		"tick":                  c.tick,
		"stability_counter":     c.window.Counter,
		"stability_window":      c.window.Length,
		"longest_stable_streak": c.window.Longest,
		"stability_resets":      c.window.Resets,
		"recursive_drift_power": c.recursiveDriftPower,
		"esoteric_coherence":    c.esotericCoherence,
		"validation_strength":   c.validationStrength,
		"fact_checkers":         len(c.lastEvaluation.Qualified),
		"agent_restarts":        c.agentRestarts,
		"entity_restarts":       c.entityRestarts,
		"terminated":            c.terminated,
	}
}
