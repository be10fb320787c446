package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alexshd/omeganet"
	"github.com/alexshd/omeganet/internal/config"
	"github.com/alexshd/omeganet/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// loadConfig reads --config and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}

// simulation bundles everything a command needs to drive one population.
type simulation struct {
	controller *omeganet.LoopController
	seed       int64
}

// newSimulation builds the population and controller described by cfg.
// reg may be nil, in which case no metrics are exported.
func newSimulation(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	agents, entities, err := omeganet.NewPopulation(omeganet.PopulationConfig{
		Names:       cfg.Population.Agents,
		EntityCount: cfg.Population.Entities,
		Corpus:      omeganet.NewFactCorpus(cfg.Population.Facts...),
		Source:      omeganet.NewRandomSource(seed),
	})
	if err != nil {
		return nil, err
	}

	ctrlCfg := omeganet.ControllerConfig{
		Workers:         cfg.Simulation.Workers,
		StabilityWindow: cfg.Simulation.StabilityWindow,
		Priority:        omeganet.NewPriorityTracker(0),
		Logger:          logger,
	}
	if reg != nil {
		ctrlCfg.Metrics = omeganet.NewMetrics(reg)
	}

	evaluator := omeganet.NewAccuracyEvaluator(omeganet.NewReferenceDataset(cfg.Reference))
	logger.Debug("population ready",
		"agents", len(agents),
		"entities", len(entities),
		"reference_triples", evaluator.Dataset().Len(),
		"seed", seed)

	return &simulation{
		controller: omeganet.NewLoopController(agents, entities, evaluator, ctrlCfg),
		seed:       seed,
	}, nil
}
