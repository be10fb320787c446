package omeganet

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RunConfig controls the driving loop around a LoopController.
type RunConfig struct {
	MaxTicks  int           // Stop after this many ticks (0 = until stable)
	TickDelay time.Duration // Minimum spacing between ticks (0 = unpaced)
}

// DefaultRunConfig returns sensible defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		MaxTicks:  10000,
		TickDelay: 0,
	}
}

// RunResult summarizes a finished run.
type RunResult struct {
	Ticks          int           // Ticks executed by this run
	Terminated     bool          // True if the stability window was satisfied
	Elapsed        time.Duration // Wall time
	AgentRestarts  int           // Cumulative agent restarts
	EntityRestarts int           // Cumulative entity restarts
}

// Run steps c until the population is stable, MaxTicks is reached, or ctx
// is done. Cancellation is observed at tick boundaries only; the partial
// result is returned with the cancellation error.
func Run(ctx context.Context, c *LoopController, cfg RunConfig) (RunResult, error) {
	if cfg.MaxTicks < 0 {
		return RunResult{}, fmt.Errorf("invalid max ticks %d", cfg.MaxTicks)
	}

	var limiter *rate.Limiter
	if cfg.TickDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.TickDelay), 1)
	}

	start := time.Now()
	startTick := c.Tick()
	result := RunResult{}

	finish := func() RunResult {
		result.Ticks = c.Tick() - startTick
		result.Elapsed = time.Since(start)
		result.AgentRestarts, result.EntityRestarts = c.Restarts()
		return result
	}

	for cfg.MaxTicks == 0 || c.Tick()-startTick < cfg.MaxTicks {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return finish(), err
			}
		}

		done, err := c.Step(ctx)
		if err != nil {
			return finish(), err
		}
		if done {
			result.Terminated = true
			break
		}
	}

	return finish(), nil
}
