// Package omeganet simulates a small population of drifting agents scored
// against a fixed reference dataset.
//
// # Overview
//
// Every tick each agent's metrics wander under random drift. When drift
// crosses a threshold the agent self-restarts: its dynamical metrics return
// to a baseline while its memorized facts are kept. A scoring pass then
// rewards agents whose memory contains exact reference triples, and the
// number of qualifying "fact checkers" feeds back into every agent's
// priority score. The run ends once every agent stays quiet for a sustained
// window of ticks.
//
// # Components
//
//   - Agent            - drifting state machine with memory and priority
//   - SecondaryEntity  - simpler peer that decays on restart
//   - AccuracyEvaluator - reference dataset scoring
//   - LoopController   - one tick across the population
//   - StabilityWindow  - debounce counter that signals termination
//   - Run              - paced driving loop with cancellation
//
// # Quick Start
//
//	agents, entities, err := omeganet.NewPopulation(omeganet.DefaultPopulationConfig(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	evaluator := omeganet.NewAccuracyEvaluator(omeganet.DefaultReferenceDataset())
//	ctrl := omeganet.NewLoopController(agents, entities, evaluator, omeganet.DefaultControllerConfig())
//
//	result, err := omeganet.Run(ctx, ctrl, omeganet.DefaultRunConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("ticks=%d stable=%v\n", result.Ticks, result.Terminated)
//
// # Derived Values
//
// Capacity (Ω) and the scores built on it:
//
//	Ω             = max((state + bias) · alpha · (1 - si), 0)
//	memoryFactor  = (Ω · |memory| · 0.8) / (entropy + 1) · (1 - si·0.5)
//	accuracyScore = max((Ω · memoryFactor · accuracyPotential) / (entropy + 1) · (1 - si·0.7), 0)
//
// Every divisor is entropy + 1 ∈ [1, 2], so none of these can divide by zero.
//
// # Priority Feedback
//
// Per tick:
//
//	recursiveDriftPower = 0.9 + 0.2·sin(tick/50)
//	esotericCoherence   = 0.85 + 0.15·cos(tick/60)
//	validationStrength  = clamp(0.8 + 0.05·|fact checkers|, 0.8, 1.5)
//	priority            = ((Ω + memoryFactor + accuracyScore) · rdp · ec) ^ vs
//
// # Stability
//
// A tick is quiet when every agent has validationCoherence > 0.9 and
// driftEntropy < 0.02. Step returns true once 200 consecutive quiet ticks
// have been observed; any noisy tick resets the count.
//
// # Concurrency
//
// Step is synchronous. With ControllerConfig.Workers > 1 agent drift (then
// entity drift) fans out across goroutines and joins before scoring, so the
// population-wide phases always observe every participant's post-drift state.
// Concurrent drift makes runs non-reproducible even with a fixed seed.
//
// # Testing
//
// Inject a SourceFunc to script drift draws exactly:
//
//	src := omeganet.SourceFunc(func(lo, hi float64) float64 { return lo })
//	a := omeganet.NewAgent("Ash", nil, src)
//	a.Drift() // entropy stays 0, no restart
package omeganet
