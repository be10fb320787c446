package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexshd/omeganet"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation until the population is stable",
		Long: `Run steps the population until every agent stays quiet for the
configured stability window, the tick limit is reached, or the process
is interrupted. A JSON summary is written when the run ends.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("max-ticks") {
				cfg.Simulation.MaxTicks, _ = cmd.Flags().GetInt("max-ticks")
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			if cmd.Flags().Changed("workers") {
				cfg.Simulation.Workers, _ = cmd.Flags().GetInt("workers")
			}
			if cmd.Flags().Changed("summary") {
				cfg.Output.SummaryPath, _ = cmd.Flags().GetString("summary")
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Output.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
			}

			logger := newLogger(cmd, cfg)

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())

			sim, err := newSimulation(cfg, logger, reg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Output.MetricsAddr != "" {
				shutdown, err := serveMetrics(cfg.Output.MetricsAddr, reg, logger)
				if err != nil {
					return err
				}
				defer shutdown()
			}

			runID := uuid.NewString()
			logger.Info("run starting",
				"run_id", runID,
				"seed", sim.seed,
				"agents", len(sim.controller.Agents()),
				"max_ticks", cfg.Simulation.MaxTicks)

			result, runErr := omeganet.Run(ctx, sim.controller, omeganet.RunConfig{
				MaxTicks:  cfg.Simulation.MaxTicks,
				TickDelay: cfg.Simulation.TickDelay,
			})
			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return fmt.Errorf("run: %w", runErr)
			}

			logger.Info("run finished",
				"ticks", result.Ticks,
				"terminated", result.Terminated,
				"agent_restarts", result.AgentRestarts,
				"entity_restarts", result.EntityRestarts,
				"elapsed", result.Elapsed.Round(time.Millisecond))

			out := cmd.OutOrStdout()
			for _, a := range sim.controller.Agents() {
				fmt.Fprintln(out, a.Describe())
			}

			return writeSummary(cmd, sim.controller, runID, cfg.Output.SummaryPath)
		},
	}

	cmd.Flags().Int("max-ticks", 0, "Stop after this many ticks (0 = until stable)")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = seed from clock)")
	cmd.Flags().Int("workers", 1, "Drift fan-out width")
	cmd.Flags().String("summary", "", "Path for the JSON summary (empty disables)")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address")

	return cmd
}

// writeSummary snapshots the controller to path. An empty path is a no-op.
func writeSummary(cmd *cobra.Command, c *omeganet.LoopController, runID, path string) error {
	if path == "" {
		return nil
	}
	if err := omeganet.WriteSummaryFile(path, omeganet.NewSummary(c, runID)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Simulation log saved to %s\n", path)
	return nil
}

// serveMetrics exposes reg on addr until the returned shutdown func is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
