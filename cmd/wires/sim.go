package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wires/internal/config"
	"github.com/vovakirdan/wires/internal/games/wires/core"
	"github.com/vovakirdan/wires/internal/storage"
	"github.com/vovakirdan/wires/internal/telemetry"
)

var (
	flagTicks    int
	flagOut      string
	flagInterval float64
	flagNoSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot simulation",
	Long: `Run the simulation without a terminal UI, driven by the autopilot.

The run stops after --ticks ticks or when the run is over. With --out, a
directory is written containing samples.csv (periodic snapshots),
events.csv (every simulation event) and config.yaml (the effective config).
A summary is printed and the run is stored in the scores database.

Examples:
  wires sim
  wires sim --ticks 72000 --seed 42 --out ./runs/42
  wires sim --preset hard --interval 0.25 --log-level debug`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 36000, "Maximum number of ticks to simulate")
	simCmd.Flags().StringVar(&flagOut, "out", "", "Directory for CSV telemetry (default: none)")
	simCmd.Flags().Float64Var(&flagInterval, "interval", 0.5, "Seconds of game time between samples")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the run in the scores database")
}

func runSim(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr)

	cfg, err := config.Resolve(flagConfig, config.ParsePreset(flagPreset))
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sim, err := core.New(&cfg, core.Options{Seed: seed, Logger: logger.WithPrefix("sim")})
	if err != nil {
		return fmt.Errorf("cannot start simulation: %w", err)
	}

	out, err := telemetry.NewOutput(flagOut)
	if err != nil {
		return err
	}
	if err := out.WriteConfig(cfg); err != nil {
		out.Close()
		return err
	}
	rec := telemetry.NewRecorder(sim, out, flagInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("simulating", "seed", seed, "ticks", flagTicks, "preset", flagPreset)
	started := time.Now()
	ticks := simulate(ctx, sim, rec, flagTicks, 1/float64(flagFPS))

	err = errors.Join(rec.Close(), out.Close())
	logger.Info("simulation finished",
		"ticks", ticks,
		"game_over", sim.Over(),
		"wall", time.Since(started).Round(time.Millisecond),
	)
	if err != nil {
		logger.Error("telemetry incomplete", "err", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), telemetry.Summarize(rec.Samples()))
	stats := sim.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d (%d forced)\n", "jumps", stats.Jumps, stats.ForcedJumps)
	fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d\n", "misses", stats.Misses)
	fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d collected, %d expired\n", "packets", stats.PacketsCollected, stats.PacketsExpired)
	if stats.SpawnFailures > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d\n", "spawn failures", stats.SpawnFailures)
	}
	if out != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "telemetry written to %s\n", out.Dir())
	}

	if !flagNoSave {
		saveSimRun(logger, telemetry.RunRecord("wires", seed, sim, true))
	}
	return nil
}

// simulate drives sim with the autopilot until maxTicks, game over or ctx
// cancellation. Returns the number of ticks run.
func simulate(ctx context.Context, sim *core.Simulation, rec *telemetry.Recorder, maxTicks int, dt float64) int {
	bot := core.NewAutopilot()
	sim.Start()
	n := 0
	for ; n < maxTicks && !sim.Over(); n++ {
		if n%1024 == 0 && ctx.Err() != nil {
			break
		}
		bot.Step(sim)
		sim.Tick(dt)
		rec.Observe()
	}
	return n
}

func saveSimRun(logger *log.Logger, run storage.RunRecord) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		return
	}
	defer store.Close()
	if _, err := store.SaveRun(run); err != nil {
		logger.Warn("could not save run", "err", err)
	}
}
