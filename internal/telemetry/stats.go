package telemetry

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/wires/internal/games/wires/core"
	"github.com/vovakirdan/wires/internal/storage"
)

// Summary aggregates a run's samples.
type Summary struct {
	Samples       int
	Duration      float64
	FinalScore    float64
	ScoreRate     float64 // least-squares slope of score over time
	MeanStage     float64
	StdStage      float64
	MaxStage      int
	MeanWires     float64
	StdWires      float64
	WiresP90      float64
	MeanPackets   float64
	DriftFraction float64
}

// Summarize computes run statistics. Fewer than two samples yield zero
// spread and rate.
func Summarize(samples []Sample) Summary {
	n := len(samples)
	s := Summary{Samples: n}
	if n == 0 {
		return s
	}

	times := make([]float64, n)
	scores := make([]float64, n)
	stages := make([]float64, n)
	wires := make([]float64, n)
	packets := make([]float64, n)
	drifting := 0
	for i, smp := range samples {
		times[i] = smp.Time
		scores[i] = smp.Score
		stages[i] = float64(smp.Stage)
		wires[i] = float64(smp.ActiveWires)
		packets[i] = float64(smp.ActivePackets)
		if smp.Stage > s.MaxStage {
			s.MaxStage = smp.Stage
		}
		if smp.Drifting {
			drifting++
		}
	}

	last := samples[n-1]
	s.Duration = last.Time - samples[0].Time
	s.FinalScore = last.Score
	s.DriftFraction = float64(drifting) / float64(n)
	s.MeanPackets = stat.Mean(packets, nil)

	if n < 2 {
		s.MeanStage = stages[0]
		s.MeanWires = wires[0]
		s.WiresP90 = wires[0]
		return s
	}
	s.MeanStage, s.StdStage = stat.MeanStdDev(stages, nil)
	s.MeanWires, s.StdWires = stat.MeanStdDev(wires, nil)
	if s.Duration > 0 {
		_, s.ScoreRate = stat.LinearRegression(times, scores, nil, false)
	}

	sort.Float64s(wires)
	s.WiresP90 = stat.Quantile(0.9, stat.Empirical, wires, nil)
	return s
}

// String renders the summary as aligned key/value lines.
func (s Summary) String() string {
	var sb strings.Builder
	row := func(k, v string) { fmt.Fprintf(&sb, "%-14s %s\n", k, v) }
	row("samples", fmt.Sprint(s.Samples))
	row("duration", fmt.Sprintf("%.1fs", s.Duration))
	row("final score", fmt.Sprintf("%.0f", s.FinalScore))
	row("score rate", fmt.Sprintf("%.1f/s", s.ScoreRate))
	row("stage", fmt.Sprintf("mean %.2f  std %.2f  max %d", s.MeanStage, s.StdStage, s.MaxStage))
	row("active wires", fmt.Sprintf("mean %.2f  std %.2f  p90 %.0f", s.MeanWires, s.StdWires, s.WiresP90))
	row("packets", fmt.Sprintf("mean %.2f", s.MeanPackets))
	row("drifting", fmt.Sprintf("%.1f%%", 100*s.DriftFraction))
	return sb.String()
}

// RunRecord builds the storage record for a finished simulation.
func RunRecord(gameID string, seed int64, sim *core.Simulation, autopilot bool) storage.RunRecord {
	stats := sim.Stats()
	return storage.RunRecord{
		GameID:       gameID,
		Seed:         seed,
		Score:        int(sim.Snapshot().Score),
		MaxStage:     stats.MaxStage,
		Jumps:        stats.Jumps,
		ForcedJumps:  stats.ForcedJumps,
		Misses:       stats.Misses,
		Packets:      stats.PacketsCollected,
		DurationSecs: stats.Elapsed,
		Autopilot:    autopilot,
	}
}
