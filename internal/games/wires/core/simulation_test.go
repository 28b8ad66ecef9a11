package core

import (
	"errors"
	"testing"

	"github.com/vovakirdan/wires/internal/config"
)

func runAutopilot(t *testing.T, cfg *config.WiresConfig, seed int64, ticks int, check func(*Simulation)) *Simulation {
	t.Helper()
	sim := newTestSim(t, cfg, seed)
	bot := NewAutopilot()
	sim.Start()
	for i := 0; i < ticks; i++ {
		bot.Step(sim)
		sim.Tick(testDT)
		if check != nil {
			check(sim)
		}
	}
	return sim
}

func TestSimulationDeterminism(t *testing.T) {
	a := runAutopilot(t, testConfig(), 12345, 3000, nil)
	b := runAutopilot(t, testConfig(), 12345, 3000, nil)

	if a.Snapshot() != b.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", a.Snapshot(), b.Snapshot())
	}
	if a.Stats() != b.Stats() {
		t.Errorf("stats differ:\n%+v\n%+v", a.Stats(), b.Stats())
	}
}

func TestSimulationInvariants(t *testing.T) {
	cfg := testConfig()
	cfg.Packets.Enabled = false
	space2 := cfg.Wires.WireSpace * cfg.Wires.WireSpace

	sim := runAutopilot(t, cfg, 777, 4000, func(sim *Simulation) {
		m := sim.Wires()
		for _, s := range m.ActiveSparks() {
			if s.CanJumpTo() && s.Jumper() != nil {
				t.Fatalf("tick %d: spark %d eligible while occupied", sim.Snapshot().Tick, s.ID())
			}
		}

		j := sim.Jumper()
		if !j.IsDrifting() {
			if j.Spark() == nil || j.Wire() == nil {
				t.Fatalf("tick %d: player has no ride and is not drifting", sim.Snapshot().Tick)
			}
			if !j.Wire().JumperAttached() || j.Spark().Wire() != j.Wire() {
				t.Fatalf("tick %d: ride references disagree", sim.Snapshot().Tick)
			}
		}

		wires := m.ActiveWires()
		for i := 0; i < len(wires); i++ {
			for k := i + 1; k < len(wires); k++ {
				a, b := wires[i], wires[k]
				if m.plane.LateralDist2(a.Start(), b.Start()) >= space2 {
					continue
				}
				if m.StartSegment(a) > m.EndSegment(b) || m.StartSegment(b) > m.EndSegment(a) {
					continue
				}
				t.Fatalf("tick %d: wires %d and %d overlap", sim.Snapshot().Tick, a.ID(), b.ID())
			}
		}
	})

	st := sim.Stats()
	if st.Jumps+st.ForcedJumps < 2 {
		t.Errorf("only %d jumps in a long run", st.Jumps+st.ForcedJumps)
	}
	if sim.Snapshot().Score <= 0 {
		t.Error("score should grow over a run")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Wires.Stages = nil

	_, err := New(cfg, Options{})
	if !errors.Is(err, config.ErrNoStages) {
		t.Errorf("New() error = %v, want ErrNoStages", err)
	}
	if _, err := New(nil, Options{}); err == nil {
		t.Error("New(nil) should fail")
	}
}

func TestSegmentLengthFallback(t *testing.T) {
	tests := []struct {
		name   string
		world  float64
		themes []config.ThemeConfig
		want   float64
	}{
		{"world setting wins", 3, []config.ThemeConfig{testTheme()}, 3},
		{"derived from first theme", 0, []config.ThemeConfig{testTheme()}, 2},
		{"theme without length", 0, []config.ThemeConfig{{Name: "flat"}}, 1},
		{"no themes", 0, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := quietConfig()
			cfg.World.SegmentLength = tt.world
			cfg.Themes = tt.themes
			sim := newTestSim(t, cfg, 1)
			if got := sim.Plane().SegmentLength; got != tt.want {
				t.Errorf("segment length = %v, want %v", got, tt.want)
			}
			sim.Start()
			if sim.Jumper().Spark() == nil {
				t.Error("player should still get an initial spark")
			}
		})
	}
}

func TestPauseStopsTime(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	sim.Start()
	sim.Tick(testDT)
	at := sim.Time()

	sim.SetPaused(true)
	for i := 0; i < 10; i++ {
		sim.Tick(testDT)
	}
	if sim.Time() != at || !sim.Snapshot().Paused {
		t.Error("paused simulation should not advance")
	}
	sim.SetPaused(false)
	sim.Tick(testDT)
	if sim.Time() <= at {
		t.Error("resumed simulation should advance")
	}
}

func TestTickBeforeStartIsNoop(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	sim.Tick(1)
	if sim.Time() != 0 || sim.Snapshot().Tick != 0 {
		t.Error("Tick before Start should do nothing")
	}
}

func TestFinaleFreezesSparks(t *testing.T) {
	cfg := testConfig()
	for i := range cfg.Wires.Stages {
		cfg.Wires.Stages[i].DefectChance = 1
	}
	sim := newTestSim(t, cfg, 4)
	sim.Start()
	for i := 0; i < 120; i++ {
		sim.Tick(testDT)
	}

	sim.BeginFinale()
	if p := sim.Wires().GetStageWireProperties(); p.DefectChance != 0 || p.SparkDelaySegments != 0 {
		t.Errorf("finale properties %+v", p)
	}
	for _, s := range sim.Wires().ActiveSparks() {
		if s.IsSwitching() {
			t.Errorf("spark %d still switching during finale", s.ID())
		}
	}

	sim.EndFinale()
	if sim.Wires().GetStageWireProperties().DefectChance != 1 {
		t.Error("EndFinale should restore stage properties")
	}
}
