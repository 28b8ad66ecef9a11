package core

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wires/internal/config"
	"github.com/vovakirdan/wires/internal/events"
)

const testDT = 1.0 / 60

func testTheme() config.ThemeConfig {
	return config.ThemeConfig{Name: "test", SegmentLength: 2}
}

func testConfig() *config.WiresConfig {
	cfg := config.DefaultWiresConfig()
	return &cfg
}

// quietConfig disables the spawn routines so tests control every wire.
func quietConfig() *config.WiresConfig {
	cfg := testConfig()
	for i := range cfg.Wires.Stages {
		cfg.Wires.Stages[i].MinSpawnInterval = 1000
		cfg.Wires.Stages[i].MaxSpawnInterval = 1000
	}
	cfg.Packets.Enabled = false
	cfg.Score.AutoIncrease = false
	return cfg
}

func newTestSim(t *testing.T, cfg *config.WiresConfig, seed int64) *Simulation {
	t.Helper()
	sim, err := New(cfg, Options{Seed: seed})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return sim
}

func newLoggedSim(t *testing.T, cfg *config.WiresConfig) (*Simulation, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	sim, err := New(cfg, Options{Seed: 1, Logger: log.New(&buf)})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return sim, &buf
}

// countEvents counts published events by type.
func countEvents(sim *Simulation) map[events.Type]int {
	counts := make(map[events.Type]int)
	sim.SubscribeAll(func(ev Event) {
		counts[ev.Type]++
	})
	return counts
}

func healthyProps(m *WireManager) config.WireStageProperties {
	p := m.GetStageWireProperties()
	p.DefectChance = 0
	p.SparkDelaySegments = 0
	return p
}
