package core

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vovakirdan/wires/internal/events"
)

func TestStartAttachesPlayerToFrozenWire(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	sim.Start()

	j := sim.Jumper()
	if j.Spark() == nil || j.Wire() == nil {
		t.Fatal("player should ride the initial wire")
	}
	if !j.Wire().JumperAttached() {
		t.Error("initial wire should report the jumper attached")
	}
	if j.Spark().State() != SparkOccupied || !j.Spark().Frozen() {
		t.Errorf("initial spark state %v frozen=%v, want occupied and frozen", j.Spark().State(), j.Spark().Frozen())
	}
	if j.IsJumping() {
		t.Error("initial attach should be instant")
	}
	if j.Wire().Segments() != sim.Config().Wires.InitialSegments {
		t.Errorf("initial wire has %d segments, want %d", j.Wire().Segments(), sim.Config().Wires.InitialSegments)
	}
}

func TestStagePropertiesClamp(t *testing.T) {
	cfg := quietConfig()
	cfg.Wires.Stages = cfg.Wires.Stages[:1]
	only := cfg.Wires.Stages[0]
	sim := newTestSim(t, cfg, 1)
	m := sim.Wires()

	m.SetStage(5)
	if got := m.GetStageWireProperties(); got != only {
		t.Errorf("stage 5 properties = %+v, want the single entry", got)
	}
}

func TestStageChangeInvalidatesProperties(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	m := sim.Wires()
	_ = m.GetStageWireProperties()

	sim.Score().SetMultiplierStage(2)
	if m.Stage() != 2 {
		t.Fatalf("wire manager stage = %d, want 2", m.Stage())
	}
	if got := m.GetStageWireProperties(); got != sim.Config().Wires.Stages[2] {
		t.Errorf("properties not refreshed after stage change: %+v", got)
	}
}

func TestPropertiesOverride(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	m := sim.Wires()
	base := m.GetStageWireProperties()

	o := base
	o.SparkSpeed = 99
	m.OverrideWireProperties(o)
	if m.GetStageWireProperties().SparkSpeed != 99 {
		t.Error("override not applied")
	}
	sim.Score().SetMultiplierStage(1)
	if m.GetStageWireProperties().SparkSpeed != 99 {
		t.Error("override should survive a stage change")
	}
	m.ClearWirePropertiesOverride()
	if m.GetStageWireProperties() != sim.Config().Wires.Stages[1] {
		t.Error("clearing the override should restore the stage row")
	}
}

// runUntilMiss ticks until the player's wire runs out.
func runUntilMiss(t *testing.T, sim *Simulation) {
	t.Helper()
	missed := false
	id := sim.Subscribe(events.WireMissed, func(Event) { missed = true })
	defer sim.Unsubscribe(id)
	for i := 0; i < 600 && !missed; i++ {
		sim.Tick(testDT)
	}
	if !missed {
		t.Fatal("player never missed")
	}
}

func TestDriftTimeoutNeverStrands(t *testing.T) {
	cfg := quietConfig()
	cfg.Wires.InitialSegments = 1
	cfg.Wires.DriftingEnabled = true
	cfg.Wires.MaxDriftTime = 0.5
	sim := newTestSim(t, cfg, 11)
	counts := countEvents(sim)
	sim.Start()

	runUntilMiss(t, sim)
	j := sim.Jumper()
	if !j.IsDrifting() {
		t.Fatal("player should drift after a miss")
	}
	if sim.Wires().WireCount() != 0 {
		t.Fatalf("expected no wires after the miss, got %d", sim.Wires().WireCount())
	}

	z0 := j.Position().Z
	for i := 0; i < 60 && j.IsDrifting(); i++ {
		sim.Tick(testDT)
	}
	if j.IsDrifting() {
		t.Fatal("drift did not time out")
	}
	if j.Position().Z <= z0 {
		t.Error("drifting player should move forward")
	}
	if j.Spark() == nil || j.Spark().Jumper() != j || !j.Wire().JumperAttached() {
		t.Fatal("player should be attached after the drift timeout")
	}
	if counts[events.DriftingToggled] != 2 {
		t.Errorf("DriftingToggled published %d times, want 2", counts[events.DriftingToggled])
	}
}

func TestMissWithoutDriftingJumpsImmediately(t *testing.T) {
	cfg := quietConfig()
	cfg.Wires.InitialSegments = 1
	sim := newTestSim(t, cfg, 2)
	sim.Wires().SetDriftingEnabled(false)
	sim.Start()

	runUntilMiss(t, sim)
	j := sim.Jumper()
	if j.IsDrifting() {
		t.Error("player must not drift when drifting is disabled")
	}
	if j.Spark() == nil {
		t.Error("player should be attached in the same tick as the miss")
	}
}

func TestDisablingDriftWhileDriftingJumps(t *testing.T) {
	cfg := quietConfig()
	cfg.Wires.InitialSegments = 1
	cfg.Wires.MaxDriftTime = 100
	sim := newTestSim(t, cfg, 3)
	sim.Start()

	runUntilMiss(t, sim)
	if !sim.Jumper().IsDrifting() {
		t.Fatal("expected drifting")
	}
	sim.Wires().SetDriftingEnabled(false)
	if sim.Jumper().IsDrifting() || sim.Jumper().Spark() == nil {
		t.Error("disabling drift should force a jump")
	}
}

func TestAutoJumpFallbackIgnoresSpace(t *testing.T) {
	cfg := quietConfig()
	cfg.Wires.InitialSegments = 1
	cfg.Wires.WireSpace = 1e6
	cfg.Wires.MaxDriftTime = 0.1
	cfg.Wires.MaxForcedGenerations = 2
	sim, buf := newLoggedSim(t, cfg)
	sim.Start()

	// A sparkless wire covering the whole run blocks every placement.
	m := sim.Wires()
	p := healthyProps(m)
	p.SparkDelaySegments = 10000
	blocker := m.placeWire(m.plane.AtSegment(r3.Vec{X: 1}, 0), 5000, p, false)
	if blocker.Spark() != nil || !blocker.HasPendingSpark() {
		t.Fatal("blocker should be waiting for its spark")
	}

	runUntilMiss(t, sim)
	for i := 0; i < 30 && sim.Jumper().Spark() == nil; i++ {
		sim.Tick(testDT)
	}
	if sim.Jumper().Spark() == nil {
		t.Fatal("player stranded")
	}
	if !strings.Contains(buf.String(), "forced wire generation exhausted") {
		t.Errorf("expected fallback warning, log was:\n%s", buf.String())
	}
}

func TestJumpToSparkEligibility(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 4)
	sim.Start()
	m := sim.Wires()
	p := m.GetStageWireProperties()
	p.DefectChance = 1
	p.SparkDelaySegments = 0
	p.OnSwitchInterval, p.OffSwitchInterval = 1, 1

	w := m.placeWire(m.plane.AtSegment(r3.Vec{X: 5}, 4), 10, p, true)
	s := w.Spark()
	if s == nil || !s.IsSwitching() {
		t.Fatal("defective wire should carry a switching spark")
	}
	s.on = false
	s.canJumpTo = false

	if m.JumpToSpark(s, false) {
		t.Fatal("unforced jump to an ineligible spark should fail")
	}
	if !m.JumpToSpark(s, true) {
		t.Fatal("forced jump should succeed")
	}
	if sim.Jumper().Spark() != s || !w.JumperAttached() {
		t.Error("player should be on the forced spark")
	}
}

func TestJumpRearmsPreviousSpark(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 5)
	counts := countEvents(sim)
	sim.Start()
	m := sim.Wires()
	j := sim.Jumper()
	first := j.Spark()

	defective := m.GetStageWireProperties()
	defective.DefectChance = 1
	defective.SparkDelaySegments = 0
	defective.OnSwitchInterval, defective.OffSwitchInterval = 1, 1
	dw := m.placeWire(m.plane.AtSegment(r3.Vec{X: 5}, 2), 10, defective, true)
	ds := dw.Spark()
	ds.on = true
	ds.canJumpTo = true

	if !m.JumpToSpark(ds, false) {
		t.Fatal("jump to eligible spark failed")
	}
	if first.State() != SparkFrozen || !first.CanJumpTo() || first.Wire().JumperAttached() {
		t.Errorf("frozen initial spark should be eligible again without switching, state %v", first.State())
	}
	if !j.IsJumping() {
		t.Fatal("jump should start a transition")
	}
	for i := 0; i < 60 && j.IsJumping(); i++ {
		sim.Tick(testDT)
	}
	if j.IsJumping() || j.Position() != ds.Position() {
		t.Error("jump should finish on the spark")
	}
	if counts[events.JumpFinished] < 2 {
		t.Errorf("JumpFinished published %d times", counts[events.JumpFinished])
	}

	hw := m.placeWire(m.plane.AtSegment(r3.Vec{X: -5}, 4), 10, healthyProps(m), true)
	if !m.JumpToSpark(hw.Spark(), false) {
		t.Fatal("jump to healthy spark failed")
	}
	if !ds.IsSwitching() {
		t.Error("a vacated spark on a defective wire should resume switching")
	}
}

func TestRecycleCancelsDelayedSpark(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 6)
	m := sim.Wires()
	p := healthyProps(m)
	p.SparkDelaySegments = 3

	w := m.placeWire(m.plane.AtSegment(r3.Vec{X: 4}, 10), 5, p, false)
	task := w.sparkTask
	if !m.sched.Pending(task) {
		t.Fatal("delayed spark task should be pending")
	}
	m.recycleWire(w)
	if m.sched.Pending(task) {
		t.Fatal("recycling should cancel the delayed spark")
	}

	again := m.placeWire(m.plane.AtSegment(r3.Vec{X: -4}, 10), 5, healthyProps(m), true)
	if again != w {
		t.Fatal("pool should reuse the recycled wire")
	}
	m.sched.Poll(0, 1000)
	if n := len(m.ActiveSparks()); n != 1 {
		t.Errorf("%d active sparks, want 1", n)
	}
}

func TestMissingFactoryLogsError(t *testing.T) {
	sim, buf := newLoggedSim(t, quietConfig())
	m := sim.Wires()
	m.themes = nil

	w := m.placeWire(m.plane.AtSegment(r3.Vec{}, 2), 5, healthyProps(m), true)
	if w.Spark() != nil {
		t.Error("wire without factory should not get a spark")
	}
	if !strings.Contains(buf.String(), "cannot spawn spark") {
		t.Errorf("expected error log, got:\n%s", buf.String())
	}
}

func TestSpawnFailureIsLoggedAndPublished(t *testing.T) {
	cfg := quietConfig()
	cfg.Wires.WireSpace = 1e6
	sim, buf := newLoggedSim(t, cfg)
	counts := countEvents(sim)
	m := sim.Wires()
	m.placeWire(m.plane.AtSegment(r3.Vec{}, 0), 1000, healthyProps(m), true)

	if w := m.GenerateWire(m.GetStageWireProperties()); w != nil {
		t.Fatal("GenerateWire should fail when no space is left")
	}
	if counts[events.SpawnFailed] != 1 {
		t.Errorf("SpawnFailed published %d times, want 1", counts[events.SpawnFailed])
	}
	if !strings.Contains(buf.String(), "no space for wire") {
		t.Errorf("expected warning, got:\n%s", buf.String())
	}
}

func TestSpawnRoutineRespectsMaxWires(t *testing.T) {
	cfg := testConfig()
	cfg.Packets.Enabled = false
	cfg.Score.AutoIncrease = false
	for i := range cfg.Wires.Stages {
		cfg.Wires.Stages[i].MaxWires = 3
		cfg.Wires.Stages[i].MinSpawnInterval = 0.05
		cfg.Wires.Stages[i].MaxSpawnInterval = 0.1
	}
	sim := newTestSim(t, cfg, 8)
	sim.Start()

	for i := 0; i < 600; i++ {
		sim.Tick(testDT)
		if n := sim.Wires().WireCount(); n > 3+cfg.Wires.MaxForcedGenerations {
			t.Fatalf("tick %d: %d wires active", i, n)
		}
	}
	if sim.Stats().WiresSpawned < 3 {
		t.Errorf("only %d wires spawned", sim.Stats().WiresSpawned)
	}
}

func TestBoost(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 9)
	counts := countEvents(sim)
	sim.Start()
	m := sim.Wires()
	w := sim.Jumper().Wire()

	if !m.ActivateBoost() || !m.Boosting() {
		t.Fatal("boost should activate")
	}
	sim.Tick(0.1)
	want := m.GetStageWireProperties().SparkSpeed * sim.Config().Boost.SpeedScale * 0.1
	if d := w.DistanceTravelled(); d < want-1e-9 || d > want+1e-9 {
		t.Errorf("boosted distance %v, want %v", d, want)
	}

	for i := 0; i < 200 && m.Boosting(); i++ {
		sim.Tick(testDT)
	}
	if m.Boosting() {
		t.Error("boost should expire")
	}
	if counts[events.BoostChanged] != 2 {
		t.Errorf("BoostChanged published %d times, want 2", counts[events.BoostChanged])
	}
}

func TestTraceWorldJumpsToSpark(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 10)
	sim.Start()
	m := sim.Wires()
	target := m.placeWire(m.plane.AtSegment(r3.Vec{}, 5), 10, healthyProps(m), true)

	hit, ok := m.TraceWorld(Ray{Origin: sim.Jumper().Position(), Dir: r3.Vec{Z: 1}})
	if !ok {
		t.Fatal("trace should hit the spark ahead")
	}
	if hit.Target != Interactable(target.Spark()) {
		t.Errorf("hit %v, want the spark ahead", hit.Target)
	}
	if sim.Jumper().Spark() != target.Spark() {
		t.Error("tracing an eligible spark should jump to it")
	}
}

func TestBestWirePrefersLowestProgress(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 12)
	sim.Start()
	m := sim.Wires()
	a := m.placeWire(m.plane.AtSegment(r3.Vec{X: 5}, 4), 10, healthyProps(m), true)
	b := m.placeWire(m.plane.AtSegment(r3.Vec{X: -5}, 4), 10, healthyProps(m), true)
	a.TickWire(4)

	if got := m.BestWire(); got != b {
		t.Errorf("BestWire() = wire %d, want %d", got.ID(), b.ID())
	}
}

func TestSimultaneousExhaustionMissesOnce(t *testing.T) {
	cfg := quietConfig()
	cfg.Wires.InitialSegments = 2
	cfg.Score.AllowDecrease = true
	sim := newTestSim(t, cfg, 9)
	sim.Wires().SetDriftingEnabled(false)
	counts := countEvents(sim)
	sim.Start()
	m := sim.Wires()

	// Same length, same start time: both wires run out in the same tick.
	twin := m.placeWire(m.plane.AtSegment(r3.Vec{X: 5}, 0), 2, healthyProps(m), true)
	if twin.Spark() == nil {
		t.Fatal("twin wire should have a spark")
	}
	lives := sim.Score().Lives()

	for i := 0; i < 600 && counts[events.WireMissed] == 0; i++ {
		sim.Tick(testDT)
	}
	if counts[events.WireMissed] != 1 {
		t.Fatalf("WireMissed published %d times in the miss tick, want 1", counts[events.WireMissed])
	}
	if got := sim.Stats().Misses; got != 1 {
		t.Errorf("Stats().Misses = %d, want 1", got)
	}
	if got := sim.Score().Lives(); got != lives-1 {
		t.Errorf("lives = %d, want %d", got, lives-1)
	}
	if twin.Active() && twin.Exhausted() {
		t.Error("exhausted twin wire should be recycled")
	}
	w := sim.Jumper().Wire()
	if w == nil || !w.Active() || w.Exhausted() || !w.JumperAttached() {
		t.Error("player should be forced onto a live wire")
	}
}

func TestDriftTimeoutCountsFromMissTick(t *testing.T) {
	const dt = 0.25
	cfg := quietConfig()
	cfg.Wires.InitialSegments = 1
	cfg.Wires.DriftingEnabled = true
	cfg.Wires.MaxDriftTime = 0.5
	sim := newTestSim(t, cfg, 11)
	counts := countEvents(sim)
	sim.Start()

	for i := 0; i < 600 && counts[events.WireMissed] == 0; i++ {
		sim.Tick(dt)
	}
	if !sim.Jumper().IsDrifting() {
		t.Fatal("player should drift after a miss")
	}

	sim.Tick(dt)
	if !sim.Jumper().IsDrifting() {
		t.Fatal("drift ended a tick early")
	}
	sim.Tick(dt)
	if sim.Jumper().IsDrifting() {
		t.Error("drift should end exactly MaxDriftTime after the miss")
	}
}

func TestRearmKeepsSparkIntervals(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 5)
	sim.Start()
	m := sim.Wires()

	p := m.GetStageWireProperties()
	p.DefectChance = 1
	p.SparkDelaySegments = 0
	p.OnSwitchInterval, p.OffSwitchInterval = 3, 7
	dw := m.placeWire(m.plane.AtSegment(r3.Vec{X: 5}, 2), 10, p, true)
	ds := dw.Spark()
	ds.on = true
	ds.canJumpTo = true
	if !m.JumpToSpark(ds, false) {
		t.Fatal("jump to eligible spark failed")
	}

	hw := m.placeWire(m.plane.AtSegment(r3.Vec{X: -5}, 4), 10, healthyProps(m), true)
	if !m.JumpToSpark(hw.Spark(), true) {
		t.Fatal("jump to healthy spark failed")
	}
	if !ds.IsSwitching() {
		t.Fatal("vacated defective spark should switch again")
	}
	if ds.OnInterval() != 3 || ds.OffInterval() != 7 {
		t.Errorf("re-armed intervals = %v/%v, want the spark's own 3/7", ds.OnInterval(), ds.OffInterval())
	}
}
