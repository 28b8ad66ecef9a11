package core

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vovakirdan/wires/internal/events"
)

func TestSetMultiplierStageClamps(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	s := sim.Score()
	top := s.MaxStage()

	tests := []struct {
		in, want int
	}{
		{-5, 0},
		{0, 0},
		{2, 2},
		{top, top},
		{top + 1, top},
		{1 << 20, top},
	}
	for _, tt := range tests {
		s.SetMultiplierStage(tt.in)
		if s.Stage() != tt.want {
			t.Errorf("SetMultiplierStage(%d) -> %d, want %d", tt.in, s.Stage(), tt.want)
		}
		if s.Multiplier() != 1<<tt.want {
			t.Errorf("Multiplier() = %d at stage %d", s.Multiplier(), tt.want)
		}
	}
}

func TestDecreaseDisabledIsNoop(t *testing.T) {
	cfg := quietConfig()
	cfg.Score.AllowDecrease = false
	sim := newTestSim(t, cfg, 1)
	s := sim.Score()
	s.SetMultiplierStage(2)
	lives := s.Lives()

	if s.DecreaseMultiplier() {
		t.Error("DecreaseMultiplier should report no change")
	}
	if s.Stage() != 2 || s.Lives() != lives {
		t.Errorf("stage %d lives %d, want 2 and %d", s.Stage(), s.Lives(), lives)
	}
}

func TestDecreaseConsumesLivesThenStage(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	s := sim.Score()
	s.SetMultiplierStage(2)
	lives := s.Lives()

	for i := 1; i < lives; i++ {
		s.DecreaseMultiplier()
		if s.Stage() != 2 || s.Lives() != lives-i {
			t.Fatalf("after %d misses: stage %d lives %d", i, s.Stage(), s.Lives())
		}
	}
	s.DecreaseMultiplier()
	if s.Stage() != 1 {
		t.Fatalf("stage %d, want 1 after running out of lives", s.Stage())
	}
	if s.Lives() != sim.Config().Multiplier[1].Lives {
		t.Errorf("lives %d, want reset to %d", s.Lives(), sim.Config().Multiplier[1].Lives)
	}
	if s.StageResets() != 1 {
		t.Errorf("StageResets() = %d, want 1", s.StageResets())
	}

	s.IncreaseMultiplier()
	if s.StageResets() != 0 {
		t.Error("increasing the stage should clear the reset counter")
	}
}

func TestWireMissConsumesLife(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	before := sim.Score().Lives()
	sim.env.bus.Publish(Event{Type: events.WireMissed})
	if sim.Score().Lives() != before-1 {
		t.Errorf("lives %d, want %d", sim.Score().Lives(), before-1)
	}
}

func TestGameOverAtStageZero(t *testing.T) {
	cfg := quietConfig()
	cfg.Score.GameOverOnNoLives = true
	sim := newTestSim(t, cfg, 1)
	counts := countEvents(sim)
	s := sim.Score()

	for i := 0; i < cfg.Multiplier[0].Lives; i++ {
		s.DecreaseMultiplier()
	}
	if !s.GameOver() || !sim.Over() {
		t.Fatal("running out of lives at stage 0 should end the run")
	}
	if counts[events.GameOver] != 1 {
		t.Errorf("GameOver published %d times", counts[events.GameOver])
	}
}

func TestAutoIncreaseTimer(t *testing.T) {
	cfg := quietConfig()
	cfg.Score.AutoIncrease = true
	sim := newTestSim(t, cfg, 1)
	s := sim.Score()
	s.Start()

	d, ok := s.MultiplierInterval()
	if !ok || d != cfg.Multiplier[0].Duration {
		t.Fatalf("interval %v %v, want %v", d, ok, cfg.Multiplier[0].Duration)
	}

	sim.env.sched.Poll(d/2, 0)
	if got := s.GetMultiplierProgress(); got != 0.5 {
		t.Errorf("progress at half interval = %v, want 0.5", got)
	}

	sim.env.sched.Poll(d, 0)
	if s.Stage() != 1 {
		t.Fatalf("stage %d, want 1 after the interval", s.Stage())
	}
	if got := s.GetMultiplierProgress(); got != 0 {
		t.Errorf("progress after stage change = %v, want 0", got)
	}
}

func TestHandicapDuration(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	s := sim.Score()
	cfg := sim.Config()

	if s.StageDuration() != cfg.Multiplier[0].Duration {
		t.Error("no handicap expected initially")
	}
	s.stageResets = cfg.Score.StageHandicap
	if !s.IsHandicapped() || s.StageDuration() != cfg.Multiplier[0].HandicapDuration {
		t.Errorf("handicapped duration %v, want %v", s.StageDuration(), cfg.Multiplier[0].HandicapDuration)
	}
}

func TestNoTimerWithoutInterval(t *testing.T) {
	cfg := quietConfig()
	cfg.Score.AutoIncrease = true
	sim := newTestSim(t, cfg, 1)
	s := sim.Score()
	s.Start()

	s.SetMultiplierStage(s.MaxStage())
	if _, ok := s.MultiplierInterval(); ok {
		t.Error("max stage should have no auto-increase interval")
	}
	if s.GetMultiplierProgress() != 0 {
		t.Error("progress without an interval should be 0")
	}
}

func TestScoreAccumulation(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	s := sim.Score()
	s.Start()
	per := sim.Config().Score.ScorePerSecond

	s.Tick(1)
	s.SetMultiplierStage(1)
	s.Tick(1)
	if want := per + 2*per; s.Score() != want {
		t.Errorf("Score() = %v, want %v", s.Score(), want)
	}

	before := s.Score()
	sim.env.bus.Publish(Event{Type: events.JumpStarted})
	if want := before + 2*sim.Config().Score.JumpScore; s.Score() != want {
		t.Errorf("jump award: %v, want %v", s.Score(), want)
	}
	before = s.Score()
	sim.env.bus.Publish(Event{Type: events.JumpStarted, Forced: true})
	if s.Score() != before {
		t.Error("forced jumps must not award points")
	}
	s.AddScore(-100)
	if s.Score() != before {
		t.Error("score must never decrease")
	}
}

func TestPacketCollectAwardsAndExtends(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	counts := countEvents(sim)
	sim.Start()
	s := sim.Score()
	cfg := sim.Config()
	wire := sim.Jumper().Wire()
	segs := wire.Segments()
	props := cfg.PacketStage(0)

	collect := func() {
		t.Helper()
		p := s.spawnPacket(r3.Vec{X: 1, Z: 6}, props)
		p.OnInteract(sim.Jumper())
		if p.State() != PacketSeeking {
			t.Fatalf("collected packet state %v, want seeking", p.State())
		}
		s.tickPackets(cfg.Packets.SeekDuration + 0.01)
		if p.State() != PacketInactive {
			t.Fatalf("packet should be awarded after seeking, state %v", p.State())
		}
	}

	before := s.Score()
	collect()
	if s.Score() != before+cfg.Score.PacketScore {
		t.Errorf("score %v, want %v", s.Score(), before+cfg.Score.PacketScore)
	}
	bonus := cfg.Score.PacketBonusSegments
	if wire.Segments() != segs+bonus {
		t.Errorf("wire has %d segments, want %d", wire.Segments(), segs+bonus)
	}

	// Further packets extend only up to the per-jump cap.
	for i := 0; i < 4; i++ {
		collect()
	}
	if wire.Segments() != segs+cfg.Score.MaxBonusSegments {
		t.Errorf("wire has %d segments, want capped at %d", wire.Segments(), segs+cfg.Score.MaxBonusSegments)
	}
	if s.BonusUsed() != cfg.Score.MaxBonusSegments {
		t.Errorf("BonusUsed() = %d", s.BonusUsed())
	}
	if counts[events.PacketDespawned] != 5 {
		t.Errorf("PacketDespawned published %d times, want 5", counts[events.PacketDespawned])
	}

	sim.env.bus.Publish(Event{Type: events.JumpStarted})
	if s.BonusUsed() != 0 {
		t.Error("a successful jump should reset the bonus budget")
	}
}

func TestPacketExpires(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	s := sim.Score()
	var expired, collected int
	sim.Subscribe(events.PacketDespawned, func(ev Event) {
		if ev.Collected {
			collected++
		} else {
			expired++
		}
	})

	props := sim.Config().PacketStage(0)
	props.Lifetime = 0.5
	p := s.spawnPacket(r3.Vec{Z: 20}, props)
	s.tickPackets(0.3)
	if p.State() != PacketFloating {
		t.Fatal("packet expired early")
	}
	if p.Position().Z <= 20 {
		t.Error("floating packet should move along the wire axis")
	}
	s.tickPackets(0.3)
	if p.State() != PacketInactive || expired != 1 || collected != 0 {
		t.Errorf("state %v expired %d collected %d", p.State(), expired, collected)
	}
	if p.CanInteract(sim.Jumper()) {
		t.Error("expired packet must not be interactable")
	}
}

func TestPacketClusterRate(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	s := sim.Score()
	p := sim.Config().PacketStage(0)
	p.ClusterRate = 3
	p.ClusterChance = 1
	p.MinPerCluster, p.MaxPerCluster = 4, 4
	p.MaxPackets = 100
	p.InnerRadius, p.OuterRadius = 50, 200
	p.BottomCutoff, p.TopCutoff = 1, 1
	p.SpawnSegmentRange = 50

	for i := 0; i < 3; i++ {
		if n := s.SpawnPackets(p); n > 1 {
			t.Fatalf("attempt %d placed %d packets before the cluster rate", i, n)
		}
	}
	if s.sinceCluster != 3 {
		t.Fatalf("sinceCluster = %d, want 3", s.sinceCluster)
	}
	n := s.SpawnPackets(p)
	if s.sinceCluster != 0 {
		t.Error("a cluster should reset the attempt counter")
	}
	if n != 0 && n != 4 {
		t.Errorf("cluster placed %d packets, want 4", n)
	}
}

func TestClusterRespectsMaxPackets(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 2)
	s := sim.Score()
	p := sim.Config().PacketStage(0)
	p.ClusterRate = 0
	p.ClusterChance = 1
	p.MinPerCluster, p.MaxPerCluster = 6, 6
	p.MaxPackets = 2

	if n := s.SpawnPackets(p); n > 2 {
		t.Errorf("placed %d packets over the limit of 2", n)
	}
	if len(s.ActivePackets()) > 2 {
		t.Errorf("%d active packets", len(s.ActivePackets()))
	}
}
