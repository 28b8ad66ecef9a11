package core

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vovakirdan/wires/internal/config"
	"github.com/vovakirdan/wires/internal/events"
	"github.com/vovakirdan/wires/internal/pool"
	"github.com/vovakirdan/wires/internal/sched"
)

// ScoreManager accumulates score, runs the multiplier stage machine and
// spawns data packets.
type ScoreManager struct {
	*env
	wires *WireManager

	score         float64
	stage         int
	lives         int
	stageResets   int
	allowDecrease bool
	gameOver      bool
	running       bool

	multTask     sched.TaskID
	multInterval float64
	hasInterval  bool

	bonusUsed int

	packets      *pool.Pool[*DataPacket]
	packetTask   sched.TaskID
	sinceCluster int
	nextPacketID int
	scratch      []*DataPacket
}

func newScoreManager(e *env, wires *WireManager) *ScoreManager {
	s := &ScoreManager{
		env:           e,
		wires:         wires,
		allowDecrease: e.cfg.Score.AllowDecrease,
		packets:       pool.New[*DataPacket](16),
		scratch:       make([]*DataPacket, 0, 16),
	}
	s.stage = config.StageIndex(len(e.cfg.Multiplier), e.cfg.Score.StartStage)
	s.lives = e.cfg.MultiplierStage(s.stage).Lives

	e.bus.Subscribe(events.WireMissed, func(Event) {
		s.DecreaseMultiplier()
	})
	e.bus.Subscribe(events.JumpStarted, func(ev Event) {
		if ev.Forced {
			return
		}
		s.bonusUsed = 0
		s.AddScore(e.cfg.Score.JumpScore)
	})
	return s
}

// Start arms the multiplier timer and the packet routine.
func (s *ScoreManager) Start() {
	if s.running {
		return
	}
	s.running = true
	s.SetMultiplierStage(s.stage)
	s.schedulePackets()
}

// Stop cancels the timers owned by the manager.
func (s *ScoreManager) Stop() {
	s.running = false
	s.sched.Cancel(s.multTask)
	s.sched.Cancel(s.packetTask)
	s.multTask, s.packetTask = 0, 0
	s.hasInterval = false
}

// Tick accumulates time score and advances packets.
func (s *ScoreManager) Tick(dt float64) {
	if !s.running || s.gameOver {
		return
	}
	s.score += s.cfg.Score.ScorePerSecond * float64(s.Multiplier()) * dt
	s.tickPackets(dt)
}

// AddScore awards points scaled by the current multiplier. Negative awards
// are ignored so the score never decreases.
func (s *ScoreManager) AddScore(points float64) {
	if points <= 0 {
		return
	}
	s.score += points * float64(s.Multiplier())
}

// SetMultiplierStage moves to stage, clamped to [0, MaxStage]. Lives reset
// and the auto-increase timer restarts even if the stage is unchanged.
func (s *ScoreManager) SetMultiplierStage(stage int) {
	stage = config.StageIndex(len(s.cfg.Multiplier), stage)
	changed := stage != s.stage
	s.stage = stage
	s.lives = s.cfg.MultiplierStage(stage).Lives
	s.bus.Publish(Event{Type: events.LivesChanged, Stage: stage, Lives: s.lives})
	s.restartTimer()
	if changed {
		s.bus.Publish(Event{Type: events.MultiplierChanged, Stage: stage, Multiplier: s.Multiplier()})
	}
}

// IncreaseMultiplier advances one stage and clears the handicap counter.
func (s *ScoreManager) IncreaseMultiplier() bool {
	if s.stage >= s.MaxStage() {
		return false
	}
	s.stageResets = 0
	s.SetMultiplierStage(s.stage + 1)
	return true
}

// DecreaseMultiplier consumes a life. Running out of lives drops one stage
// and counts a reset. It is a no-op when decreasing is disabled.
func (s *ScoreManager) DecreaseMultiplier() bool {
	if !s.allowDecrease || s.gameOver {
		return false
	}
	s.lives--
	if s.lives > 0 {
		s.bus.Publish(Event{Type: events.LivesChanged, Stage: s.stage, Lives: s.lives})
		return true
	}

	s.stageResets++
	if s.stage == 0 && s.cfg.Score.GameOverOnNoLives {
		s.lives = 0
		s.gameOver = true
		s.sched.Cancel(s.multTask)
		s.multTask = 0
		s.hasInterval = false
		s.bus.Publish(Event{Type: events.LivesChanged, Stage: s.stage, Lives: 0})
		s.bus.Publish(Event{Type: events.GameOver, Stage: s.stage, Reason: "out of lives"})
		return true
	}
	s.SetMultiplierStage(s.stage - 1)
	return true
}

// SetAllowDecrease toggles the decrease path.
func (s *ScoreManager) SetAllowDecrease(allow bool) { s.allowDecrease = allow }

// IsHandicapped reports whether auto-increase uses the handicap duration.
func (s *ScoreManager) IsHandicapped() bool {
	return s.stageResets >= s.cfg.Score.StageHandicap
}

// StageDuration is the auto-increase interval for the current stage.
func (s *ScoreManager) StageDuration() float64 {
	props := s.cfg.MultiplierStage(s.stage)
	if s.IsHandicapped() && props.HandicapDuration > 0 {
		return props.HandicapDuration
	}
	return props.Duration
}

func (s *ScoreManager) restartTimer() {
	s.sched.Cancel(s.multTask)
	s.multTask = 0
	s.hasInterval = false
	if !s.running || !s.cfg.Score.AutoIncrease || s.stage >= s.MaxStage() {
		return
	}
	d := s.StageDuration()
	if d <= 0 {
		return
	}
	s.multInterval = d
	s.hasInterval = true
	s.multTask = s.sched.AfterSeconds(d, func() {
		s.multTask = 0
		s.hasInterval = false
		s.IncreaseMultiplier()
	})
}

// GetMultiplierProgress is the fraction of the current auto-increase
// interval that has elapsed. Without an interval it is 0.
func (s *ScoreManager) GetMultiplierProgress() float64 {
	if !s.hasInterval || s.multInterval <= 0 {
		return 0
	}
	remaining, ok := s.sched.Remaining(s.multTask)
	if !ok {
		return 0
	}
	return clamp01(1 - remaining/s.multInterval)
}

// MultiplierInterval returns the current auto-increase interval, if any.
func (s *ScoreManager) MultiplierInterval() (float64, bool) {
	return s.multInterval, s.hasInterval
}

func (s *ScoreManager) Score() float64   { return s.score }
func (s *ScoreManager) Stage() int       { return s.stage }
func (s *ScoreManager) Lives() int       { return s.lives }
func (s *ScoreManager) StageResets() int { return s.stageResets }
func (s *ScoreManager) GameOver() bool   { return s.gameOver }
func (s *ScoreManager) BonusUsed() int   { return s.bonusUsed }
func (s *ScoreManager) MaxStage() int    { return s.cfg.MaxStage() }

// Multiplier is 2^stage.
func (s *ScoreManager) Multiplier() int { return 1 << s.stage }

// ActivePackets returns the live packets. The slice aliases pool storage.
func (s *ScoreManager) ActivePackets() []*DataPacket { return s.packets.Active() }

// OccupiedPositions implements SpaceOccupant.
func (s *ScoreManager) OccupiedPositions(dst []r3.Vec) []r3.Vec {
	for _, p := range s.packets.Active() {
		dst = append(dst, p.position)
	}
	return dst
}

// CollectPacket starts the seek phase of a floating packet.
func (s *ScoreManager) CollectPacket(p *DataPacket, j *Jumper) bool {
	if p == nil || p.state != PacketFloating || j == nil {
		return false
	}
	p.state = PacketSeeking
	p.seekFrom = p.position
	p.seekTime = 0
	p.target = j
	if s.cfg.Packets.SeekDuration <= 0 {
		s.awardPacket(p)
	}
	return true
}

func (s *ScoreManager) awardPacket(p *DataPacket) {
	s.AddScore(s.cfg.Score.PacketScore)
	add := s.cfg.Score.PacketBonusSegments
	if left := s.cfg.Score.MaxBonusSegments - s.bonusUsed; add > left {
		add = left
	}
	if add > 0 && s.wires.ExtendActiveWire(add) {
		s.bonusUsed += add
	}
	s.despawnPacket(p, true)
}

func (s *ScoreManager) tickPackets(dt float64) {
	seek := s.cfg.Packets.SeekDuration
	playerSeg := s.wires.PlayerSegment()
	behind := s.cfg.Wires.DespawnSegmentsBehind

	s.scratch = s.scratch[:0]
	for _, p := range s.packets.Active() {
		switch p.state {
		case PacketFloating:
			p.position = r3.Add(p.position, r3.Scale(p.speed*dt, s.plane.Forward))
			p.age += dt
			expired := p.lifetime > 0 && p.age >= p.lifetime
			if expired || s.plane.GetPositionSegment(p.position)+behind < playerSeg {
				s.scratch = append(s.scratch, p)
			}
		case PacketSeeking:
			p.seekTime += dt
			t := 1.0
			if seek > 0 {
				t = clamp01(p.seekTime / seek)
			}
			p.position = lerp(p.seekFrom, p.target.position, t)
			if t >= 1 {
				s.scratch = append(s.scratch, p)
			}
		}
	}
	for _, p := range s.scratch {
		if p.state == PacketSeeking {
			s.awardPacket(p)
		} else {
			s.despawnPacket(p, false)
		}
	}
}

func (s *ScoreManager) despawnPacket(p *DataPacket, collected bool) {
	if p.state == PacketInactive {
		return
	}
	p.deactivate()
	s.packets.DeactivateObject(p)
	s.bus.Publish(Event{Type: events.PacketDespawned, Packet: p, Collected: collected})
}

func (s *ScoreManager) schedulePackets() {
	if !s.cfg.Packets.Enabled || len(s.cfg.Packets.Stages) == 0 {
		return
	}
	p := s.cfg.PacketStage(s.stage)
	d := randRange(s.rng, p.MinSpawnInterval, p.MaxSpawnInterval)
	s.packetTask = s.sched.AfterSeconds(d, s.packetRoutine)
}

func (s *ScoreManager) packetRoutine() {
	s.packetTask = 0
	if !s.running || s.gameOver {
		return
	}
	p := s.cfg.PacketStage(s.stage)
	if s.packets.ActiveCount() < p.MaxPackets {
		s.SpawnPackets(p)
	}
	s.schedulePackets()
}

// SpawnPackets runs one spawn attempt: a single packet, or a cluster once
// ClusterRate plain attempts have passed and the ClusterChance roll hits.
// It returns the number of packets placed.
func (s *ScoreManager) SpawnPackets(p config.PacketStageProperties) int {
	cluster := false
	if p.MaxPerCluster > 0 && s.sinceCluster >= p.ClusterRate && s.rng.Float64() < p.ClusterChance {
		cluster = true
		s.sinceCluster = 0
	} else {
		s.sinceCluster++
	}

	area := SpawnArea{
		InnerRadius:   p.InnerRadius,
		OuterRadius:   p.OuterRadius,
		BottomCutoff:  p.BottomCutoff,
		TopCutoff:     p.TopCutoff,
		SegmentOffset: p.SpawnSegmentOffset,
		SegmentRange:  p.SpawnSegmentRange,
	}
	center, ok := s.wires.FindSpawnPosition(area, 1, true)
	if !ok {
		s.log.Warn("no space for packet, skipping spawn", "attempts", spawnAttempts, "stage", s.stage)
		s.bus.Publish(Event{Type: events.SpawnFailed, Stage: s.stage, Reason: "packet"})
		return 0
	}

	n := 1
	if cluster {
		n = randIntRange(s.rng, p.MinPerCluster, p.MaxPerCluster)
	}
	if room := p.MaxPackets - s.packets.ActiveCount(); n > room {
		n = room
	}
	for i := 0; i < n; i++ {
		pos := center
		if i > 0 {
			jitter := GetRandomCircleOffset(s.rng, s.plane, 0, p.ClusterRadius, 1, 1)
			segs := 0
			if p.ClusterSegmentRange > 0 {
				segs = s.rng.Intn(2*p.ClusterSegmentRange+1) - p.ClusterSegmentRange
			}
			pos = r3.Add(pos, r3.Add(jitter, r3.Scale(float64(segs)*s.plane.SegmentLength, s.plane.Forward)))
		}
		s.spawnPacket(pos, p)
	}
	return n
}

func (s *ScoreManager) spawnPacket(pos r3.Vec, p config.PacketStageProperties) *DataPacket {
	pk, ok := s.packets.ActivateObject()
	if !ok {
		s.nextPacketID++
		s.packets.Add(newDataPacket(s.nextPacketID, s.onPacketInteract))
		pk, _ = s.packets.ActivateObject()
	}
	pk.activate(pos, randRange(s.rng, p.MinSpeed, p.MaxSpeed), p.Lifetime)
	s.bus.Publish(Event{Type: events.PacketSpawned, Packet: pk, Stage: s.stage})
	return pk
}

func (s *ScoreManager) onPacketInteract(p *DataPacket, j *Jumper) {
	s.CollectPacket(p, j)
}
