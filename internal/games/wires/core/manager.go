package core

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vovakirdan/wires/internal/config"
	"github.com/vovakirdan/wires/internal/events"
	"github.com/vovakirdan/wires/internal/pool"
	"github.com/vovakirdan/wires/internal/sched"
)

// env holds the collaborators shared by the managers of one simulation.
type env struct {
	cfg   *config.WiresConfig
	plane Plane
	rng   *rand.Rand
	sched *sched.Scheduler
	bus   *Bus
	log   *log.Logger
}

// WireManager generates wires and sparks around the player, advances them,
// recycles them, and runs the jump/drift state machine.
type WireManager struct {
	*env

	wires  *pool.Pool[*Wire]
	sparks *pool.Pool[*Spark]
	themes []*Theme
	jumper Jumper

	stage      int
	props      config.WireStageProperties
	propsValid bool
	override   *config.WireStageProperties

	caster   Raycaster
	occupant SpaceOccupant

	running         bool
	driftingEnabled bool
	boostScale      float64

	spawnTask sched.TaskID
	driftTask sched.TaskID
	boostTask sched.TaskID

	nextWireID  int
	nextSparkID int
	scratch     []*Wire
	posScratch  []r3.Vec
}

func newWireManager(e *env, themes []*Theme) *WireManager {
	m := &WireManager{
		env:             e,
		wires:           pool.New[*Wire](32),
		sparks:          pool.New[*Spark](32),
		themes:          themes,
		driftingEnabled: e.cfg.Wires.DriftingEnabled,
		boostScale:      1,
		scratch:         make([]*Wire, 0, 16),
		posScratch:      make([]r3.Vec, 0, 16),
	}
	m.stage = config.StageIndex(len(e.cfg.Wires.Stages), e.cfg.Score.StartStage)
	m.jumper.reset(e.plane.Origin)
	e.bus.Subscribe(events.MultiplierChanged, func(ev Event) {
		m.SetStage(ev.Stage)
	})
	return m
}

// Start places the initial wire under the player with a frozen spark,
// attaches the player to it and starts the spawn routine.
func (m *WireManager) Start() {
	if m.running {
		return
	}
	m.running = true

	p := m.GetStageWireProperties()
	segments := m.cfg.Wires.InitialSegments
	if segments < 1 {
		segments = p.MaxSegments
	}
	w := m.placeWire(m.jumper.position, segments, p, true)
	if w != nil && w.spark != nil {
		w.spark.FreezeSwitching()
		m.InstantJumpToSpark(w.spark)
	}
	m.scheduleSpawn()
}

// Stop cancels every routine owned by the manager.
func (m *WireManager) Stop() {
	m.running = false
	m.sched.Cancel(m.spawnTask)
	m.sched.Cancel(m.driftTask)
	m.sched.Cancel(m.boostTask)
	m.spawnTask, m.driftTask, m.boostTask = 0, 0, 0
}

// SetStage switches generation to the given multiplier stage. Cached
// properties are invalidated so the next cycle uses the new table row.
func (m *WireManager) SetStage(stage int) {
	m.stage = config.StageIndex(len(m.cfg.Wires.Stages), stage)
	m.propsValid = false
}

// GetStageWireProperties returns the active generation properties: the
// override if one is set, otherwise the row for the current stage.
func (m *WireManager) GetStageWireProperties() config.WireStageProperties {
	if m.override != nil {
		return *m.override
	}
	if !m.propsValid {
		m.props = m.cfg.WireStage(m.stage)
		m.propsValid = true
	}
	return m.props
}

// OverrideWireProperties replaces the stage properties until cleared.
func (m *WireManager) OverrideWireProperties(p config.WireStageProperties) {
	m.override = &p
}

// ClearWirePropertiesOverride restores the stage table.
func (m *WireManager) ClearWirePropertiesOverride() {
	m.override = nil
}

// Tick advances sparks and wires, resolves exhausted wires, moves the
// player and recycles wires left behind.
func (m *WireManager) Tick(dt float64) {
	if !m.running {
		return
	}
	p := m.GetStageWireProperties()
	step := p.SparkSpeed * m.boostScale * dt

	for _, s := range m.sparks.Active() {
		s.Tick(dt)
	}

	m.scratch = m.scratch[:0]
	for _, w := range m.wires.Active() {
		w.TickWire(step)
		if w.Exhausted() {
			m.scratch = append(m.scratch, w)
		}
	}
	// Free wires are recycled before the ridden one is resolved, so a
	// forced jump after a miss never lands on a wire ending this tick.
	var ridden *Wire
	for _, w := range m.scratch {
		if w.jumperAttached {
			ridden = w
			continue
		}
		m.recycleWire(w)
	}
	if ridden != nil && ridden.active {
		m.miss(ridden)
	}

	m.updateJumper(dt, p)

	playerSeg := m.PlayerSegment()
	behind := m.cfg.Wires.DespawnSegmentsBehind
	m.scratch = m.scratch[:0]
	for _, w := range m.wires.Active() {
		if !w.jumperAttached && m.EndSegment(w)+behind < playerSeg {
			m.scratch = append(m.scratch, w)
		}
	}
	for _, w := range m.scratch {
		m.recycleWire(w)
	}
}

func (m *WireManager) updateJumper(dt float64, p config.WireStageProperties) {
	j := &m.jumper
	switch {
	case j.jumping && j.spark != nil:
		if j.jumpTime > 0 {
			j.jumpProgress += dt / j.jumpTime
		} else {
			j.jumpProgress = 1
		}
		if j.jumpProgress >= 1 {
			j.jumpProgress = 1
			j.jumping = false
			j.position = j.spark.position
			m.bus.Publish(Event{Type: events.JumpFinished, Spark: j.spark, Wire: j.wire})
			return
		}
		j.position = lerp(j.jumpFrom, j.spark.position, j.jumpProgress)
	case j.drifting:
		speed := p.SparkSpeed * p.SparkDriftScale * m.boostScale
		j.position = r3.Add(j.position, r3.Scale(speed*dt, m.plane.Forward))
		j.driftTime += dt
	}
}

// miss handles a wire that ran out while the player was riding it.
func (m *WireManager) miss(w *Wire) {
	j := &m.jumper
	m.bus.Publish(Event{Type: events.WireMissed, Wire: w, Spark: w.spark})

	if j.spark != nil {
		j.spark.DetachJumper()
	}
	j.spark = nil
	j.wire = nil
	j.jumping = false
	m.recycleWire(w)

	if !m.driftingEnabled {
		m.autoJump()
		return
	}
	m.setDrifting(true)
	if m.cfg.Wires.MaxDriftTime <= 0 {
		m.autoJump()
		return
	}
	m.sched.Cancel(m.driftTask)
	m.driftTask = m.sched.AfterSeconds(m.cfg.Wires.MaxDriftTime, func() {
		m.driftTask = 0
		m.autoJump()
	})
}

func (m *WireManager) setDrifting(drifting bool) {
	j := &m.jumper
	if j.drifting == drifting {
		return
	}
	j.drifting = drifting
	j.driftTime = 0
	if !drifting {
		m.sched.Cancel(m.driftTask)
		m.driftTask = 0
	}
	m.bus.Publish(Event{Type: events.DriftingToggled, Drifting: drifting})
}

// autoJump puts the player on a spark no matter what. Preference order:
// the freshest eligible spark, the freshest spark of any state, a freshly
// generated wire, and finally a wire placed directly ahead with no space
// check.
func (m *WireManager) autoJump() {
	if m.jumper.spark != nil && !m.jumper.drifting {
		return
	}
	if s := m.bestSpark(true); s != nil && m.JumpToSpark(s, true) {
		return
	}
	if s := m.bestSpark(false); s != nil && m.JumpToSpark(s, true) {
		return
	}

	p := m.GetStageWireProperties()
	tries := m.cfg.Wires.MaxForcedGenerations
	if tries < 1 {
		tries = 1
	}
	for i := 0; i < tries; i++ {
		w := m.generateWire(p, true)
		if w != nil && w.spark != nil && m.JumpToSpark(w.spark, true) {
			return
		}
	}

	m.log.Warn("forced wire generation exhausted, placing wire ahead of player", "tries", tries)
	seg := m.PlayerSegment() + 1
	pos := m.plane.AtSegment(r3.Add(m.plane.Lateral(m.jumper.position), r3.Scale(p.InnerRadius, m.plane.Right)), seg)
	w := m.placeWire(pos, randIntRange(m.rng, p.MinSegments, p.MaxSegments), p, true)
	if w != nil && w.spark != nil {
		m.JumpToSpark(w.spark, true)
	}
}

// bestSpark returns the unoccupied spark with the lowest progress, limited
// to jump-eligible sparks when eligible is set.
func (m *WireManager) bestSpark(eligible bool) *Spark {
	var best *Spark
	for _, w := range m.wires.Active() {
		s := w.spark
		if s == nil || s.jumper != nil || s == m.jumper.spark || w.Exhausted() {
			continue
		}
		if eligible && !s.canJumpTo {
			continue
		}
		if best == nil || w.progress < best.wire.progress {
			best = s
		}
	}
	return best
}

// BestWire returns the wire whose spark is eligible and least advanced, or nil.
func (m *WireManager) BestWire() *Wire {
	if s := m.bestSpark(true); s != nil {
		return s.wire
	}
	return nil
}

// JumpToSpark starts a jump transition to s. A forced jump bypasses the
// eligibility check. The previous spark is vacated and re-armed.
func (m *WireManager) JumpToSpark(s *Spark, force bool) bool {
	return m.jump(s, force, false)
}

// InstantJumpToSpark attaches the player to s without a transition.
func (m *WireManager) InstantJumpToSpark(s *Spark) bool {
	return m.jump(s, true, true)
}

func (m *WireManager) jump(s *Spark, force, instant bool) bool {
	j := &m.jumper
	if s == nil || !s.Active() || s.wire == nil || s.jumper != nil || s == j.spark {
		return false
	}
	if !s.canJumpTo {
		if !force {
			return false
		}
		s.makeEligible()
	}

	if old := j.spark; old != nil {
		old.DetachJumper()
		if j.wire != nil {
			j.wire.jumperAttached = false
		}
		m.rearm(old)
	}
	if !s.AttachJumper(j) {
		return false
	}

	p := m.GetStageWireProperties()
	j.spark = s
	j.wire = s.wire
	s.wire.jumperAttached = true
	j.jumpFrom = j.position
	j.jumpTime = p.JumpTime
	j.jumpProgress = 0
	j.jumping = true
	m.setDrifting(false)

	m.bus.Publish(Event{Type: events.JumpStarted, Spark: s, Wire: s.wire, Forced: force})
	if instant || j.jumpTime <= 0 {
		j.jumping = false
		j.jumpProgress = 1
		j.position = s.position
		m.bus.Publish(Event{Type: events.JumpFinished, Spark: s, Wire: s.wire})
	}
	return true
}

// rearm restores a vacated spark: defective wires resume switching with
// the spark's own intervals unless it was explicitly frozen, everything
// else becomes eligible again.
func (m *WireManager) rearm(s *Spark) {
	if !s.Active() {
		return
	}
	if s.wire != nil && s.wire.defective && !s.frozen {
		if s.StartSwitching(s.OnInterval(), s.OffInterval(), m.rng) {
			return
		}
	}
	s.makeEligible()
}

// SetDriftingEnabled toggles the drift window. Disabling it while drifting
// forces an immediate jump.
func (m *WireManager) SetDriftingEnabled(enabled bool) {
	m.driftingEnabled = enabled
	if !enabled && m.jumper.drifting {
		m.sched.Cancel(m.driftTask)
		m.driftTask = 0
		m.autoJump()
	}
}

// DriftingEnabled reports whether misses start a drift window.
func (m *WireManager) DriftingEnabled() bool { return m.driftingEnabled }

// ActivateBoost scales spark and drift speed for the configured duration.
// Re-activating restarts the timer.
func (m *WireManager) ActivateBoost() bool {
	b := m.cfg.Boost
	if b.SpeedScale <= 0 || b.Duration <= 0 {
		return false
	}
	wasBoosting := m.boostTask != 0
	m.sched.Cancel(m.boostTask)
	m.boostScale = b.SpeedScale
	m.boostTask = m.sched.AfterSeconds(b.Duration, func() {
		m.boostTask = 0
		m.boostScale = 1
		m.bus.Publish(Event{Type: events.BoostChanged, Boosting: false})
	})
	if !wasBoosting {
		m.bus.Publish(Event{Type: events.BoostChanged, Boosting: true})
	}
	return true
}

// Boosting reports whether a boost is active.
func (m *WireManager) Boosting() bool { return m.boostTask != 0 }

// ExtendActiveWire lengthens the wire the player is riding.
func (m *WireManager) ExtendActiveWire(segments int) bool {
	j := &m.jumper
	if segments <= 0 || j.wire == nil || j.drifting {
		return false
	}
	j.wire.Extend(segments)
	return true
}

// FreezeAll stops switching on every active spark.
func (m *WireManager) FreezeAll() {
	for _, s := range m.sparks.Active() {
		s.FreezeSwitching()
	}
}

// GenerateWire tries to place a new wire using p. It returns nil when no
// position with enough space was found.
func (m *WireManager) GenerateWire(p config.WireStageProperties) *Wire {
	return m.generateWire(p, false)
}

func (m *WireManager) generateWire(p config.WireStageProperties, immediate bool) *Wire {
	segments := randIntRange(m.rng, p.MinSegments, p.MaxSegments)
	area := SpawnArea{
		InnerRadius:   p.InnerRadius,
		OuterRadius:   p.OuterRadius,
		BottomCutoff:  p.BottomCutoff,
		TopCutoff:     p.TopCutoff,
		SegmentOffset: m.cfg.Wires.SpawnSegmentOffset,
		SegmentRange:  m.cfg.Wires.SpawnSegmentRange,
	}
	pos, ok := m.FindSpawnPosition(area, segments, false)
	if !ok {
		m.log.Warn("no space for wire, skipping spawn", "attempts", spawnAttempts, "stage", m.stage)
		m.bus.Publish(Event{Type: events.SpawnFailed, Stage: m.stage, Reason: "wire"})
		return nil
	}
	return m.placeWire(pos, segments, p, immediate)
}

// placeWire activates a wire at pos. Its spark is created now, or after the
// player advances SparkDelaySegments unless immediate is set.
func (m *WireManager) placeWire(pos r3.Vec, segments int, p config.WireStageProperties, immediate bool) *Wire {
	w := m.acquireWire()
	w.ActivateWire(pos, segments, m.plane.SegmentLength, m.themeFor(m.stage))
	w.defective = m.rng.Float64() < p.DefectChance
	m.bus.Publish(Event{Type: events.WireSpawned, Wire: w, Stage: m.stage})

	if !immediate && p.SparkDelaySegments > 0 {
		target := m.PlayerSegment() + p.SparkDelaySegments
		w.sparkTask = m.sched.AtSegment(target, func() {
			w.sparkTask = 0
			m.spawnSpark(w, m.GetStageWireProperties())
		})
		return w
	}
	m.spawnSpark(w, p)
	return w
}

// spawnSpark attaches a pooled spark to w. A wire without a factory has
// no spark template; that is logged and nil is returned.
func (m *WireManager) spawnSpark(w *Wire, p config.WireStageProperties) *Spark {
	if !w.active {
		return nil
	}
	if w.factory == nil {
		m.log.Error("wire has no factory, cannot spawn spark", "wire", w.id)
		return nil
	}
	s := m.acquireSpark()
	if w.defective {
		s.ActivateSpark(w, p.OnSwitchInterval, p.OffSwitchInterval, m.rng)
	} else {
		s.ActivateSpark(w, 0, 0, m.rng)
	}
	w.AttachSpark(s)
	return s
}

func (m *WireManager) acquireWire() *Wire {
	w, ok := m.wires.ActivateObject()
	if !ok {
		m.nextWireID++
		m.wires.Add(newWire(m.nextWireID, m.plane.Forward))
		w, _ = m.wires.ActivateObject()
	}
	return w
}

func (m *WireManager) acquireSpark() *Spark {
	s, ok := m.sparks.ActivateObject()
	if !ok {
		m.nextSparkID++
		m.sparks.Add(newSpark(m.nextSparkID, m.cfg.Wires.SwitchBlendDuration, m.onSparkInteract))
		s, _ = m.sparks.ActivateObject()
	}
	return s
}

func (m *WireManager) onSparkInteract(s *Spark, j *Jumper) {
	if j == &m.jumper {
		m.JumpToSpark(s, false)
	}
}

// recycleWire returns a wire and its spark to their pools and cancels a
// pending delayed spark.
func (m *WireManager) recycleWire(w *Wire) {
	if !w.active {
		return
	}
	m.sched.Cancel(w.sparkTask)
	if s := w.DeactivateWire(); s != nil {
		s.DetachJumper()
		s.Deactivate()
		m.sparks.DeactivateObject(s)
	}
	m.wires.DeactivateObject(w)
	m.bus.Publish(Event{Type: events.WireRecycled, Wire: w})
}

func (m *WireManager) themeFor(stage int) *Theme {
	if len(m.themes) == 0 {
		return nil
	}
	return m.themes[stage%len(m.themes)]
}

func (m *WireManager) scheduleSpawn() {
	p := m.GetStageWireProperties()
	d := randRange(m.rng, p.MinSpawnInterval, p.MaxSpawnInterval)
	m.spawnTask = m.sched.AfterSeconds(d, m.spawnRoutine)
}

func (m *WireManager) spawnRoutine() {
	m.spawnTask = 0
	if !m.running {
		return
	}
	p := m.GetStageWireProperties()
	if m.wires.ActiveCount() < p.MaxWires {
		m.GenerateWire(p)
	}
	m.scheduleSpawn()
}

// TraceWorld casts ray through the injected Raycaster and, when the hit
// target accepts the player, interacts with it.
func (m *WireManager) TraceWorld(ray Ray) (Hit, bool) {
	if m.caster == nil {
		return Hit{}, false
	}
	if ray.Ignore == nil && m.jumper.spark != nil {
		ray.Ignore = m.jumper.spark
	}
	hit, ok := m.caster.Cast(ray)
	if !ok || hit.Target == nil {
		return hit, ok
	}
	if hit.Target.CanInteract(&m.jumper) {
		hit.Target.OnInteract(&m.jumper)
	}
	return hit, true
}

// PlayerSegment is the segment containing the player.
func (m *WireManager) PlayerSegment() int {
	return m.plane.GetPositionSegment(m.jumper.position)
}

func (m *WireManager) Jumper() *Jumper        { return &m.jumper }
func (m *WireManager) Stage() int             { return m.stage }
func (m *WireManager) Plane() Plane           { return m.plane }
func (m *WireManager) ActiveWires() []*Wire   { return m.wires.Active() }
func (m *WireManager) ActiveSparks() []*Spark { return m.sparks.Active() }
func (m *WireManager) WireCount() int         { return m.wires.ActiveCount() }
