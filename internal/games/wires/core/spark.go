package core

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// SparkState is the switching state of a spark.
type SparkState int

const (
	SparkInactive  SparkState = iota // in the pool
	SparkSwitching                   // on/off cycle running
	SparkFrozen                      // permanently eligible, no switching
	SparkOccupied                    // jumper attached, ineligible
	SparkVacated                     // jumper left, ineligible until re-armed
)

// String returns a human-readable name for the state.
func (s SparkState) String() string {
	switch s {
	case SparkInactive:
		return "inactive"
	case SparkSwitching:
		return "switching"
	case SparkFrozen:
		return "frozen"
	case SparkOccupied:
		return "occupied"
	case SparkVacated:
		return "vacated"
	default:
		return "unknown"
	}
}

// Spark is the jump target riding a wire. Eligibility (canJumpTo) flips
// only at interval boundaries; the blend window is presentation only.
type Spark struct {
	id        int
	state     SparkState
	canJumpTo bool

	on          bool
	onInterval  float64
	offInterval float64
	timer       float64 // seconds until the next flip
	blend       float64 // seconds since the last flip
	blendWindow float64
	frozen      bool // explicitly frozen by game logic

	wire     *Wire
	jumper   *Jumper
	position r3.Vec

	interact func(*Spark, *Jumper)
}

func newSpark(id int, blendWindow float64, interact func(*Spark, *Jumper)) *Spark {
	return &Spark{id: id, blendWindow: blendWindow, interact: interact}
}

// ActivateSpark binds the spark to a wire. With both intervals > 0 the
// on/off cycle starts at a random phase; otherwise the spark is frozen on.
func (s *Spark) ActivateSpark(w *Wire, onInterval, offInterval float64, rng *rand.Rand) {
	s.wire = w
	s.jumper = nil
	s.frozen = false
	if w != nil {
		s.position = w.Start()
	}
	if !s.arm(onInterval, offInterval, rng) {
		s.state = SparkFrozen
		s.canJumpTo = true
		s.on = true
		s.blend = s.blendWindow
	}
}

// arm starts the switching cycle. Returns false if either interval is not positive.
func (s *Spark) arm(onInterval, offInterval float64, rng *rand.Rand) bool {
	s.onInterval = onInterval
	s.offInterval = offInterval
	if onInterval <= 0 || offInterval <= 0 {
		return false
	}
	s.state = SparkSwitching
	s.on = rng.Float64() < onInterval/(onInterval+offInterval)
	s.timer = rng.Float64() * s.interval()
	if s.timer <= 0 {
		s.timer = s.interval()
	}
	s.canJumpTo = s.on
	s.blend = s.blendWindow
	return true
}

func (s *Spark) interval() float64 {
	if s.on {
		return s.onInterval
	}
	return s.offInterval
}

// Tick advances the switching cycle.
func (s *Spark) Tick(dt float64) {
	if s.state != SparkSwitching {
		return
	}
	s.blend += dt
	s.timer -= dt
	for s.timer <= 0 {
		s.on = !s.on
		s.blend = -s.timer
		s.timer += s.interval()
	}
	s.canJumpTo = s.on
}

// AttachJumper occupies the spark. It fails if the spark is not eligible
// or already occupied.
func (s *Spark) AttachJumper(j *Jumper) bool {
	if j == nil || !s.canJumpTo || s.jumper != nil || s.state == SparkInactive {
		return false
	}
	s.jumper = j
	s.state = SparkOccupied
	s.canJumpTo = false
	return true
}

// DetachJumper clears the occupant. Switching does not resume; the caller
// must re-arm with StartSwitching or FreezeSwitching.
func (s *Spark) DetachJumper() {
	if s.jumper == nil {
		return
	}
	s.jumper = nil
	s.state = SparkVacated
	s.canJumpTo = false
}

// FreezeSwitching stops the cycle and makes the spark permanently eligible.
// An occupied spark stays ineligible until its jumper leaves.
func (s *Spark) FreezeSwitching() {
	if s.state == SparkInactive {
		return
	}
	s.frozen = true
	s.on = true
	s.blend = s.blendWindow
	if s.jumper != nil {
		return
	}
	s.state = SparkFrozen
	s.canJumpTo = true
}

// StartSwitching re-arms the on/off cycle. It clears an explicit freeze.
func (s *Spark) StartSwitching(onInterval, offInterval float64, rng *rand.Rand) bool {
	if s.state == SparkInactive || s.jumper != nil {
		return false
	}
	if !s.arm(onInterval, offInterval, rng) {
		return false
	}
	s.frozen = false
	return true
}

// makeEligible puts a vacated spark back on without marking it frozen.
func (s *Spark) makeEligible() {
	if s.state == SparkInactive || s.jumper != nil {
		return
	}
	s.state = SparkFrozen
	s.on = true
	s.canJumpTo = true
}

// Deactivate returns the spark to its pooled state.
func (s *Spark) Deactivate() {
	s.state = SparkInactive
	s.canJumpTo = false
	s.on = false
	s.frozen = false
	s.jumper = nil
	s.wire = nil
}

func (s *Spark) ID() int              { return s.id }
func (s *Spark) State() SparkState    { return s.state }
func (s *Spark) CanJumpTo() bool      { return s.canJumpTo }
func (s *Spark) Jumper() *Jumper      { return s.jumper }
func (s *Spark) Wire() *Wire          { return s.wire }
func (s *Spark) Position() r3.Vec     { return s.position }
func (s *Spark) Active() bool         { return s.state != SparkInactive }
func (s *Spark) Frozen() bool         { return s.frozen }
func (s *Spark) OnInterval() float64  { return s.onInterval }
func (s *Spark) OffInterval() float64 { return s.offInterval }

// IsSwitching reports whether the on/off cycle is running.
func (s *Spark) IsSwitching() bool { return s.state == SparkSwitching }

// BlendT is the presentation cross-fade progress since the last flip, in
// [0, 1]. It never affects eligibility.
func (s *Spark) BlendT() float64 {
	if s.blendWindow <= 0 {
		return 1
	}
	return clamp01(s.blend / s.blendWindow)
}

// CanInteract implements Interactable.
func (s *Spark) CanInteract(j *Jumper) bool {
	return s.canJumpTo && s.jumper == nil && j != nil && j.spark != s
}

// OnInteract implements Interactable: a jump request.
func (s *Spark) OnInteract(j *Jumper) {
	if s.interact != nil {
		s.interact(s, j)
	}
}
