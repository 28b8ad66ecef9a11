package core

import "gonum.org/v1/gonum/spatial/r3"

// Jumper is the player: it rides one spark at a time, transitions between
// sparks over jumpTime seconds, and drifts freely after a miss.
type Jumper struct {
	position r3.Vec
	spark    *Spark
	wire     *Wire

	jumping      bool
	jumpFrom     r3.Vec
	jumpProgress float64
	jumpTime     float64

	drifting  bool
	driftTime float64
}

func (j *Jumper) Position() r3.Vec      { return j.position }
func (j *Jumper) Spark() *Spark         { return j.spark }
func (j *Jumper) Wire() *Wire           { return j.wire }
func (j *Jumper) IsJumping() bool       { return j.jumping }
func (j *Jumper) JumpProgress() float64 { return j.jumpProgress }
func (j *Jumper) JumpTime() float64     { return j.jumpTime }
func (j *Jumper) IsDrifting() bool      { return j.drifting }
func (j *Jumper) DriftTime() float64    { return j.driftTime }

// WireProgress is the progress of the ridden spark along its wire.
func (j *Jumper) WireProgress() float64 {
	if j.wire == nil {
		return 0
	}
	return j.wire.Progress()
}

// WireDistanceTravelled is how far the ridden spark has moved along its wire.
func (j *Jumper) WireDistanceTravelled() float64 {
	if j.wire == nil {
		return 0
	}
	return j.wire.DistanceTravelled()
}

func (j *Jumper) reset(pos r3.Vec) {
	*j = Jumper{position: pos}
}
