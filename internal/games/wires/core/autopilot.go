package core

import "gonum.org/v1/gonum/spatial/r3"

// Autopilot plays the game from public state only. It is deterministic:
// the same seed and tick sequence always produces the same run.
type Autopilot struct {
	// JumpAt is the ride progress after which the bot looks for a new spark.
	JumpAt float64
	// Reach is how far ahead packets are traced for.
	Reach float64
}

// NewAutopilot returns a bot with default thresholds.
func NewAutopilot() *Autopilot {
	return &Autopilot{JumpAt: 0.6, Reach: 14}
}

// Step issues at most one jump and traces toward nearby packets.
func (a *Autopilot) Step(sim *Simulation) {
	if sim == nil || sim.Over() || sim.Paused() {
		return
	}
	j := sim.Jumper()
	if j.IsJumping() {
		return
	}
	wires := sim.Wires()

	if j.IsDrifting() || j.Spark() == nil || j.WireProgress() >= a.JumpAt {
		if w := wires.BestWire(); w != nil && w.Spark() != nil {
			if wires.JumpToSpark(w.Spark(), false) {
				return
			}
		}
	}

	reach2 := a.Reach * a.Reach
	for _, p := range sim.Score().ActivePackets() {
		if p.State() != PacketFloating {
			continue
		}
		dir := r3.Sub(p.Position(), j.Position())
		if d2 := r3.Norm2(dir); d2 == 0 || d2 > reach2 {
			continue
		}
		if _, ok := wires.TraceWorld(Ray{Origin: j.Position(), Dir: dir, Radius: 0.25, MaxDistance: a.Reach}); ok {
			return
		}
	}
}
