// Package telemetry records Wires runs: periodic state samples and the event
// stream, written as CSV and summarized with gonum/stat.
package telemetry

import (
	"fmt"

	"github.com/vovakirdan/wires/internal/events"
	"github.com/vovakirdan/wires/internal/games/wires/core"
)

// Sample is the run state at one point in simulation time.
type Sample struct {
	Tick          int     `csv:"tick"`
	Time          float64 `csv:"time"`
	Score         float64 `csv:"score"`
	Stage         int     `csv:"stage"`
	Multiplier    int     `csv:"multiplier"`
	Lives         int     `csv:"lives"`
	PlayerSegment int     `csv:"segment"`
	ActiveWires   int     `csv:"wires"`
	ActivePackets int     `csv:"packets"`
	Drifting      bool    `csv:"drifting"`
	Boosting      bool    `csv:"boosting"`
}

// EventRecord is one published simulation event.
type EventRecord struct {
	Tick   int     `csv:"tick"`
	Time   float64 `csv:"time"`
	Type   string  `csv:"type"`
	Stage  int     `csv:"stage"`
	Detail string  `csv:"detail"`
}

// flushEvery bounds how many rows are buffered before writing to Output.
const flushEvery = 256

// Recorder samples a simulation at a fixed simulation-time interval and
// logs every event. Call Observe after each Tick.
type Recorder struct {
	sim      *core.Simulation
	out      *Output
	interval float64
	next     float64
	listener events.ListenerID

	samples []Sample
	events  []EventRecord
	// rows not yet written to out
	pendingSamples int
	pendingEvents  int
	err            error
}

// NewRecorder subscribes to sim. out may be nil to keep rows in memory only.
// interval <= 0 samples every tick.
func NewRecorder(sim *core.Simulation, out *Output, interval float64) *Recorder {
	r := &Recorder{sim: sim, out: out, interval: interval}
	r.listener = sim.SubscribeAll(r.onEvent)
	return r
}

func (r *Recorder) onEvent(ev core.Event) {
	snap := r.sim.Snapshot()
	r.events = append(r.events, EventRecord{
		Tick:   snap.Tick,
		Time:   snap.Time,
		Type:   ev.Type.String(),
		Stage:  snap.Stage,
		Detail: detail(ev),
	})
	r.pendingEvents++
}

func detail(ev core.Event) string {
	switch ev.Type {
	case events.JumpStarted:
		if ev.Forced {
			return "forced"
		}
	case events.DriftingToggled:
		if ev.Drifting {
			return "on"
		}
		return "off"
	case events.MultiplierChanged:
		return fmt.Sprintf("x%d", ev.Multiplier)
	case events.LivesChanged:
		return fmt.Sprintf("lives=%d", ev.Lives)
	case events.PacketDespawned:
		if ev.Collected {
			return "collected"
		}
		return "expired"
	case events.BoostChanged:
		if ev.Boosting {
			return "on"
		}
		return "off"
	case events.WireSpawned, events.WireRecycled, events.WireMissed:
		if ev.Wire != nil {
			return fmt.Sprintf("wire=%d", ev.Wire.ID())
		}
	case events.SpawnFailed, events.GameOver:
		return ev.Reason
	}
	return ""
}

// Observe records a sample when the sampling interval has elapsed.
func (r *Recorder) Observe() {
	snap := r.sim.Snapshot()
	if snap.Tick == 0 || snap.Time < r.next {
		return
	}
	r.next = snap.Time + r.interval
	r.samples = append(r.samples, Sample{
		Tick:          snap.Tick,
		Time:          snap.Time,
		Score:         snap.Score,
		Stage:         snap.Stage,
		Multiplier:    snap.Multiplier,
		Lives:         snap.Lives,
		PlayerSegment: snap.PlayerSegment,
		ActiveWires:   snap.ActiveWires,
		ActivePackets: snap.ActivePackets,
		Drifting:      snap.Drifting,
		Boosting:      snap.Boosting,
	})
	r.pendingSamples++

	if r.pendingSamples+r.pendingEvents >= flushEvery {
		r.Flush()
	}
}

// Flush writes buffered rows to the output. The first error is kept and
// later flushes become no-ops.
func (r *Recorder) Flush() error {
	if r.out == nil || r.err != nil {
		return r.err
	}
	if err := r.out.WriteSamples(r.samples[len(r.samples)-r.pendingSamples:]); err != nil {
		r.err = err
		return err
	}
	r.pendingSamples = 0
	if err := r.out.WriteEvents(r.events[len(r.events)-r.pendingEvents:]); err != nil {
		r.err = err
		return err
	}
	r.pendingEvents = 0
	return nil
}

// Close flushes and stops listening to the simulation.
func (r *Recorder) Close() error {
	r.sim.Unsubscribe(r.listener)
	return r.Flush()
}

// Samples returns every recorded sample.
func (r *Recorder) Samples() []Sample { return r.samples }

// Events returns every recorded event.
func (r *Recorder) Events() []EventRecord { return r.events }

// Err returns the first write error, if any.
func (r *Recorder) Err() error { return r.err }
