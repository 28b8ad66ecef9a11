package core

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vovakirdan/wires/internal/sched"
)

// Wire is a finite lane holding at most one spark. Wires are pooled and
// never destroyed; ActivateWire reinitializes all transient state.
type Wire struct {
	id      int
	active  bool
	forward r3.Vec

	start         r3.Vec
	segments      int
	segmentLength float64
	length        float64
	factory       *Theme

	spark          *Spark
	distance       float64
	progress       float64
	jumperAttached bool
	defective      bool

	sparkTask sched.TaskID // pending delayed spark spawn
}

func newWire(id int, forward r3.Vec) *Wire {
	return &Wire{id: id, forward: forward}
}

// ActivateWire resets the wire at start with the given length.
func (w *Wire) ActivateWire(start r3.Vec, segments int, segmentLength float64, factory *Theme) {
	if segments < 1 {
		segments = 1
	}
	w.active = true
	w.start = start
	w.segments = segments
	w.segmentLength = segmentLength
	w.length = float64(segments) * segmentLength
	w.factory = factory
	w.spark = nil
	w.distance = 0
	w.progress = 0
	w.jumperAttached = false
	w.defective = false
	w.sparkTask = 0
}

// AttachSpark places a spark at the start of the wire.
func (w *Wire) AttachSpark(s *Spark) {
	w.spark = s
	w.distance = 0
	w.progress = 0
	if s != nil {
		s.position = w.start
	}
}

// TickWire advances the spark by step and returns its progress in [0, 1].
// A wire without a spark reports 0. A wire without a factory does not move.
// A jumper riding the spark (and not mid-jump) is carried with it.
func (w *Wire) TickWire(step float64) float64 {
	if !w.active || w.factory == nil {
		return w.progress
	}
	if w.spark == nil {
		return 0
	}

	w.distance += step
	if w.distance > w.length {
		w.distance = w.length
	}
	if w.length > 0 {
		w.progress = clamp01(w.distance / w.length)
	} else {
		w.progress = 1
	}

	w.spark.position = r3.Add(w.start, r3.Scale(w.distance, w.forward))
	if j := w.spark.jumper; j != nil && w.jumperAttached && !j.jumping {
		j.position = w.spark.position
	}
	return w.progress
}

// Extend lengthens the wire by whole segments.
func (w *Wire) Extend(segments int) {
	if !w.active || segments <= 0 {
		return
	}
	w.segments += segments
	w.length = float64(w.segments) * w.segmentLength
	if w.length > 0 {
		w.progress = clamp01(w.distance / w.length)
	}
}

// DeactivateWire detaches and returns the spark, and marks the wire inactive.
func (w *Wire) DeactivateWire() *Spark {
	s := w.spark
	w.spark = nil
	w.active = false
	w.jumperAttached = false
	w.sparkTask = 0
	return s
}

func (w *Wire) ID() int                    { return w.id }
func (w *Wire) Active() bool               { return w.active }
func (w *Wire) Start() r3.Vec              { return w.start }
func (w *Wire) Segments() int              { return w.segments }
func (w *Wire) Length() float64            { return w.length }
func (w *Wire) Factory() *Theme            { return w.factory }
func (w *Wire) Spark() *Spark              { return w.spark }
func (w *Wire) Progress() float64          { return w.progress }
func (w *Wire) DistanceTravelled() float64 { return w.distance }
func (w *Wire) JumperAttached() bool       { return w.jumperAttached }
func (w *Wire) Defective() bool            { return w.defective }
func (w *Wire) HasPendingSpark() bool      { return w.sparkTask != 0 }
func (w *Wire) End() r3.Vec                { return r3.Add(w.start, r3.Scale(w.length, w.forward)) }
func (w *Wire) Exhausted() bool            { return w.active && w.spark != nil && w.progress >= 1 }
