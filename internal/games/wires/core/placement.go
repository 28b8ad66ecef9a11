package core

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// spawnAttempts is how many candidates FindSpawnPosition tries.
	spawnAttempts = 5
	// maxCircleSamples caps rejection sampling in GetRandomCircleOffset.
	maxCircleSamples = 64
	// cutoffEpsilon: both cutoffs at or below this leave no usable arc.
	cutoffEpsilon = 0.01
)

// SpawnArea describes where a spawn may be placed relative to the player.
type SpawnArea struct {
	InnerRadius   float64
	OuterRadius   float64
	BottomCutoff  float64
	TopCutoff     float64
	SegmentOffset int
	SegmentRange  int
}

// SpaceOccupant reports positions that new wires must keep clear of.
type SpaceOccupant interface {
	OccupiedPositions(dst []r3.Vec) []r3.Vec
}

// GetRandomCircleOffset samples a lateral offset in the annulus [min, max]
// around the wire axis. A direction is accepted when
// dot(dir, down) <= bottomCutoff and dot(dir, up) <= topCutoff. When both
// cutoffs are near zero, or sampling exceeds its cap, the fixed offset
// Right*min is returned.
func GetRandomCircleOffset(rng *rand.Rand, plane Plane, min, max, bottomCutoff, topCutoff float64) r3.Vec {
	if max < min {
		min, max = max, min
	}
	fallback := r3.Scale(min, plane.Right)
	if bottomCutoff <= cutoffEpsilon && topCutoff <= cutoffEpsilon {
		return fallback
	}
	down := r3.Scale(-1, plane.Up)
	for i := 0; i < maxCircleSamples; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dir := r3.Add(r3.Scale(math.Cos(angle), plane.Right), r3.Scale(math.Sin(angle), plane.Up))
		if r3.Dot(dir, down) > bottomCutoff || r3.Dot(dir, plane.Up) > topCutoff {
			continue
		}
		return r3.Scale(min+rng.Float64()*(max-min), dir)
	}
	return fallback
}

// FindSpawnPosition samples up to five candidates around the player's lane,
// spawnOffset +/- spawnRange segments ahead, and returns the first one with
// space for a run of the given length.
func (m *WireManager) FindSpawnPosition(area SpawnArea, segments int, ignoreZ bool) (r3.Vec, bool) {
	center := m.plane.Lateral(m.jumper.position)
	playerSeg := m.PlayerSegment()
	for i := 0; i < spawnAttempts; i++ {
		offset := GetRandomCircleOffset(m.rng, m.plane, area.InnerRadius, area.OuterRadius, area.BottomCutoff, area.TopCutoff)
		seg := playerSeg + area.SegmentOffset
		if area.SegmentRange > 0 {
			seg += m.rng.Intn(2*area.SegmentRange+1) - area.SegmentRange
		}
		if seg < 0 {
			seg = 0
		}
		pos := m.plane.AtSegment(r3.Add(center, offset), seg)
		if m.HasSpaceAtLocation(pos, segments, ignoreZ) {
			return pos, true
		}
	}
	return r3.Vec{}, false
}

// HasSpaceAtLocation reports whether a run of segments starting at pos keeps
// wireSpace clear of every active wire and occupied position. A wire only
// conflicts when the segment ranges overlap, unless ignoreZ is set.
func (m *WireManager) HasSpaceAtLocation(pos r3.Vec, segments int, ignoreZ bool) bool {
	space2 := m.cfg.Wires.WireSpace * m.cfg.Wires.WireSpace
	startSeg := m.plane.GetPositionSegment(pos)
	endSeg := startSeg + segments

	for _, w := range m.wires.Active() {
		if m.plane.LateralDist2(pos, w.start) >= space2 {
			continue
		}
		if ignoreZ {
			return false
		}
		if startSeg <= m.EndSegment(w) && endSeg >= m.StartSegment(w) {
			return false
		}
	}

	if m.occupant == nil {
		return true
	}
	m.posScratch = m.occupant.OccupiedPositions(m.posScratch[:0])
	for _, p := range m.posScratch {
		if ignoreZ {
			if r3.Norm2(r3.Sub(pos, p)) < space2 {
				return false
			}
			continue
		}
		if m.plane.LateralDist2(pos, p) >= space2 {
			continue
		}
		if seg := m.plane.GetPositionSegment(p); seg >= startSeg && seg <= endSeg {
			return false
		}
	}
	return true
}

// StartSegment is the segment containing the wire's start.
func (m *WireManager) StartSegment(w *Wire) int {
	return m.plane.GetPositionSegment(w.start)
}

// EndSegment is the segment containing the wire's end.
func (m *WireManager) EndSegment(w *Wire) int {
	return m.plane.GetPositionSegment(w.End())
}

func randRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

func randIntRange(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
