// Package core implements the Wires simulation: pooled wires and sparks
// generated around the player, the jump/drift state machine and the
// scoring multiplier that feeds back into generation.
package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Plane describes the wire plane: the axis wires run along, the vertical
// axis used by angular cutoffs, and the segment quantization of distance
// along the wire axis.
type Plane struct {
	Origin        r3.Vec
	Forward       r3.Vec
	Up            r3.Vec
	Right         r3.Vec
	SegmentLength float64
}

// NewPlane normalizes the axes and derives Right. A zero or parallel axis
// falls back to +Z forward / +Y up. Segment length <= 0 falls back to 1.
func NewPlane(origin, forward, up r3.Vec, segmentLength float64) Plane {
	if r3.Norm2(forward) == 0 {
		forward = r3.Vec{Z: 1}
	}
	forward = r3.Unit(forward)
	if r3.Norm2(up) == 0 || r3.Norm2(r3.Cross(up, forward)) == 0 {
		up = r3.Vec{Y: 1}
		if r3.Norm2(r3.Cross(up, forward)) == 0 {
			up = r3.Vec{X: 1}
		}
	}
	right := r3.Unit(r3.Cross(r3.Unit(up), forward))
	// Re-orthogonalize up so the lateral basis is exact.
	up = r3.Cross(forward, right)

	if segmentLength <= 0 {
		segmentLength = 1
	}
	return Plane{
		Origin:        origin,
		Forward:       forward,
		Up:            up,
		Right:         right,
		SegmentLength: segmentLength,
	}
}

// Along returns the signed distance of pos from the origin along the wire axis.
func (p Plane) Along(pos r3.Vec) float64 {
	return r3.Dot(r3.Sub(pos, p.Origin), p.Forward)
}

// GetPositionSegment returns floor(|along| / segmentLength), never negative.
func (p Plane) GetPositionSegment(pos r3.Vec) int {
	d := math.Abs(p.Along(pos))
	seg := int(math.Floor(d / p.SegmentLength))
	if seg < 0 {
		return 0
	}
	return seg
}

// Lateral returns the component of pos perpendicular to the wire axis,
// relative to the origin.
func (p Plane) Lateral(pos r3.Vec) r3.Vec {
	rel := r3.Sub(pos, p.Origin)
	return r3.Sub(rel, r3.Scale(r3.Dot(rel, p.Forward), p.Forward))
}

// LateralDist2 is the squared distance between a and b ignoring the wire axis.
func (p Plane) LateralDist2(a, b r3.Vec) float64 {
	d := r3.Sub(a, b)
	return r3.Norm2(r3.Sub(d, r3.Scale(r3.Dot(d, p.Forward), p.Forward)))
}

// LateralCoords returns (right, up) coordinates of pos relative to the origin.
func (p Plane) LateralCoords(pos r3.Vec) (float64, float64) {
	rel := r3.Sub(pos, p.Origin)
	return r3.Dot(rel, p.Right), r3.Dot(rel, p.Up)
}

// AtSegment places a lateral position at the start of a segment.
func (p Plane) AtSegment(lateral r3.Vec, segment int) r3.Vec {
	return r3.Add(p.Origin, r3.Add(lateral, r3.Scale(float64(segment)*p.SegmentLength, p.Forward)))
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
