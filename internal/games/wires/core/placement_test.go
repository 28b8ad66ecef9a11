package core

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func testPlane() Plane {
	return NewPlane(r3.Vec{}, r3.Vec{Z: 1}, r3.Vec{Y: 1}, 2)
}

func TestCircleOffsetDegenerateCutoffs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	plane := testPlane()

	got := GetRandomCircleOffset(rng, plane, 5, 10, 0, 0)
	want := r3.Scale(5, plane.Right)
	if got != want {
		t.Errorf("GetRandomCircleOffset(5, 10, 0, 0) = %v, want %v", got, want)
	}
}

func TestCircleOffsetUnsatisfiableCutoffsTerminate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	plane := testPlane()

	// dot(dir, down) <= -0.5 and dot(dir, up) <= -0.5 cannot both hold.
	got := GetRandomCircleOffset(rng, plane, 5, 10, -0.5, -0.5)
	if got != r3.Scale(5, plane.Right) {
		t.Errorf("expected fallback offset, got %v", got)
	}
}

func TestCircleOffsetRespectsAnnulusAndCutoffs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	plane := testPlane()
	down := r3.Scale(-1, plane.Up)

	for i := 0; i < 500; i++ {
		off := GetRandomCircleOffset(rng, plane, 3, 6, 0.3, 0.9)
		r := r3.Norm(off)
		if r < 3-1e-9 || r > 6+1e-9 {
			t.Fatalf("radius %v outside [3, 6]", r)
		}
		dir := r3.Unit(off)
		if r3.Dot(dir, down) > 0.3+1e-9 || r3.Dot(dir, plane.Up) > 0.9+1e-9 {
			t.Fatalf("direction %v violates cutoffs", dir)
		}
		if math.Abs(r3.Dot(off, plane.Forward)) > 1e-9 {
			t.Fatalf("offset %v has a forward component", off)
		}
	}
}

func TestPositionSegment(t *testing.T) {
	plane := testPlane()

	tests := []struct {
		z    float64
		want int
	}{
		{0, 0},
		{1.9, 0},
		{2, 1},
		{7.5, 3},
		{-1, 0},
		{-2.5, 1},
		{-7.5, 3},
	}
	for _, tt := range tests {
		if got := plane.GetPositionSegment(r3.Vec{X: 3, Z: tt.z}); got != tt.want {
			t.Errorf("GetPositionSegment(z=%v) = %d, want %d", tt.z, got, tt.want)
		}
	}

	prev := 0
	for d := 0.0; d < 100; d += 0.37 {
		for _, sign := range []float64{1, -1} {
			seg := plane.GetPositionSegment(r3.Vec{Z: sign * d})
			if seg < 0 {
				t.Fatalf("negative segment at %v", sign*d)
			}
			if seg < prev {
				t.Fatalf("segment decreased at |z|=%v: %d < %d", d, seg, prev)
			}
		}
		prev = plane.GetPositionSegment(r3.Vec{Z: d})
	}
}

func TestHasSpaceAgainstWires(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	m := sim.Wires()
	p := healthyProps(m)

	// Wire spanning segments [10, 15] on the axis.
	m.placeWire(m.plane.AtSegment(r3.Vec{}, 10), 5, p, true)

	tests := []struct {
		name     string
		pos      r3.Vec
		segments int
		ignoreZ  bool
		want     bool
	}{
		{"same lane overlapping", m.plane.AtSegment(r3.Vec{X: 1}, 10), 2, false, false},
		{"same lane after end", m.plane.AtSegment(r3.Vec{X: 1}, 20), 2, false, true},
		{"same lane before start", m.plane.AtSegment(r3.Vec{X: 1}, 5), 3, false, true},
		{"same lane ignoring z", m.plane.AtSegment(r3.Vec{X: 1}, 5), 3, true, false},
		{"far lane", m.plane.AtSegment(r3.Vec{X: 5}, 10), 5, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.HasSpaceAtLocation(tt.pos, tt.segments, tt.ignoreZ); got != tt.want {
				t.Errorf("HasSpaceAtLocation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasSpaceAgainstPackets(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 1)
	m := sim.Wires()
	sim.Score().spawnPacket(m.plane.AtSegment(r3.Vec{}, 30), sim.Config().PacketStage(0))

	if m.HasSpaceAtLocation(m.plane.AtSegment(r3.Vec{X: 1}, 30), 2, false) {
		t.Error("candidate over a packet should be rejected")
	}
	if m.HasSpaceAtLocation(m.plane.AtSegment(r3.Vec{X: 1}, 30), 2, true) {
		t.Error("candidate next to a packet should be rejected when ignoring z")
	}
	if !m.HasSpaceAtLocation(m.plane.AtSegment(r3.Vec{X: 1}, 40), 2, false) {
		t.Error("candidate past the packet should be accepted")
	}
	if !m.HasSpaceAtLocation(m.plane.AtSegment(r3.Vec{X: 1}, 40), 2, true) {
		t.Error("distant candidate should be accepted when ignoring z")
	}
}

func TestFindSpawnPositionAhead(t *testing.T) {
	sim := newTestSim(t, quietConfig(), 3)
	m := sim.Wires()
	area := SpawnArea{InnerRadius: 3, OuterRadius: 6, BottomCutoff: 0.3, TopCutoff: 0.9, SegmentOffset: 10, SegmentRange: 2}

	pos, ok := m.FindSpawnPosition(area, 5, false)
	if !ok {
		t.Fatal("FindSpawnPosition failed on an empty world")
	}
	seg := m.plane.GetPositionSegment(pos)
	if seg < 8 || seg > 12 {
		t.Errorf("spawn segment %d outside [8, 12]", seg)
	}
	if d := math.Sqrt(m.plane.LateralDist2(pos, r3.Vec{})); d < 3-1e-9 || d > 6+1e-9 {
		t.Errorf("lateral distance %v outside annulus", d)
	}
}
