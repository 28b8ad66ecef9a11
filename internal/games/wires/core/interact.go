package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Interactable is implemented by anything the player can trace and act on.
type Interactable interface {
	CanInteract(j *Jumper) bool
	OnInteract(j *Jumper)
}

// Ray is a sphere cast: a ray swept with Radius, limited to MaxDistance
// (0 means unlimited). Ignore is skipped by the cast.
type Ray struct {
	Origin      r3.Vec
	Dir         r3.Vec
	Radius      float64
	MaxDistance float64
	Ignore      Interactable
}

// Hit is the nearest blocking object found by a cast.
type Hit struct {
	Point    r3.Vec
	Distance float64
	Target   Interactable
}

// Raycaster is the spatial query capability supplied by the environment.
type Raycaster interface {
	Cast(ray Ray) (Hit, bool)
}

// Sphere radii used by SphereCaster.
const (
	SparkRadius = 0.75
)

// SphereCaster is the default Raycaster. It treats every active spark and
// every floating packet as a sphere.
type SphereCaster struct {
	wires  *WireManager
	score  *ScoreManager
	packet float64
}

// NewSphereCaster builds a caster over the objects owned by the managers.
// Either manager may be nil.
func NewSphereCaster(wires *WireManager, score *ScoreManager, packetRadius float64) *SphereCaster {
	return &SphereCaster{wires: wires, score: score, packet: packetRadius}
}

// Cast returns the nearest sphere hit along the ray.
func (c *SphereCaster) Cast(ray Ray) (Hit, bool) {
	if r3.Norm2(ray.Dir) == 0 {
		return Hit{}, false
	}
	dir := r3.Unit(ray.Dir)

	var (
		best  Hit
		found bool
	)
	consider := func(center r3.Vec, radius float64, target Interactable) {
		if target == ray.Ignore {
			return
		}
		t, ok := sphereHit(ray.Origin, dir, center, radius+ray.Radius)
		if !ok {
			return
		}
		if ray.MaxDistance > 0 && t > ray.MaxDistance {
			return
		}
		if found && t >= best.Distance {
			return
		}
		best = Hit{Point: r3.Add(ray.Origin, r3.Scale(t, dir)), Distance: t, Target: target}
		found = true
	}

	if c.wires != nil {
		for _, s := range c.wires.sparks.Active() {
			consider(s.position, SparkRadius, s)
		}
	}
	if c.score != nil {
		for _, p := range c.score.packets.Active() {
			if p.state == PacketFloating {
				consider(p.position, c.packet, p)
			}
		}
	}
	return best, found
}

// sphereHit returns the distance along a unit direction to the first
// intersection with a sphere. A ray starting inside the sphere hits at 0.
func sphereHit(origin, dir, center r3.Vec, radius float64) (float64, bool) {
	oc := r3.Sub(center, origin)
	along := r3.Dot(oc, dir)
	d2 := r3.Norm2(oc) - along*along
	r2 := radius * radius
	if d2 > r2 {
		return 0, false
	}
	if r3.Norm2(oc) <= r2 {
		return 0, true
	}
	if along < 0 {
		return 0, false
	}
	return along - math.Sqrt(r2-d2), true
}
