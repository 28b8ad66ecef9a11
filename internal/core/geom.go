// Package core provides fundamental types and utilities for the platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an axis-aligned cell rectangle.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: Max(r.W-2*n, 0), H: Max(r.H-2*n, 0)}
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Viewport maps continuous world coordinates onto a cell rectangle. The
// world origin sits at the rectangle center and +Y points up. Terminal cells
// are about twice as tall as they are wide, so X is stretched by Aspect.
type Viewport struct {
	Area   Rect
	Scale  float64 // cells per world unit, vertically
	Aspect float64 // horizontal stretch, usually 2
}

// Project converts world (x, y) to a cell. ok is false when the cell falls
// outside the viewport area.
func (v Viewport) Project(x, y float64) (cx, cy int, ok bool) {
	ox, oy := v.Area.Center()
	aspect := v.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	cx = ox + int(math.Round(x*v.Scale*aspect))
	cy = oy - int(math.Round(y*v.Scale))
	return cx, cy, v.Area.Contains(cx, cy)
}

// Fit picks the largest scale that keeps a world radius inside the area.
func (v Viewport) Fit(radius float64) Viewport {
	if radius <= 0 {
		return v
	}
	aspect := v.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	sx := float64(v.Area.W/2-1) / (radius * aspect)
	sy := float64(v.Area.H/2-1) / radius
	v.Scale = math.Max(math.Min(sx, sy), 0)
	return v
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
