// Package core provides the pure building blocks shared by the game and the
// terminal front end: box collision, input frames, the screen buffer and
// runtime configuration. It has no Bubble Tea dependency so game logic stays
// deterministic and testable.
package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Side reports which face of a collider a probe box touched.
// Sides are relative to the collider: SideLeft means the probe came in
// through the collider's left face. World space is y-up.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
	SideInside // Probe fully contained on both axes; no reflection applies
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideNone:
		return "None"
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	case SideTop:
		return "Top"
	case SideBottom:
		return "Bottom"
	case SideInside:
		return "Inside"
	default:
		return "Unknown"
	}
}

// TestOverlap tests probe box a against collider box b. Boxes are given by
// center and full extent. It returns false when the boxes do not overlap;
// touching edges do not count as overlap.
//
// For each axis the probe is classified as entering from the low face, the
// high face, or neither (Inside, with infinite depth). The axis with the
// shallower penetration decides the reported side; ties go to x.
func TestOverlap(aPos, aSize, bPos, bSize mgl32.Vec2) (Side, bool) {
	aMin, aMax := bounds(aPos, aSize)
	bMin, bMax := bounds(bPos, bSize)

	if aMin.X() >= bMax.X() || aMax.X() <= bMin.X() ||
		aMin.Y() >= bMax.Y() || aMax.Y() <= bMin.Y() {
		return SideNone, false
	}

	xSide, xDepth := SideInside, math.Inf(1)
	switch {
	case aMin.X() < bMin.X() && aMax.X() > bMin.X() && aMax.X() < bMax.X():
		xSide, xDepth = SideLeft, float64(bMin.X()-aMax.X())
	case aMin.X() > bMin.X() && aMin.X() < bMax.X() && aMax.X() > bMax.X():
		xSide, xDepth = SideRight, float64(aMin.X()-bMax.X())
	}

	ySide, yDepth := SideInside, math.Inf(1)
	switch {
	case aMin.Y() < bMin.Y() && aMax.Y() > bMin.Y() && aMax.Y() < bMax.Y():
		ySide, yDepth = SideBottom, float64(bMin.Y()-aMax.Y())
	case aMin.Y() > bMin.Y() && aMin.Y() < bMax.Y() && aMax.Y() > bMax.Y():
		ySide, yDepth = SideTop, float64(aMin.Y()-bMax.Y())
	}

	if math.Abs(yDepth) < math.Abs(xDepth) {
		return ySide, true
	}
	return xSide, true
}

func bounds(center, size mgl32.Vec2) (mgl32.Vec2, mgl32.Vec2) {
	half := size.Mul(0.5)
	return center.Sub(half), center.Add(half)
}

// Reflect flips the velocity components that point into the collider.
// A component moving away from the touched face is left alone, so a probe
// still inside a collider on the next tick is not flipped back.
func Reflect(v mgl32.Vec2, side Side) mgl32.Vec2 {
	switch side {
	case SideLeft:
		if v.X() > 0 {
			v[0] = -v[0]
		}
	case SideRight:
		if v.X() < 0 {
			v[0] = -v[0]
		}
	case SideTop:
		if v.Y() < 0 {
			v[1] = -v[1]
		}
	case SideBottom:
		if v.Y() > 0 {
			v[1] = -v[1]
		}
	}
	return v
}

// AngleFromUp returns the signed angle in radians between v and +Y.
// Positive angles lean towards +X.
func AngleFromUp(v mgl32.Vec2) float64 {
	return math.Atan2(float64(v.X()), float64(v.Y()))
}

// Direction returns v scaled to unit length, or the zero vector for a zero v.
func Direction(v mgl32.Vec2) mgl32.Vec2 {
	if v.Len() == 0 {
		return mgl32.Vec2{}
	}
	return v.Normalize()
}

// Lerp interpolates linearly from a to b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Rect is an integer cell rectangle on the screen buffer.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
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
