package boundary

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface checks.
var (
	_ Element = (*Arc)(nil)
	_ Bounded = (*Arc)(nil)
)

// Arc is a circular boundary segment. Start is the angle of the first
// endpoint in degrees measured counter-clockwise from the positive x
// axis; Sweep is the signed angular extent in degrees (positive =
// counter-clockwise). A full circle is Sweep = ±360.
type Arc struct {
	Center v2.Vec
	Radius float64
	Start  float64
	Sweep  float64
}

// angleSlack absorbs floating-point error when testing whether an
// intersection angle lies within the swept range.
const angleSlack = 1e-9

// Crossings reports where the arc crosses the scan line at y. A line
// tangent to the arc reports the tangent point once.
func (a *Arc) Crossings(y float64, xs []float64) []float64 {
	dy := y - a.Center.Y
	if math.Abs(dy) > a.Radius {
		return xs
	}

	dx := math.Sqrt(a.Radius*a.Radius - dy*dy)

	if a.onArc(math.Atan2(dy, dx)) {
		xs = append(xs, a.Center.X+dx)
	}
	// Tangent point: both candidates coincide, report once.
	if dx > 0 && a.onArc(math.Atan2(dy, -dx)) {
		xs = append(xs, a.Center.X-dx)
	}
	return xs
}

// onArc reports whether the angle rad (radians) lies within the swept
// angular range.
func (a *Arc) onArc(rad float64) bool {
	deg := rad * 180 / math.Pi

	sweep := a.Sweep
	start := a.Start
	if sweep < 0 {
		// Walk the arc in the counter-clockwise sense instead.
		start += sweep
		sweep = -sweep
	}
	if sweep >= 360 {
		return true
	}

	delta := math.Mod(deg-start, 360)
	if delta < 0 {
		delta += 360
	}
	return delta <= sweep+angleSlack || delta >= 360-angleSlack
}

// Bounds returns the axis-aligned bounding box of the swept portion of
// the circle: both endpoints plus any axis-extreme point the sweep
// covers.
func (a *Arc) Bounds() (lo, hi v2.Vec) {
	p0 := a.pointAt(a.Start)
	p1 := a.pointAt(a.Start + a.Sweep)

	lo = v2.Vec{X: min(p0.X, p1.X), Y: min(p0.Y, p1.Y)}
	hi = v2.Vec{X: max(p0.X, p1.X), Y: max(p0.Y, p1.Y)}

	for _, deg := range []float64{0, 90, 180, 270} {
		if !a.onArc(deg * math.Pi / 180) {
			continue
		}
		p := a.pointAt(deg)
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}

// pointAt returns the point on the circle at the given angle in degrees.
func (a *Arc) pointAt(deg float64) v2.Vec {
	rad := deg * math.Pi / 180
	return v2.Vec{
		X: a.Center.X + a.Radius*math.Cos(rad),
		Y: a.Center.Y + a.Radius*math.Sin(rad),
	}
}
