package boundary

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface checks.
var (
	_ Element = (*Line)(nil)
	_ Bounded = (*Line)(nil)
)

// Line is a straight boundary segment from P0 to P1.
type Line struct {
	P0, P1 v2.Vec
}

// Crossings reports where the segment crosses the scan line at y.
// Endpoints count as crossings; when two chained segments share a vertex
// on the scan line both report it and the duplicate collapses during
// interval construction. A segment lying exactly on the scan line
// reports both endpoints, bracketing the material it bounds.
func (l *Line) Crossings(y float64, xs []float64) []float64 {
	y0, y1 := l.P0.Y, l.P1.Y

	if y0 == y1 {
		if y == y0 {
			xs = append(xs, l.P0.X, l.P1.X)
		}
		return xs
	}

	lo, hi := y0, y1
	if lo > hi {
		lo, hi = hi, lo
	}
	if y < lo || y > hi {
		return xs
	}

	t := (y - y0) / (y1 - y0)
	return append(xs, l.P0.X+t*(l.P1.X-l.P0.X))
}

// Bounds returns the axis-aligned bounding box of the segment.
func (l *Line) Bounds() (lo, hi v2.Vec) {
	lo = v2.Vec{X: min(l.P0.X, l.P1.X), Y: min(l.P0.Y, l.P1.Y)}
	hi = v2.Vec{X: max(l.P0.X, l.P1.X), Y: max(l.P0.Y, l.P1.Y)}
	return lo, hi
}
