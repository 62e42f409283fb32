// Package boundary models closed 2D machining boundaries as chains of
// geometric elements. Each element knows how to report where it crosses
// a horizontal scan line; the pocket package turns those crossings into
// clearable intervals. Elements use the sdfx 2D vector type so boundary
// data interoperates with the rest of the geometry stack.
package boundary

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Element is a single piece of boundary geometry. Implementations report
// scan-line crossings; everything else about the geometry is private to
// the element kind.
type Element interface {
	// Crossings appends to xs the x-coordinates where the element
	// crosses the horizontal line at y, and returns the extended slice.
	// An element touching the line at a single point reports that point;
	// duplicate reports from adjacent elements are collapsed downstream.
	Crossings(y float64, xs []float64) []float64
}

// Bounded is implemented by elements that can report an axis-aligned
// bounding box. All elements in this package are bounded; the interface
// is separate so Element stays minimal for external implementations.
type Bounded interface {
	Bounds() (lo, hi v2.Vec)
}

// Chain is an ordered sequence of boundary elements forming (by
// convention, not enforcement) a closed loop.
type Chain []Element

// Crossings collects the scan-line crossings of every element in chain
// order, appending to xs.
func (c Chain) Crossings(y float64, xs []float64) []float64 {
	for _, e := range c {
		xs = e.Crossings(y, xs)
	}
	return xs
}

// Extents returns the bounding box of all bounded elements in the chain
// and ok=false when the chain contains no bounded elements.
func (c Chain) Extents() (lo, hi v2.Vec, ok bool) {
	for _, e := range c {
		b, isBounded := e.(Bounded)
		if !isBounded {
			continue
		}
		elo, ehi := b.Bounds()
		if !ok {
			lo, hi = elo, ehi
			ok = true
			continue
		}
		lo.X = min(lo.X, elo.X)
		lo.Y = min(lo.Y, elo.Y)
		hi.X = max(hi.X, ehi.X)
		hi.Y = max(hi.Y, ehi.Y)
	}
	return lo, hi, ok
}

// FromPolygon builds a chain of line elements from the vertices of a
// closed polygon. The final vertex is joined back to the first; fewer
// than three vertices yield an empty chain.
func FromPolygon(pts []v2.Vec) Chain {
	if len(pts) < 3 {
		return nil
	}
	chain := make(Chain, 0, len(pts))
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		chain = append(chain, &Line{P0: pts[i], P1: next})
	}
	return chain
}

