package pocket

import (
	"fmt"
	"sort"

	"github.com/chazu/kerf/pkg/tool"
)

// marginFraction is the inward offset applied to each end of a kept
// interval, as a fraction of the tool diameter. The reserved stock is
// removed by the later perimeter/finishing pass, which leaves a cleaner
// wall than the roughing zig-zag.
const marginFraction = 0.1

// Boundary supplies scan-line crossings for a closed boundary chain.
// boundary.Chain satisfies it.
type Boundary interface {
	// Crossings appends the x-coordinates where the boundary crosses
	// the horizontal line at y, returning the extended slice.
	Crossings(y float64, xs []float64) []float64
}

// Build samples scan rows across the material's y-extent at the given
// resolution and converts each row's boundary crossings into clear
// intervals using the even-odd fill rule.
//
// Rows run from -originY to height-originY inclusive. Per row, the
// crossings are sorted ascending and crossings closer than precision
// collapse to one; consecutive pairs then denote interior material. A
// pair is kept only when its span exceeds the tool diameter (narrower
// gaps are left for the finishing pass), and kept intervals are nudged
// inward by 10% of the diameter on each side.
func Build(b Boundary, t *tool.Tool, originY, height, resolution, precision float64) (*Pocket, error) {
	if b == nil {
		return nil, fmt.Errorf("pocket: nil boundary")
	}
	if t == nil {
		return nil, fmt.Errorf("pocket: nil tool")
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("pocket: resolution %g must be positive", resolution)
	}
	if precision <= 0 {
		return nil, fmt.Errorf("pocket: precision %g must be positive", precision)
	}
	if height < 0 {
		return nil, fmt.Errorf("pocket: material height %g must not be negative", height)
	}

	diameter := t.DiameterMM()
	if diameter <= 0 {
		return nil, fmt.Errorf("pocket: tool diameter %g must be positive", diameter)
	}
	margin := marginFraction * diameter

	p := &Pocket{
		rows:       make([]Row, 0, int(height/resolution)+1),
		resolution: resolution,
		precision:  precision,
	}

	var xs []float64
	for y := -originY; y <= height-originY; y += resolution {
		xs = b.Crossings(y, xs[:0])

		sort.Float64s(xs)
		xs = dedupe(xs, precision)

		row := Row{Y: y}
		for i := 0; i+1 < len(xs); i += 2 {
			if xs[i+1]-xs[i] <= diameter {
				continue
			}
			row.Intervals = append(row.Intervals, Interval{
				Start: xs[i] + margin,
				End:   xs[i+1] - margin,
			})
			p.segments++
		}
		p.rows = append(p.rows, row)
	}

	return p, nil
}

// dedupe collapses sorted values closer than precision to a single
// value, in place.
func dedupe(xs []float64, precision float64) []float64 {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x-out[len(out)-1] <= precision {
			continue
		}
		out = append(out, x)
	}
	return out
}
