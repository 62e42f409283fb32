// Package pocket is the pocket-clearing engine: it converts a closed 2D
// boundary into per-scan-row clear intervals, boolean-subtracts one
// pocket's cleared area from another's, and emits the zig-zag cutting
// motion that machines the material out. All coordinates are in the
// working unit (millimeters); tolerance comparisons use an explicit
// precision value rather than an implicit global.
package pocket

// DefaultPrecision is the tolerance used for duplicate-crossing removal
// and overlap classification when the caller has no reason to choose
// another value.
const DefaultPrecision = 1e-5

// Interval is a contiguous x-range of clear material within a row. The
// endpoints are already margined inward; Start < End for every interval
// produced by Build.
type Interval struct {
	Start float64
	End   float64
}

// Span returns the width of the interval.
func (iv Interval) Span() float64 {
	if iv.End > iv.Start {
		return iv.End - iv.Start
	}
	return iv.Start - iv.End
}

// Row holds the clear intervals of one horizontal scan line. Intervals
// are pairwise disjoint and sorted ascending by Start; construction
// guarantees this and Subtract preserves it.
type Row struct {
	Y         float64
	Intervals []Interval
}

// Pocket is a 2D region to be cleared by parallel scan-line passes. It
// exclusively owns its rows and their intervals.
type Pocket struct {
	rows       []Row
	resolution float64
	precision  float64
	segments   int
}

// Rows returns the pocket's rows in ascending y order. The slice is
// owned by the pocket; callers must not mutate it.
func (p *Pocket) Rows() []Row {
	return p.rows
}

// Resolution returns the row spacing.
func (p *Pocket) Resolution() float64 {
	return p.resolution
}

// Precision returns the tolerance used for epsilon comparisons.
func (p *Pocket) Precision() float64 {
	return p.precision
}

// Segments returns the total interval count across all rows.
func (p *Pocket) Segments() int {
	return p.segments
}

// Empty reports whether the pocket has no clearable material.
func (p *Pocket) Empty() bool {
	return p.segments == 0
}
