package pocket

import "fmt"

// Subtract removes q's cleared area from p, row by row, mutating p in
// place. q is read-only. Both pockets must have been built over the
// same row grid (same row count, same per-index y); a mismatched grid
// is rejected before any mutation. All tolerance comparisons, both the
// grid check and the overlap classification, use p's precision; q's is
// ignored.
//
// Per minuend interval, a subtrahend interval is classified by
// tolerance comparisons into one of three overlap cases:
//
//	containment:   split the minuend interval into left and right
//	               remainders around the subtrahend interval
//	overlap right: trim the minuend's end down to the subtrahend's start
//	overlap left:  trim the minuend's start up to the subtrahend's end
//
// Non-overlapping subtrahend intervals leave the minuend untouched.
// After a containment split the scan advances past the freshly inserted
// right remainder, so the same subtrahend interval cannot immediately
// re-split it; later subtrahend intervals on the row are compared
// against the right remainder only, never again against the left one.
func (p *Pocket) Subtract(q *Pocket) error {
	if q == nil {
		return fmt.Errorf("pocket: subtract: nil subtrahend")
	}
	if len(p.rows) != len(q.rows) {
		return fmt.Errorf("pocket: subtract: row grid mismatch: %d rows vs %d rows",
			len(p.rows), len(q.rows))
	}
	for i := range p.rows {
		dy := p.rows[i].Y - q.rows[i].Y
		if dy > p.precision || dy < -p.precision {
			return fmt.Errorf("pocket: subtract: row grid mismatch: row %d at y=%g vs y=%g",
				i, p.rows[i].Y, q.rows[i].Y)
		}
	}

	eps := p.precision

	for i := range p.rows {
		a := &p.rows[i]
		sub := q.rows[i].Intervals

		for j := 0; j < len(a.Intervals); j++ {
			for k := 0; k < len(sub); k++ {
				b := sub[k]
				cur := a.Intervals[j]

				switch {
				case b.Start+eps >= cur.Start && b.Start-eps <= cur.End &&
					b.End+eps >= cur.Start && b.End-eps <= cur.End:
					// Containment (or complete overlap): split into
					// [cur.Start, b.Start] and [b.End, cur.End].
					a.Intervals = append(a.Intervals, Interval{})
					copy(a.Intervals[j+2:], a.Intervals[j+1:])
					a.Intervals[j+1] = Interval{Start: b.End, End: cur.End}
					a.Intervals[j].End = b.Start
					p.segments++

					// Skip to the right remainder so this subtrahend
					// interval is not reapplied to it.
					j++

				case b.Start > cur.Start && b.Start < cur.End:
					// Overlap right.
					a.Intervals[j].End = b.Start

				case b.End > cur.Start && b.End < cur.End:
					// Overlap left.
					a.Intervals[j].Start = b.End
				}
			}
		}
	}

	return nil
}
