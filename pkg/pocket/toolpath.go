package pocket

import (
	"fmt"

	"github.com/chazu/kerf/pkg/motion"
	"github.com/chazu/kerf/pkg/tool"
)

// Toolpath walks the pocket's rows in zig-zag order and emits the
// cutting motion for one pass at the given depth into sink. A pocket
// with no intervals emits nothing.
//
// Rows with an even index are traversed left to right, odd-index rows
// right to left. Intervals narrower than the tool diameter are skipped.
// Each interval is approached independently: retract, rapid move to the
// entry end, then a single vertical entry (a rapid plunge when
// rapidDepth >= depth within the pocket's precision, since the material
// above the cut depth is then known to be clear, otherwise a
// feed-controlled descent) and finally the cutting move to the exit
// end. Without the per-interval retract, a pass over a narrow
// interval below a wider one could drag the tool through a wall of
// material that must remain:
//
//	+---------------+
//	+---*********---+
//	+------***------+
//	+-*************-+
//	+---------------+
//
// where "*" is the path of the endmill.
func (p *Pocket) Toolpath(depth, rapidDepth float64, t *tool.Tool, sink motion.Sink) {
	if p.segments == 0 {
		return
	}

	diameter := t.DiameterMM()
	rapid := rapidDepth >= depth-p.precision

	sink.Comment(fmt.Sprintf("pass depth: %g", depth))

	for i, row := range p.rows {
		if i%2 == 0 {
			for _, iv := range row.Intervals {
				p.cutInterval(iv.Start, iv.End, row.Y, depth, diameter, rapid, sink)
			}
		} else {
			for j := len(row.Intervals) - 1; j >= 0; j-- {
				iv := row.Intervals[j]
				p.cutInterval(iv.End, iv.Start, row.Y, depth, diameter, rapid, sink)
			}
		}
	}

	sink.Retract()
}

// cutInterval emits the motion for one interval, entering at entry and
// cutting to exit.
func (p *Pocket) cutInterval(entry, exit, y, depth, diameter float64, rapid bool, sink motion.Sink) {
	span := exit - entry
	if span < 0 {
		span = -span
	}
	if span < diameter {
		return
	}

	sink.Retract()
	sink.MoveXY(entry, y)
	if rapid {
		sink.Plunge(depth)
	} else {
		sink.Descend(depth)
	}
	sink.CutXY(exit, y)
}
