package pocket

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chazu/kerf/pkg/motion"
)

func TestToolpathEmissionOrder(t *testing.T) {
	// One row, one interval, rapid threshold at or below the cut depth:
	// comment, then retract / rapid move / rapid plunge / cut, then the
	// final retract.
	p := oneRow(Interval{0, 5})
	rec := &motion.Recorder{}

	p.Toolpath(-1, 0, mmTool(2), rec)

	wantOps := []motion.Op{
		motion.OpComment,
		motion.OpRetract,
		motion.OpMoveXY,
		motion.OpPlunge,
		motion.OpCutXY,
		motion.OpRetract,
	}
	if diff := cmp.Diff(wantOps, rec.Ops()); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}

	move, cut := rec.Calls[2], rec.Calls[4]
	if move.X != 0 || move.Y != 0 {
		t.Errorf("entry move to (%g,%g), want (0,0)", move.X, move.Y)
	}
	if cut.X != 5 || cut.Y != 0 {
		t.Errorf("cut to (%g,%g), want (5,0)", cut.X, cut.Y)
	}
	if rec.Calls[3].Z != -1 {
		t.Errorf("plunge z = %g, want -1", rec.Calls[3].Z)
	}
}

func TestToolpathControlledDescent(t *testing.T) {
	// Rapid threshold below the cut depth: the material above the cut is
	// not known to be clear, so the entry is a feed-controlled descent
	// instead of a rapid plunge.
	p := oneRow(Interval{0, 5})
	rec := &motion.Recorder{}

	p.Toolpath(-1, -5, mmTool(2), rec)

	for _, c := range rec.Calls {
		if c.Op == motion.OpPlunge {
			t.Fatal("rapid plunge emitted with the rapid threshold below the cut depth")
		}
	}
	var descents int
	for _, c := range rec.Calls {
		if c.Op == motion.OpDescend {
			descents++
			if c.Z != -1 {
				t.Errorf("descend z = %g, want -1", c.Z)
			}
		}
	}
	if descents != 1 {
		t.Errorf("descent count = %d, want 1", descents)
	}
}

func TestToolpathZigZag(t *testing.T) {
	// Even rows traverse intervals ascending and enter each interval at
	// its start; odd rows traverse descending and enter at the end.
	p := gridPocket(
		Row{Y: 0, Intervals: []Interval{{0, 5}, {10, 15}}},
		Row{Y: 1, Intervals: []Interval{{0, 5}, {10, 15}}},
	)
	rec := &motion.Recorder{}

	p.Toolpath(-1, 0, mmTool(2), rec)

	type leg struct{ entry, exit, y float64 }
	var legs []leg
	for i, c := range rec.Calls {
		if c.Op == motion.OpMoveXY {
			cut := rec.Calls[i+2]
			legs = append(legs, leg{c.X, cut.X, c.Y})
		}
	}

	want := []leg{
		{0, 5, 0},
		{10, 15, 0},
		{15, 10, 1},
		{5, 0, 1},
	}
	if diff := cmp.Diff(want, legs, cmp.AllowUnexported(leg{})); diff != "" {
		t.Errorf("cut legs mismatch (-want +got):\n%s", diff)
	}
}

func TestToolpathSkipsDegenerateIntervals(t *testing.T) {
	// An interval narrower than the tool diameter is skipped entirely,
	// but the pass still brackets with comment and final retract.
	p := oneRow(Interval{0, 1}, Interval{10, 20})
	rec := &motion.Recorder{}

	p.Toolpath(-1, 0, mmTool(2), rec)

	var cuts []motion.Call
	for _, c := range rec.Calls {
		if c.Op == motion.OpCutXY {
			cuts = append(cuts, c)
		}
	}
	if len(cuts) != 1 {
		t.Fatalf("cut count = %d, want 1", len(cuts))
	}
	if cuts[0].X != 20 {
		t.Errorf("cut to x=%g, want 20", cuts[0].X)
	}
}

func TestToolpathEmptyPocket(t *testing.T) {
	// segment count 0 means no motion primitives at all, not even the
	// depth comment.
	p := gridPocket(Row{Y: 0}, Row{Y: 1})
	rec := &motion.Recorder{}

	p.Toolpath(-1, 0, mmTool(2), rec)

	if len(rec.Calls) != 0 {
		t.Errorf("emitted %d calls for an empty pocket, want 0", len(rec.Calls))
	}
}

func TestToolpathAfterSubtract(t *testing.T) {
	// Zero-width remainders left by an exact-cover subtraction are
	// skipped at emission.
	p := oneRow(Interval{0, 10})
	q := oneRow(Interval{0, 10})
	if err := p.Subtract(q); err != nil {
		t.Fatal(err)
	}

	rec := &motion.Recorder{}
	p.Toolpath(-1, 0, mmTool(2), rec)

	for _, c := range rec.Calls {
		if c.Op == motion.OpCutXY {
			t.Fatalf("cut emitted for fully subtracted pocket: %+v", c)
		}
	}
}

func TestToolpathRapidThresholdTolerance(t *testing.T) {
	// The threshold comparison is tolerance-based: a rapid depth within
	// precision below the cut depth still plunges.
	p := oneRow(Interval{0, 5})
	rec := &motion.Recorder{}

	p.Toolpath(-1, -1-DefaultPrecision/2, mmTool(2), rec)

	var sawPlunge bool
	for _, c := range rec.Calls {
		if c.Op == motion.OpPlunge {
			sawPlunge = true
		}
	}
	if !sawPlunge {
		t.Error("expected rapid plunge within precision of the cut depth")
	}
}
