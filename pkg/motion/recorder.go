package motion

import "fmt"

// Op identifies a recorded motion primitive.
type Op int

const (
	OpComment Op = iota
	OpRetract
	OpMoveXY
	OpPlunge
	OpDescend
	OpCutXY
)

// String returns the primitive name, for test failure messages.
func (o Op) String() string {
	switch o {
	case OpComment:
		return "comment"
	case OpRetract:
		return "retract"
	case OpMoveXY:
		return "move"
	case OpPlunge:
		return "plunge"
	case OpDescend:
		return "descend"
	case OpCutXY:
		return "cut"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Call is one recorded primitive with its numeric arguments.
type Call struct {
	Op   Op
	X, Y float64 // MoveXY, CutXY
	Z    float64 // Retract, Plunge, Descend
	Text string  // Comment
}

// Compile-time interface check.
var _ Sink = (*Recorder)(nil)

// Recorder is a Sink that stores every call, in order. It is the test
// double shared by the pocket, gcode, and engine tests, and is also
// useful for inspecting a toolpath without rendering it.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) Comment(text string) { r.Calls = append(r.Calls, Call{Op: OpComment, Text: text}) }
func (r *Recorder) Retract()            { r.Calls = append(r.Calls, Call{Op: OpRetract}) }
func (r *Recorder) MoveXY(x, y float64) { r.Calls = append(r.Calls, Call{Op: OpMoveXY, X: x, Y: y}) }
func (r *Recorder) Plunge(z float64)    { r.Calls = append(r.Calls, Call{Op: OpPlunge, Z: z}) }
func (r *Recorder) Descend(z float64)   { r.Calls = append(r.Calls, Call{Op: OpDescend, Z: z}) }
func (r *Recorder) CutXY(x, y float64)  { r.Calls = append(r.Calls, Call{Op: OpCutXY, X: x, Y: y}) }

// Ops returns just the primitive kinds, in emission order.
func (r *Recorder) Ops() []Op {
	ops := make([]Op, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
