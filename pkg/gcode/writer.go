package gcode

import (
	"fmt"
	"io"
	"strings"

	"github.com/chazu/kerf/pkg/motion"
)

// Compile-time interface check.
var _ motion.Sink = (*Writer)(nil)

// Writer renders motion primitives as G-code lines. Write errors are
// sticky: the first failure is remembered and later calls become
// no-ops, so callers check Err once after emission.
type Writer struct {
	w       io.Writer
	machine Machine
	err     error
}

// NewWriter returns a Writer rendering onto w with the given machine
// profile. The profile must already be validated.
func NewWriter(w io.Writer, m Machine) *Writer {
	return &Writer{w: w, machine: m}
}

// Err returns the first write error, if any.
func (g *Writer) Err() error {
	return g.err
}

// Preamble emits the program header: units, absolute positioning, and
// an initial retract to the traverse height.
func (g *Writer) Preamble() {
	if g.machine.Units == "inch" {
		g.line("G20 (units: inch)")
	} else {
		g.line("G21 (units: mm)")
	}
	g.line("G90 (absolute coordinates)")
	g.Retract()
}

// Postamble emits the program trailer: retract, spindle stop, end.
func (g *Writer) Postamble() {
	g.Retract()
	g.line("M5 (spindle stop)")
	g.line("M2 (program end)")
}

// Comment emits a parenthesized comment. Parentheses in the text would
// terminate the comment early, so they are rewritten.
func (g *Writer) Comment(text string) {
	clean := strings.NewReplacer("(", "[", ")", "]").Replace(text)
	g.line("(%s)", clean)
}

// Retract rapids up to the machine's traverse height.
func (g *Writer) Retract() {
	g.line("G0 Z%s", g.num(g.machine.TraverseZ))
}

// MoveXY rapids to (x, y).
func (g *Writer) MoveXY(x, y float64) {
	g.line("G0 X%s Y%s", g.num(x), g.num(y))
}

// Plunge rapids straight down to z.
func (g *Writer) Plunge(z float64) {
	g.line("G0 Z%s", g.num(z))
}

// Descend feeds straight down to z at the plunge rate.
func (g *Writer) Descend(z float64) {
	g.line("G1 Z%s F%s", g.num(z), g.num(g.machine.PlungeRate))
}

// CutXY feeds linearly to (x, y) at the cutting rate.
func (g *Writer) CutXY(x, y float64) {
	g.line("G1 X%s Y%s F%s", g.num(x), g.num(y), g.num(g.machine.FeedRate))
}

// num formats a coordinate with the machine's precision, trimming
// trailing zeros so output stays readable.
func (g *Writer) num(v float64) string {
	s := fmt.Sprintf("%.*f", g.machine.Decimals, v)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	// Normalize negative zero.
	if s == "-0" {
		s = "0"
	}
	return s
}

func (g *Writer) line(format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format+"\n", args...)
}
