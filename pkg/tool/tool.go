// Package tool describes cutting tools and the XML-backed endmill
// catalog they are selected from. The pocket engine only ever reads a
// tool's diameter; the rest of the record exists for catalog management
// and G-code annotations.
package tool

import "fmt"

// Unit is the measurement unit of a tool's diameter.
type Unit int

const (
	UnitMillimeter Unit = iota
	UnitInch
)

// millimetersPerInch converts inch diameters to the working unit.
const millimetersPerInch = 25.4

// String returns the catalog spelling of the unit.
func (u Unit) String() string {
	if u == UnitInch {
		return "inch"
	}
	return "millimeter"
}

// ParseUnit converts a catalog unit attribute to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "millimeter":
		return UnitMillimeter, nil
	case "inch":
		return UnitInch, nil
	}
	return 0, fmt.Errorf("tool: unknown unit %q", s)
}

// Tool is one endmill. Diameter is stored in the unit the catalog
// declared it in.
type Tool struct {
	Number      int
	Diameter    float64
	Unit        Unit
	Description string
}

// DiameterMM returns the diameter in millimeters, the working unit of
// the pocket engine.
func (t *Tool) DiameterMM() float64 {
	if t.Unit == UnitInch {
		return t.Diameter * millimetersPerInch
	}
	return t.Diameter
}

// String identifies the tool for comments and error messages.
func (t *Tool) String() string {
	if t.Description != "" {
		return fmt.Sprintf("T%d %s", t.Number, t.Description)
	}
	return fmt.Sprintf("T%d %g %s", t.Number, t.Diameter, t.Unit)
}
