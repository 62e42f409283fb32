// Package gcode renders motion primitives as RS-274 G-code text. The
// Writer implements motion.Sink; machine-specific values (traverse
// height, feed rates, output precision) come from a TOML machine
// profile so the geometry core never sees them.
package gcode

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Machine is a machine profile controlling G-code rendering.
type Machine struct {
	Name       string  `toml:"name"`
	Units      string  `toml:"units"`       // "mm" or "inch"
	TraverseZ  float64 `toml:"traverse_z"`  // safe traverse height
	FeedRate   float64 `toml:"feed_rate"`   // cutting feed, units/min
	PlungeRate float64 `toml:"plunge_rate"` // vertical entry feed, units/min
	Decimals   int     `toml:"decimals"`    // coordinate digits after the point
}

// DefaultMachine is a conservative metric profile.
func DefaultMachine() Machine {
	return Machine{
		Name:       "default",
		Units:      "mm",
		TraverseZ:  5,
		FeedRate:   400,
		PlungeRate: 120,
		Decimals:   4,
	}
}

// LoadMachine reads a machine profile, filling unset fields from the
// defaults.
func LoadMachine(r io.Reader) (Machine, error) {
	m := DefaultMachine()
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return Machine{}, fmt.Errorf("gcode: parsing machine profile: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Machine{}, err
	}
	return m, nil
}

// LoadMachineFile reads a machine profile from disk.
func LoadMachineFile(path string) (Machine, error) {
	m := DefaultMachine()
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Machine{}, fmt.Errorf("gcode: parsing machine profile: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Machine{}, err
	}
	return m, nil
}

// Validate rejects profiles a machine cannot run.
func (m Machine) Validate() error {
	if m.Units != "mm" && m.Units != "inch" {
		return fmt.Errorf("gcode: units %q must be mm or inch", m.Units)
	}
	if m.TraverseZ <= 0 {
		return fmt.Errorf("gcode: traverse height %g must be above the material", m.TraverseZ)
	}
	if m.FeedRate <= 0 {
		return fmt.Errorf("gcode: feed rate %g must be positive", m.FeedRate)
	}
	if m.PlungeRate <= 0 {
		return fmt.Errorf("gcode: plunge rate %g must be positive", m.PlungeRate)
	}
	if m.Decimals < 0 || m.Decimals > 9 {
		return fmt.Errorf("gcode: decimals %d out of range", m.Decimals)
	}
	return nil
}
