// Package job defines the data model produced by evaluating a job
// script: the stock material, the tool selection, and the named pocket
// operations to run against it. It is pure data; the engine populates
// it and the pipeline consumes it.
package job

import (
	"fmt"

	"github.com/chazu/kerf/pkg/boundary"
)

// Material describes the stock's y-extent, the range the row grid is
// sampled over. A zero Height means "derive from the boundary extents".
type Material struct {
	Height  float64
	OriginY float64
}

// ToolSelector picks an endmill from the catalog, either by tool number
// or by diameter in millimeters. Exactly one field is set.
type ToolSelector struct {
	Number   int
	Diameter float64
}

// IsZero reports whether no selection was made.
func (s ToolSelector) IsZero() bool {
	return s.Number == 0 && s.Diameter == 0
}

// PocketSpec is one pocket-clearing operation: an outer boundary, any
// island boundaries whose cleared area must be subtracted, and the
// cutting parameters.
type PocketSpec struct {
	Name       string
	Boundary   boundary.Chain
	Islands    []boundary.Chain
	Depth      float64 // cut depth, below the surface so negative
	RapidDepth float64 // depth known clear for rapid plunging
	Resolution float64 // row spacing
}

// Validate rejects specs the pipeline cannot run.
func (ps *PocketSpec) Validate() error {
	if len(ps.Boundary) == 0 {
		return fmt.Errorf("job: pocket %q has no boundary", ps.Name)
	}
	if ps.Resolution <= 0 {
		return fmt.Errorf("job: pocket %q resolution %g must be positive", ps.Name, ps.Resolution)
	}
	if ps.Depth >= 0 {
		return fmt.Errorf("job: pocket %q depth %g must be below the surface", ps.Name, ps.Depth)
	}
	for i, isl := range ps.Islands {
		if len(isl) == 0 {
			return fmt.Errorf("job: pocket %q island %d has no boundary", ps.Name, i)
		}
	}
	return nil
}

// Job is a complete machining job.
type Job struct {
	Material Material
	Tool     ToolSelector
	Pockets  []*PocketSpec

	nameIndex map[string]*PocketSpec
}

// New returns an empty job.
func New() *Job {
	return &Job{nameIndex: make(map[string]*PocketSpec)}
}

// AddPocket appends a pocket spec. Duplicate names are rejected so a
// script cannot silently shadow an earlier operation. The zero Job is
// usable; the name index is created on first use.
func (j *Job) AddPocket(ps *PocketSpec) error {
	if ps.Name != "" {
		if _, exists := j.nameIndex[ps.Name]; exists {
			return fmt.Errorf("job: pocket %q already defined", ps.Name)
		}
		if j.nameIndex == nil {
			j.nameIndex = make(map[string]*PocketSpec)
		}
		j.nameIndex[ps.Name] = ps
	}
	j.Pockets = append(j.Pockets, ps)
	return nil
}

// Lookup returns the pocket spec with the given name, or nil.
func (j *Job) Lookup(name string) *PocketSpec {
	return j.nameIndex[name]
}

// Validate checks the whole job.
func (j *Job) Validate() error {
	if len(j.Pockets) == 0 {
		return fmt.Errorf("job: no pockets defined")
	}
	if j.Tool.IsZero() {
		return fmt.Errorf("job: no endmill selected")
	}
	if j.Material.Height < 0 {
		return fmt.Errorf("job: material height %g must not be negative", j.Material.Height)
	}
	for _, ps := range j.Pockets {
		if err := ps.Validate(); err != nil {
			return err
		}
	}
	return nil
}
