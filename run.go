package main

import (
	"fmt"
	"io"

	"github.com/chazu/kerf/pkg/gcode"
	"github.com/chazu/kerf/pkg/job"
	"github.com/chazu/kerf/pkg/pocket"
	"github.com/chazu/kerf/pkg/tool"
)

// Generate runs a validated job end to end: resolve the endmill from
// the catalog, build a pocket per spec, subtract island pockets, and
// render the toolpaths as G-code onto w.
func Generate(j *job.Job, cat *tool.Catalog, machine gcode.Machine, w io.Writer) error {
	if err := j.Validate(); err != nil {
		return err
	}
	if err := machine.Validate(); err != nil {
		return err
	}

	t, err := resolveTool(j.Tool, cat)
	if err != nil {
		return err
	}

	g := gcode.NewWriter(w, machine)
	g.Comment(fmt.Sprintf("endmill: %s", t))
	g.Preamble()

	for _, ps := range j.Pockets {
		p, err := buildPocket(ps, j.Material, t)
		if err != nil {
			return fmt.Errorf("pocket %q: %w", ps.Name, err)
		}

		g.Comment(fmt.Sprintf("pocket: %s", ps.Name))
		p.Toolpath(ps.Depth, ps.RapidDepth, t, g)
	}

	g.Postamble()
	return g.Err()
}

// buildPocket builds the row grid for one pocket spec and carves out
// its islands. Islands are built over the same grid, which is what
// makes the subtraction well defined.
func buildPocket(ps *job.PocketSpec, mat job.Material, t *tool.Tool) (*pocket.Pocket, error) {
	originY, height := mat.OriginY, mat.Height
	if height == 0 {
		// No stock extents declared: derive the scan range from the
		// boundary itself.
		lo, hi, ok := ps.Boundary.Extents()
		if !ok {
			return nil, fmt.Errorf("material height unknown and boundary reports no extents")
		}
		originY = -lo.Y
		height = hi.Y - lo.Y
	}

	p, err := pocket.Build(ps.Boundary, t, originY, height, ps.Resolution, pocket.DefaultPrecision)
	if err != nil {
		return nil, err
	}

	for i, isl := range ps.Islands {
		q, err := pocket.Build(isl, t, originY, height, ps.Resolution, pocket.DefaultPrecision)
		if err != nil {
			return nil, fmt.Errorf("island %d: %w", i, err)
		}
		if err := p.Subtract(q); err != nil {
			return nil, fmt.Errorf("island %d: %w", i, err)
		}
	}

	return p, nil
}

// resolveTool picks the endmill the job selected from the catalog.
func resolveTool(sel job.ToolSelector, cat *tool.Catalog) (*tool.Tool, error) {
	if cat == nil {
		// No catalog: a diameter selection can still be honored with an
		// anonymous tool.
		if sel.Diameter > 0 {
			return &tool.Tool{Diameter: sel.Diameter, Unit: tool.UnitMillimeter}, nil
		}
		return nil, fmt.Errorf("tool number %d requested but no catalog loaded", sel.Number)
	}
	if sel.Number != 0 {
		return cat.Find(sel.Number)
	}
	return cat.FindByDiameter(sel.Diameter, pocket.DefaultPrecision)
}
