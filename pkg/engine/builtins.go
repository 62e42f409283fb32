package engine

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/kerf/pkg/boundary"
	"github.com/chazu/kerf/pkg/job"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms job-script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: rapid-depth -> rapid_depth in identifier
//     position. zygomys does not allow hyphens in identifiers (it
//     interprets them as the subtraction operator).
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpElement wraps a single boundary element so it can be returned
// from `line`/`arc` and consumed by `boundary`.
type sexpElement struct {
	elem boundary.Element
}

func (e *sexpElement) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(element %T)", e.elem)
}
func (e *sexpElement) Type() *zygo.RegisteredType { return nil }

// sexpChain wraps a boundary chain so it can be passed to `defpocket`.
type sexpChain struct {
	chain boundary.Chain
}

func (c *sexpChain) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(boundary with %d elements)", len(c.chain))
}
func (c *sexpChain) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toChain extracts a boundary chain from a sexpChain.
func toChain(s zygo.Sexp) (boundary.Chain, error) {
	if c, ok := s.(*sexpChain); ok {
		return c.chain, nil
	}
	return nil, fmt.Errorf("expected boundary, got %T (%s)", s, s.SexpString(nil))
}

// kwFloat reads an optional keyword number into dst.
func kwFloat(pa kwArgs, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the job-script builtins into a zygomys
// environment. The builtins populate the provided Job during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, j *job.Job) {

	// -----------------------------------------------------------------------
	// (endmill :number 2)  or  (endmill :diameter 3.175)
	// -----------------------------------------------------------------------
	env.AddFunction("endmill", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		sel := job.ToolSelector{}
		if v, ok := pa.kw["number"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("endmill: number: %w", err)
			}
			sel.Number = int(f)
		}
		if err := kwFloat(pa, "diameter", &sel.Diameter); err != nil {
			return zygo.SexpNull, fmt.Errorf("endmill: %w", err)
		}
		if sel.IsZero() {
			return zygo.SexpNull, fmt.Errorf("endmill: requires :number or :diameter")
		}
		if sel.Number != 0 && sel.Diameter != 0 {
			return zygo.SexpNull, fmt.Errorf("endmill: :number and :diameter are mutually exclusive")
		}

		j.Tool = sel
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (material :height 40 :origin-y 0)
	// -----------------------------------------------------------------------
	env.AddFunction("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if err := kwFloat(pa, "height", &j.Material.Height); err != nil {
			return zygo.SexpNull, fmt.Errorf("material: %w", err)
		}
		if err := kwFloat(pa, "origin-y", &j.Material.OriginY); err != nil {
			return zygo.SexpNull, fmt.Errorf("material: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (line x0 y0 x1 y1)
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("line requires x0 y0 x1 y1")
		}
		var c [4]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("line: argument %d: %w", i+1, err)
			}
			c[i] = f
		}
		return &sexpElement{elem: &boundary.Line{
			P0: v2.Vec{X: c[0], Y: c[1]},
			P1: v2.Vec{X: c[2], Y: c[3]},
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (arc cx cy radius start sweep)   angles in degrees
	// -----------------------------------------------------------------------
	env.AddFunction("arc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 5 {
			return zygo.SexpNull, fmt.Errorf("arc requires cx cy radius start sweep")
		}
		var c [5]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: argument %d: %w", i+1, err)
			}
			c[i] = f
		}
		if c[2] <= 0 {
			return zygo.SexpNull, fmt.Errorf("arc: radius %g must be positive", c[2])
		}
		return &sexpElement{elem: &boundary.Arc{
			Center: v2.Vec{X: c[0], Y: c[1]},
			Radius: c[2],
			Start:  c[3],
			Sweep:  c[4],
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (boundary elem...)
	// -----------------------------------------------------------------------
	env.AddFunction("boundary", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("boundary requires at least one element")
		}
		chain := make(boundary.Chain, 0, len(args))
		for i, a := range args {
			e, ok := a.(*sexpElement)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("boundary: argument %d: expected element, got %T", i+1, a)
			}
			chain = append(chain, e.elem)
		}
		return &sexpChain{chain: chain}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon x y x y ...)   closed automatically
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 6 || len(args)%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("polygon requires at least three x y vertex pairs")
		}
		pts := make([]v2.Vec, 0, len(args)/2)
		for i := 0; i+1 < len(args); i += 2 {
			x, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: argument %d: %w", i+1, err)
			}
			y, err := toFloat64(args[i+1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: argument %d: %w", i+2, err)
			}
			pts = append(pts, v2.Vec{X: x, Y: y})
		}
		return &sexpChain{chain: boundary.FromPolygon(pts)}, nil
	})

	// -----------------------------------------------------------------------
	// (defpocket "name" :boundary b :depth -3 :resolution 1
	//            [:rapid-depth 0] [:islands (list b1 b2)])
	// -----------------------------------------------------------------------
	env.AddFunction("defpocket", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("defpocket requires a name")
		}
		pocketName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpocket: name: %w", err)
		}

		ps := &job.PocketSpec{Name: pocketName}

		v, ok := pa.kw["boundary"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("defpocket %q: missing :boundary", pocketName)
		}
		if ps.Boundary, err = toChain(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("defpocket %q: boundary: %w", pocketName, err)
		}

		if err := kwFloat(pa, "depth", &ps.Depth); err != nil {
			return zygo.SexpNull, fmt.Errorf("defpocket %q: %w", pocketName, err)
		}
		if err := kwFloat(pa, "rapid-depth", &ps.RapidDepth); err != nil {
			return zygo.SexpNull, fmt.Errorf("defpocket %q: %w", pocketName, err)
		}
		if err := kwFloat(pa, "resolution", &ps.Resolution); err != nil {
			return zygo.SexpNull, fmt.Errorf("defpocket %q: %w", pocketName, err)
		}

		if v, ok := pa.kw["islands"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("defpocket %q: islands: %w", pocketName, err)
			}
			for i, item := range items {
				chain, err := toChain(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("defpocket %q: island %d: %w", pocketName, i+1, err)
				}
				ps.Islands = append(ps.Islands, chain)
			}
		}

		if err := ps.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("defpocket %q: %w", pocketName, err)
		}
		if err := j.AddPocket(ps); err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})
}
