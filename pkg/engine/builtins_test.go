package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/kerf/pkg/boundary"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(endmill :number 2)`,
			expect: `(endmill "__kw_number" 2)`,
		},
		{
			name:   "multiple keywords",
			input:  `(material :height 40 :origin-y 0)`,
			expect: `(material "__kw_height" 40 "__kw_origin-y" 0)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(my-pocket :rapid-depth 0)`,
			expect: `(my_pocket "__kw_rapid-depth" 0)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(defpocket "p" :depth -3)`,
			expect: `(defpocket "p" "__kw_depth" -3)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Builtin tests
// ---------------------------------------------------------------------------

func TestEvaluateFullJob(t *testing.T) {
	eng := NewEngine()

	source := `
; 1/8" endmill from the catalog
(endmill :number 2)
(material :height 40 :origin-y 0)

(def outer (polygon 0 0 50 0 50 40 0 40))
(def island (polygon 20 15 30 15 30 25 20 25))

(defpocket "base"
  :boundary outer
  :islands (list island)
  :depth -3
  :rapid-depth 0
  :resolution 0.5)
`
	j, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}

	if j.Tool.Number != 2 {
		t.Errorf("tool number = %d, want 2", j.Tool.Number)
	}
	if j.Material.Height != 40 {
		t.Errorf("material height = %g, want 40", j.Material.Height)
	}

	ps := j.Lookup("base")
	if ps == nil {
		t.Fatal("pocket 'base' not defined")
	}
	if ps.Depth != -3 || ps.Resolution != 0.5 || ps.RapidDepth != 0 {
		t.Errorf("pocket params = %+v", ps)
	}
	if len(ps.Boundary) != 4 {
		t.Errorf("boundary element count = %d, want 4", len(ps.Boundary))
	}
	if len(ps.Islands) != 1 || len(ps.Islands[0]) != 4 {
		t.Errorf("islands = %v", ps.Islands)
	}

	if err := j.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestEvaluateLineAndArc(t *testing.T) {
	eng := NewEngine()

	// A stadium shape: two horizontal lines capped by half circles.
	source := `
(endmill :diameter 3.175)
(defpocket "slot"
  :boundary (boundary
    (line 0 0 40 0)
    (arc 40 10 10 -90 180)
    (line 40 20 0 20)
    (arc 0 10 10 90 180))
  :depth -2
  :resolution 1)
`
	j, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}

	if math.Abs(j.Tool.Diameter-3.175) > 1e-12 {
		t.Errorf("tool diameter = %g, want 3.175", j.Tool.Diameter)
	}

	ps := j.Lookup("slot")
	if ps == nil {
		t.Fatal("pocket 'slot' not defined")
	}
	if len(ps.Boundary) != 4 {
		t.Fatalf("boundary element count = %d, want 4", len(ps.Boundary))
	}
	if _, ok := ps.Boundary[1].(*boundary.Arc); !ok {
		t.Errorf("element 1 = %T, want *boundary.Arc", ps.Boundary[1])
	}

	// The mid-height row must cross both end caps.
	xs := ps.Boundary.Crossings(10, nil)
	if len(xs) != 2 {
		t.Errorf("crossings at y=10 = %v, want 2 values", xs)
	}
}

func TestEvaluateBuiltinErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{
			name:    "endmill without selector",
			source:  `(endmill)`,
			wantMsg: "number or",
		},
		{
			name:    "endmill with both selectors",
			source:  `(endmill :number 1 :diameter 3)`,
			wantMsg: "mutually exclusive",
		},
		{
			name:    "line arity",
			source:  `(line 0 0 10)`,
			wantMsg: "line requires",
		},
		{
			name:    "arc radius",
			source:  `(arc 0 0 -5 0 360)`,
			wantMsg: "radius",
		},
		{
			name:    "polygon odd coordinates",
			source:  `(polygon 0 0 10 0 10)`,
			wantMsg: "vertex pairs",
		},
		{
			name:    "boundary with non-element",
			source:  `(boundary 42)`,
			wantMsg: "expected element",
		},
		{
			name:    "defpocket missing boundary",
			source:  `(defpocket "p" :depth -3 :resolution 1)`,
			wantMsg: "missing :boundary",
		},
		{
			name:    "defpocket bad depth",
			source:  `(defpocket "p" :boundary (polygon 0 0 10 0 10 10) :depth 3 :resolution 1)`,
			wantMsg: "below the surface",
		},
		{
			name: "duplicate pocket name",
			source: `(defpocket "p" :boundary (polygon 0 0 10 0 10 10) :depth -3 :resolution 1)
(defpocket "p" :boundary (polygon 0 0 10 0 10 10) :depth -3 :resolution 1)`,
			wantMsg: "already defined",
		},
	}

	eng := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, evalErrs, err := eng.Evaluate(tt.source)
			if err != nil {
				t.Fatalf("unexpected fatal error: %v", err)
			}
			if j != nil {
				t.Fatal("expected nil job on builtin error")
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected eval errors")
			}
			if !strings.Contains(evalErrs[0].Message, tt.wantMsg) {
				t.Errorf("error = %q, want containing %q", evalErrs[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestEvaluateIslandsAsArray(t *testing.T) {
	eng := NewEngine()

	// Islands can also be given as an array literal.
	source := `
(endmill :number 1)
(defpocket "p"
  :boundary (polygon 0 0 100 0 100 100 0 100)
  :islands [(polygon 10 10 20 10 20 20 10 20) (polygon 60 60 70 60 70 70 60 70)]
  :depth -1
  :resolution 2)
`
	j, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}

	ps := j.Lookup("p")
	if ps == nil {
		t.Fatal("pocket 'p' not defined")
	}
	if len(ps.Islands) != 2 {
		t.Errorf("island count = %d, want 2", len(ps.Islands))
	}
}
