// Package hatch fills polygons with procedural line and dot patterns.
package hatch

import (
	"math"
	"slices"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/internal/spatial"
)

// Kind selects the hatch pattern.
type Kind uint8

const (
	None Kind = iota
	Line
	Dot
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Line:
		return "line"
	case Dot:
		return "dot"
	}
	return "unknown"
}

// ParseKind maps "none", "line" and "dot" to a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{None, Line, Dot} {
		if k.String() == s {
			return k, true
		}
	}
	return None, false
}

// Spec configures a hatch fill.
type Spec struct {
	Kind Kind
	// Spacing is the distance between lines or dot rows, in output units.
	Spacing float64
	// Angle rotates the pattern, in radians, on top of the tile angle.
	Angle float64
	// CrossHatch adds a second pass rotated by 90 degrees.
	CrossHatch bool
	// Stagger shifts every other dot row by half the spacing.
	Stagger bool
}

// Validate checks the settings independently of any polygon.
func (s Spec) Validate() error {
	const op = "hatch"
	switch {
	case s.Kind > Dot:
		return mortier.Errorf(mortier.KindInvalidParameter, op, "unknown kind %d", s.Kind)
	case s.Kind == None:
		return nil
	case !(s.Spacing > 0) || math.IsInf(s.Spacing, 0):
		return mortier.Errorf(mortier.KindInvalidParameter, op, "spacing must be positive, got %v", s.Spacing)
	case math.IsNaN(s.Angle) || math.IsInf(s.Angle, 0):
		return mortier.Errorf(mortier.KindInvalidParameter, op, "angle must be finite")
	}
	return nil
}

// Segment is a straight hatch stroke.
type Segment struct {
	A, B mortier.Point
}

// Fill is the output of one hatch pass over a polygon.
type Fill struct {
	Lines []Segment
	Dots  []mortier.Point
}

// IsEmpty reports whether the fill has no primitives.
func (f Fill) IsEmpty() bool { return len(f.Lines) == 0 && len(f.Dots) == 0 }

// Generate fills outline according to spec. tileAngle is added to the spec
// angle. Every dot and every segment midpoint lies strictly inside the
// polygon; segment endpoints lie on its boundary. The fill is bounded by the
// default Limits.MaxHatchPrimitives.
func Generate(outline []mortier.Point, spec Spec, tileAngle float64) (Fill, error) {
	return GenerateBudget(outline, spec, tileAngle, mortier.DefaultLimits().MaxHatchPrimitives)
}

// GenerateBudget is Generate with an explicit primitive budget. Before each
// pass the scan grid (rows for lines, rows times columns for dots) is
// checked against what remains of budget, and so is the fill after it.
// Overruns fail with ErrResourceLimit.
func GenerateBudget(outline []mortier.Point, spec Spec, tileAngle float64, budget int) (Fill, error) {
	if err := spec.Validate(); err != nil {
		return Fill{}, err
	}
	if spec.Kind == None {
		return Fill{}, nil
	}
	if err := mortier.ValidatePolygon("hatch", outline); err != nil {
		return Fill{}, err
	}

	theta := spec.Angle + tileAngle
	passes := []float64{theta}
	if spec.CrossHatch {
		passes = append(passes, theta+math.Pi/2)
	}

	var fill Fill
	var seen *spatial.Index[struct{}]
	if spec.Kind == Dot && spec.CrossHatch {
		seen = spatial.New[struct{}](mortier.Bounds(outline), spec.Spacing*1e-6)
	}
	for _, a := range passes {
		rot := mortier.Rotate(-a).TransformPoints(outline)
		bounds := mortier.Bounds(rot)
		// Counted in float64: a tiny spacing overflows int.
		grid := steps(bounds.Height(), spec.Spacing)
		if spec.Kind == Dot {
			// a staggered row starts at the left edge and holds one more dot
			grid *= steps(bounds.Width(), spec.Spacing) + 1
		}
		if err := checkBudget(grid, fill, budget); err != nil {
			return Fill{}, err
		}
		switch spec.Kind {
		case Line:
			lines(&fill, rot, mortier.Rotate(a), bounds, spec.Spacing)
		case Dot:
			dots(&fill, rot, mortier.Rotate(a), bounds, spec, seen)
		}
		// concave outlines split a scanline into several segments
		if err := checkBudget(0, fill, budget); err != nil {
			return Fill{}, err
		}
	}
	return fill, nil
}

// Count returns the number of primitives in the fill.
func (f Fill) Count() int { return len(f.Lines) + len(f.Dots) }

// steps counts the offsets (k+1/2)*spacing below length.
func steps(length, spacing float64) float64 {
	return math.Max(0, math.Ceil(length/spacing-0.5))
}

func checkBudget(next float64, fill Fill, budget int) error {
	if n := float64(fill.Count()) + next; !(n <= float64(budget)) {
		return mortier.Errorf(mortier.KindResourceLimitExceeded, "hatch",
			"%.0f primitives exceed the budget of %d", n, budget)
	}
	return nil
}

// lines emits the interior parts of scanlines at offsets (k+1/2)*spacing.
// rot is the outline rotated so rows run along the x axis; back undoes it.
func lines(fill *Fill, rot []mortier.Point, back mortier.Matrix, bounds mortier.Rect, spacing float64) {
	var xs []float64
	for k := 0; ; k++ {
		y := bounds.Min.Y + (float64(k)+0.5)*spacing
		if y >= bounds.Max.Y {
			break
		}
		xs = xs[:0]
		for i, p := range rot {
			q := rot[(i+1)%len(rot)]
			// half-open: an edge covers y in [min, max)
			if (p.Y <= y) != (q.Y <= y) {
				xs = append(xs, p.X+(y-p.Y)*(q.X-p.X)/(q.Y-p.Y))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			if xs[i+1]-xs[i] <= 0 {
				continue
			}
			fill.Lines = append(fill.Lines, Segment{
				A: back.TransformPoint(mortier.Pt(xs[i], y)),
				B: back.TransformPoint(mortier.Pt(xs[i+1], y)),
			})
		}
	}
}

// dots emits grid points at (k+1/2)*spacing strictly inside the polygon.
func dots(fill *Fill, rot []mortier.Point, back mortier.Matrix, bounds mortier.Rect, spec Spec, seen *spatial.Index[struct{}]) {
	s := spec.Spacing
	tol := s * 1e-9
	for k := 0; ; k++ {
		y := bounds.Min.Y + (float64(k)+0.5)*s
		if y >= bounds.Max.Y {
			break
		}
		start := 0.5
		if spec.Stagger && k%2 == 1 {
			start = 0
		}
		for m := 0; ; m++ {
			x := bounds.Min.X + (float64(m)+start)*s
			if x >= bounds.Max.X {
				break
			}
			pt := mortier.Pt(x, y)
			if !mortier.ContainsStrict(rot, pt, tol) {
				continue
			}
			pt = back.TransformPoint(pt)
			if seen != nil {
				if _, dup := seen.FindOrInsert(pt, struct{}{}); dup {
					continue
				}
			}
			fill.Dots = append(fill.Dots, pt)
		}
	}
}
