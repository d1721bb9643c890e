// Package ornament draws decorative overlays along tile boundaries.
//
// Bands are closed rings offset inward from the outline. Laces are corner
// straps at every vertex a tile shares with a neighbour, drawn as two
// parallel strands; every other strap is broken in the middle so that the
// straps appear to pass under each other.
package ornament

import (
	"math"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/internal/spatial"
)

// MaxBands bounds the number of rings drawn inside one tile.
const MaxBands = 64

// Kind selects the ornament.
type Kind uint8

const (
	None Kind = iota
	Bands
	Laces
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Bands:
		return "bands"
	case Laces:
		return "laces"
	}
	return "unknown"
}

// ParseKind maps "none", "bands" and "laces" to a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{None, Bands, Laces} {
		if k.String() == s {
			return k, true
		}
	}
	return None, false
}

// Spec configures an ornament.
type Spec struct {
	Kind Kind
	// Width is the band spacing or lace thickness, in output units.
	Width float64
}

// Validate reports an unknown kind or a negative width.
func (s Spec) Validate() error {
	if s.Kind > Laces {
		return mortier.Errorf(mortier.KindInvalidParameter, "ornament", "unknown kind %d", s.Kind)
	}
	if !(s.Width >= 0) || math.IsInf(s.Width, 0) {
		return mortier.Errorf(mortier.KindInvalidParameter, "ornament", "width must be non-negative, got %v", s.Width)
	}
	return nil
}

// Overlay is the geometry of one tile's ornament.
type Overlay struct {
	// Rings are closed polygons.
	Rings [][]mortier.Point
	// Strands are open polylines.
	Strands [][]mortier.Point
}

// IsEmpty reports whether the overlay draws nothing.
func (o Overlay) IsEmpty() bool { return len(o.Rings) == 0 && len(o.Strands) == 0 }

// Render computes the ornament of one tile. corners selects the true corners
// of outline (nil means all points). junctions reports how many tiles meet at
// a vertex; with a nil index every corner is treated as shared.
func Render(outline []mortier.Point, corners []int, spec Spec, junctions *Junctions) (Overlay, error) {
	if err := spec.Validate(); err != nil {
		return Overlay{}, err
	}
	switch spec.Kind {
	case Bands:
		if err := mortier.ValidatePolygon("ornament", outline); err != nil {
			return Overlay{}, err
		}
		return Overlay{Rings: BandRings(outline, spec.Width)}, nil
	case Laces:
		pts := outline
		if corners != nil {
			pts = make([]mortier.Point, len(corners))
			for i, c := range corners {
				pts[i] = outline[c]
			}
		}
		if err := mortier.ValidatePolygon("ornament", pts); err != nil {
			return Overlay{}, err
		}
		return Overlay{Strands: laces(pts, spec.Width, junctions)}, nil
	}
	return Overlay{}, nil
}

// BandRings returns the rings offset inward by k*width for k = 1, 2, ...,
// stopping before the first ring that collapses, reverses an edge or
// self-intersects, and after MaxBands rings.
func BandRings(outline []mortier.Point, width float64) [][]mortier.Point {
	if width <= 0 {
		return nil
	}
	area := mortier.SignedArea(outline)
	var rings [][]mortier.Point
	for k := 1; k <= MaxBands; k++ {
		ring, ok := inset(outline, float64(k)*width)
		if !ok {
			break
		}
		a := mortier.SignedArea(ring)
		if a*area <= 0 || math.Abs(a) < 1e-12 {
			break
		}
		if !mortier.IsSimple(ring) {
			break
		}
		rings = append(rings, ring)
	}
	return rings
}

// inset offsets every edge of the polygon inward by d and intersects
// consecutive offset lines. It reports false if an edge reverses direction.
func inset(pts []mortier.Point, d float64) ([]mortier.Point, bool) {
	n := len(pts)
	sign := 1.0
	if mortier.SignedArea(pts) < 0 {
		sign = -1
	}
	normal := func(i int) (mortier.Point, mortier.Point) {
		dir := pts[(i+1)%n].Sub(pts[i]).Normalize()
		return dir, dir.Perp().Mul(sign * d)
	}

	out := make([]mortier.Point, n)
	for i := 0; i < n; i++ {
		prev := (i + n - 1) % n
		d1, o1 := normal(prev)
		d2, o2 := normal(i)
		p, ok := mortier.LineIntersection(pts[prev].Add(o1), d1, pts[i].Add(o2), d2)
		if !ok {
			p = pts[i].Add(o2)
		}
		out[i] = p
	}
	for i := 0; i < n; i++ {
		orig := pts[(i+1)%n].Sub(pts[i])
		moved := out[(i+1)%n].Sub(out[i])
		if orig.Dot(moved) <= 0 {
			return nil, false
		}
	}
	return out, true
}

// laces builds the corner straps of a polygon.
func laces(pts []mortier.Point, width float64, junctions *Junctions) [][]mortier.Point {
	n := len(pts)
	var strands [][]mortier.Point
	for i, v := range pts {
		if junctions != nil && junctions.Degree(v) < 2 {
			continue
		}
		prev, next := pts[(i+n-1)%n], pts[(i+1)%n]
		l := math.Min(v.Distance(prev), v.Distance(next)) / 3
		a := v.Add(prev.Sub(v).Normalize().Mul(l))
		b := v.Add(next.Sub(v).Normalize().Mul(l))

		offsets := []float64{-width / 2, width / 2}
		if width == 0 {
			offsets = offsets[:1]
		}
		nrm := b.Sub(a).Normalize().Perp()
		for _, off := range offsets {
			sa, sb := a.Add(nrm.Mul(off)), b.Add(nrm.Mul(off))
			if i%2 == 0 {
				strands = append(strands, []mortier.Point{sa, sb})
				continue
			}
			// under-crossing: leave a gap of one width around the middle
			gap := math.Min(width, sa.Distance(sb)/3) / 2
			mid := sa.Lerp(sb, 0.5)
			dir := sb.Sub(sa).Normalize()
			strands = append(strands,
				[]mortier.Point{sa, mid.Sub(dir.Mul(gap))},
				[]mortier.Point{mid.Add(dir.Mul(gap)), sb},
			)
		}
	}
	return strands
}

// Junctions counts how many tiles meet at each vertex of a tesselation.
type Junctions struct {
	ix *spatial.Index[*int]
}

// NewJunctions indexes the vertices of every outline. Vertices closer than
// a millionth of the tesselation extent are treated as one.
func NewJunctions(outlines [][]mortier.Point) *Junctions {
	var all []mortier.Point
	for _, o := range outlines {
		all = append(all, o...)
	}
	domain := mortier.Bounds(all)
	tol := 1e-6 * math.Max(math.Max(domain.Width(), domain.Height()), 1e-9)
	j := &Junctions{ix: spatial.New[*int](domain, tol)}
	for _, o := range outlines {
		for _, p := range o {
			c, _ := j.ix.FindOrInsert(p, new(int))
			*c++
		}
	}
	return j
}

// Degree returns the number of outline vertices found at p.
func (j *Junctions) Degree(p mortier.Point) int {
	c, ok := j.ix.Find(p)
	if !ok {
		return 0
	}
	return *c
}
