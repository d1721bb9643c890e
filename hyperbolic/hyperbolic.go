// Package hyperbolic builds regular {p,q} tilings of the hyperbolic plane.
//
// Tiles are generated in the Poincaré disk model by breadth-first
// reflection of a seed p-gon across its edges, and optionally mapped to the
// upper half-plane model.
//
// Supported depths are 0 through MaxDepth. Past that the outermost tiles
// crowd the disk boundary, where float64 vertex means of distinct tiles fall
// within DedupTolerance of each other and the tile counts drift from the
// known tables, so deeper requests are refused whatever the Limits allow.
package hyperbolic

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/internal/spatial"
)

// DedupTolerance is the distance under which two tiles with the same vertex
// mean are considered the same tile. The known tile-count tables hold for
// any tolerance between 1e-10 and 1e-6.
const DedupTolerance = 1e-8

// MaxDepth is the deepest expansion for which deduplication is exact.
const MaxDepth = 9

// Params are the generation parameters of a hyperbolic tesselation.
type Params struct {
	// P is the number of sides of each tile.
	P int
	// Q is the number of tiles meeting at each vertex.
	Q int
	// Depth is the number of breadth-first expansion rounds; 0 yields the seed.
	Depth int
	// HalfPlane selects the upper half-plane model instead of the disk.
	HalfPlane bool
	// Refinements is the number of geodesic midpoint subdivision rounds.
	Refinements int
}

// Validate checks the parameters against the tiling rules and limits.
func (p Params) Validate(limits mortier.Limits) error {
	const op = "hyperbolic"
	if p.P <= 0 || p.Q <= 0 {
		return mortier.Errorf(mortier.KindInvalidParameter, op, "p and q must be positive, got {%d,%d}", p.P, p.Q)
	}
	if p.Depth < 0 {
		return mortier.Errorf(mortier.KindInvalidParameter, op, "depth must be non-negative, got %d", p.Depth)
	}
	if p.Refinements < 0 {
		return mortier.Errorf(mortier.KindInvalidParameter, op, "refinements must be non-negative, got %d", p.Refinements)
	}
	if (p.P-2)*(p.Q-2) <= 4 {
		return mortier.Errorf(mortier.KindInvalidGeometry, op,
			"{%d,%d} is not hyperbolic: (p-2)(q-2) = %d, need > 4", p.P, p.Q, (p.P-2)*(p.Q-2))
	}
	if p.Depth > MaxDepth {
		return mortier.Errorf(mortier.KindResourceLimitExceeded, op,
			"depth %d exceeds the supported maximum of %d", p.Depth, MaxDepth)
	}
	if p.Depth > limits.MaxHyperbolicDepth {
		return mortier.Errorf(mortier.KindResourceLimitExceeded, op,
			"depth %d exceeds the limit of %d", p.Depth, limits.MaxHyperbolicDepth)
	}
	if p.Refinements > limits.MaxRefinements {
		return mortier.Errorf(mortier.KindResourceLimitExceeded, op,
			"%d refinements exceed the limit of %d", p.Refinements, limits.MaxRefinements)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("{%d,%d} depth=%d", p.P, p.Q, p.Depth)
}

// Generate builds the {P,Q} tiling described by params.
func Generate(params Params, limits mortier.Limits) (*mortier.Tesselation, error) {
	limits = limits.OrDefault()
	if err := params.Validate(limits); err != nil {
		return nil, err
	}

	polys, err := expand(params, limits)
	if err != nil {
		return nil, err
	}

	if params.Refinements > 0 {
		points := float64(len(polys)) * float64(params.P) * math.Exp2(float64(params.Refinements))
		if points > float64(limits.MaxPoints) {
			return nil, mortier.Errorf(mortier.KindResourceLimitExceeded, "hyperbolic",
				"%.0f refined points exceed the limit of %d", points, limits.MaxPoints)
		}
		for i := range polys {
			for r := 0; r < params.Refinements; r++ {
				polys[i] = refine(polys[i])
			}
		}
	}

	var corners []int
	if params.Refinements > 0 {
		step := 1 << params.Refinements
		corners = make([]int, params.P)
		for k := range corners {
			corners[k] = k * step
		}
	}

	tiles := make([]mortier.Tile, len(polys))
	for i, poly := range polys {
		var outline []mortier.Point
		if params.HalfPlane {
			outline = toHalfPlane(poly)
		} else {
			outline = toPoints(poly)
		}
		tileCorners := corners
		if params.HalfPlane && corners != nil {
			tileCorners = reversedCorners(corners, len(outline))
		}
		tiles[i] = mortier.NewTile(mortier.FamilyHyperbolic, i, outline, tileCorners)
	}

	mortier.Logger().Debug("hyperbolic tesselation generated",
		"p", params.P, "q", params.Q, "depth", params.Depth,
		"refinements", params.Refinements, "halfPlane", params.HalfPlane, "tiles", len(tiles))

	tess := &mortier.Tesselation{
		Family: mortier.FamilyHyperbolic,
		Params: params,
		Tiles:  tiles,
	}
	if !params.HalfPlane {
		tess.Frame = mortier.NewRect(-1, -1, 2, 2)
	}
	return tess, nil
}

// seed returns the central p-gon, counter-clockwise, first vertex at angle pi/p.
func seed(p, q int) []complex128 {
	a, b := math.Pi/float64(p), math.Pi/float64(q)
	r := math.Sqrt(math.Cos(a+b) / math.Cos(a-b))
	poly := make([]complex128, p)
	for k := range poly {
		poly[k] = cmplx.Rect(r, 2*a*float64(k)+a)
	}
	return poly
}

// expand runs the breadth-first reflection rounds.
func expand(params Params, limits mortier.Limits) ([][]complex128, error) {
	s := seed(params.P, params.Q)
	polys := [][]complex128{s}
	seen := spatial.New[int](mortier.NewRect(-1, -1, 2, 2), DedupTolerance)
	seen.Insert(mean(s), 0)

	frontier := [][]complex128{s}
	for round := 0; round < params.Depth; round++ {
		// Every tile past the seed shares one edge with its parent.
		grow := len(frontier) * (params.P - 1)
		if round == 0 {
			grow = params.P
		}
		if len(polys)+grow > limits.MaxTiles {
			return nil, mortier.Errorf(mortier.KindResourceLimitExceeded, "hyperbolic",
				"round %d may reach %d tiles, limit is %d", round+1, len(polys)+grow, limits.MaxTiles)
		}

		var next [][]complex128
		for _, poly := range frontier {
			for i := range poly {
				f := reflector(poly[i], poly[(i+1)%len(poly)])
				reflected := make([]complex128, len(poly))
				for k, z := range poly {
					reflected[len(poly)-1-k] = f(z)
				}
				if _, found := seen.FindOrInsert(mean(reflected), len(polys)); found {
					continue
				}
				polys = append(polys, reflected)
				next = append(next, reflected)
			}
		}
		mortier.Logger().Debug("hyperbolic round", "round", round+1, "added", len(next), "tiles", len(polys))
		frontier = next
	}
	return polys, nil
}

// reflector returns the reflection across the geodesic through a and b: an
// inversion in the circle through a and b orthogonal to the unit circle, or a
// mirror in the line through the origin when the geodesic is a diameter.
func reflector(a, b complex128) func(complex128) complex128 {
	det := real(a)*imag(b) - imag(a)*real(b)
	if math.Abs(det) < 1e-12 {
		d := b
		if cmplx.Abs(a) > cmplx.Abs(b) {
			d = a
		}
		u := d / complex(cmplx.Abs(d), 0)
		u2 := u * u
		return func(z complex128) complex128 {
			return u2 * cmplx.Conj(z)
		}
	}
	ra := (abs2(a) + 1) / 2
	rb := (abs2(b) + 1) / 2
	c := complex((ra*imag(b)-imag(a)*rb)/det, (real(a)*rb-ra*real(b))/det)
	r2 := complex(abs2(c)-1, 0)
	return func(z complex128) complex128 {
		return c + r2/cmplx.Conj(z-c)
	}
}

// refine inserts the geodesic midpoint between consecutive vertices.
func refine(poly []complex128) []complex128 {
	out := make([]complex128, 0, 2*len(poly))
	for i, a := range poly {
		out = append(out, a, geodesicMidpoint(a, poly[(i+1)%len(poly)]))
	}
	return out
}

// geodesicMidpoint moves a to the origin, halves the hyperbolic distance to b
// along the resulting diameter and moves back.
func geodesicMidpoint(a, b complex128) complex128 {
	bb := (b - a) / (1 - cmplx.Conj(a)*b)
	r := cmplx.Abs(bb)
	if r == 0 {
		return a
	}
	m := bb * complex(1/(1+math.Sqrt(1-r*r)), 0)
	return (m + a) / (1 + cmplx.Conj(a)*m)
}

// toHalfPlane applies the Cayley map w = i(1+z)/(1-z) and flips the
// imaginary axis so the ideal boundary is at the bottom of the page. The
// flip reverses orientation, so the vertex order is reversed as well.
func toHalfPlane(poly []complex128) []mortier.Point {
	out := make([]mortier.Point, len(poly))
	for k, z := range poly {
		w := 1i * (1 + z) / (1 - z)
		out[len(poly)-1-k] = mortier.Pt(real(w), -imag(w))
	}
	return out
}

// reversedCorners remaps corner indices after an order reversal.
func reversedCorners(corners []int, n int) []int {
	out := make([]int, len(corners))
	for i, c := range corners {
		out[len(corners)-1-i] = n - 1 - c
	}
	return out
}

func toPoints(poly []complex128) []mortier.Point {
	out := make([]mortier.Point, len(poly))
	for k, z := range poly {
		out[k] = mortier.PointFromComplex(z)
	}
	return out
}

func mean(poly []complex128) mortier.Point {
	var sum complex128
	for _, z := range poly {
		sum += z
	}
	return mortier.PointFromComplex(sum / complex(float64(len(poly)), 0))
}

func abs2(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
