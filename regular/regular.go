// Package regular replicates a base pattern on its lattice across a viewport.
package regular

import (
	"math"

	"github.com/gogpu/mortier"
)

// overlapEpsilon is the minimum overlap, in output units, a tile's bounding
// box must share with the viewport to be kept.
const overlapEpsilon = 1e-9

// Params records the generation parameters of a regular tesselation.
type Params struct {
	PatternID string
	// Scale is the number of T1 translations spanning the viewport width.
	Scale int
	Angle float64
}

// Generate replicates pattern across vp. The pattern is scaled so that scale
// copies of its first lattice vector span the viewport width, rotated by angle
// around the viewport centre, and every tile whose bounding box overlaps the
// viewport is emitted, row by row.
//
// The returned tesselation lives in output coordinates and its Frame is the
// viewport itself.
func Generate(pattern mortier.Pattern, vp mortier.Viewport, scale int, angle float64, limits mortier.Limits) (*mortier.Tesselation, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, mortier.Errorf(mortier.KindInvalidParameter, "regular", "scale must be positive, got %d", scale)
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return nil, mortier.Errorf(mortier.KindInvalidParameter, "regular", "angle must be finite")
	}
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	limits = limits.OrDefault()

	view := vp.Rect()
	s := view.Width() / (float64(scale) * pattern.T1.Length())
	c := view.Center()
	m := mortier.Translate(c.X, c.Y).Multiply(mortier.Rotate(angle)).Multiply(mortier.Scale(s, s))
	inv := mortier.Scale(1/s, 1/s).Multiply(mortier.Rotate(-angle)).Multiply(mortier.Translate(-c.X, -c.Y))

	cells := newCells(pattern)
	a0, a1, b0, b1 := cells.indexRange(inv, view)
	// Counted in float64: the index box of a huge scale overflows int.
	n := (a1 - a0 + 1) * (b1 - b0 + 1) * float64(len(pattern.Tiles))
	if !(n <= float64(limits.MaxTiles)) {
		return nil, mortier.Errorf(mortier.KindResourceLimitExceeded, "regular",
			"%.0f candidate tiles exceed the limit of %d", n, limits.MaxTiles)
	}
	i0, i1, j0, j1 := int(a0), int(a1), int(b0), int(b1)
	candidates := int(n)

	tiles := make([]mortier.Tile, 0, candidates)
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			off := pattern.T1.Mul(float64(i)).Add(pattern.T2.Mul(float64(j)))
			for _, base := range cells.tiles {
				outline := make([]mortier.Point, len(base))
				for k, p := range base {
					outline[k] = m.TransformPoint(p.Add(off))
				}
				if !mortier.Bounds(outline).Overlaps(view, overlapEpsilon) {
					continue
				}
				tiles = append(tiles, mortier.NewTile(mortier.FamilyRegular, len(tiles), outline, nil))
			}
		}
	}

	mortier.Logger().Debug("regular tesselation generated",
		"pattern", pattern.ID, "scale", scale, "candidates", candidates, "tiles", len(tiles))

	return &mortier.Tesselation{
		Family: mortier.FamilyRegular,
		Params: Params{PatternID: pattern.ID, Scale: scale, Angle: angle},
		Tiles:  tiles,
		Frame:  view,
	}, nil
}

// cells holds the pattern tiles, counter-clockwise, with their extent in
// lattice coordinates.
type cells struct {
	t1, t2     mortier.Point
	tiles      [][]mortier.Point
	amin, amax float64
	bmin, bmax float64
}

func newCells(p mortier.Pattern) *cells {
	c := &cells{
		t1:   p.T1,
		t2:   p.T2,
		amin: math.Inf(1), amax: math.Inf(-1),
		bmin: math.Inf(1), bmax: math.Inf(-1),
	}
	for _, tile := range p.Tiles {
		tile = mortier.OrientCCW(tile)
		c.tiles = append(c.tiles, tile)
		for _, v := range tile {
			a, b := c.lattice(v)
			c.amin, c.amax = math.Min(c.amin, a), math.Max(c.amax, a)
			c.bmin, c.bmax = math.Min(c.bmin, b), math.Max(c.bmax, b)
		}
	}
	return c
}

// lattice returns the coordinates of p in the basis (t1, t2).
func (c *cells) lattice(p mortier.Point) (a, b float64) {
	cr := c.t1.Cross(c.t2)
	return p.Cross(c.t2) / cr, c.t1.Cross(p) / cr
}

// indexRange returns the lattice index box whose cells may reach the
// viewport, given the inverse placement transform. The bounds are integral
// but returned as float64 so callers can size the box before converting.
func (c *cells) indexRange(inv mortier.Matrix, view mortier.Rect) (i0, i1, j0, j1 float64) {
	amin, amax := math.Inf(1), math.Inf(-1)
	bmin, bmax := math.Inf(1), math.Inf(-1)
	for _, corner := range []mortier.Point{
		view.Min, {X: view.Max.X, Y: view.Min.Y}, view.Max, {X: view.Min.X, Y: view.Max.Y},
	} {
		a, b := c.lattice(inv.TransformPoint(corner))
		amin, amax = math.Min(amin, a), math.Max(amax, a)
		bmin, bmax = math.Min(bmin, b), math.Max(bmax, b)
	}
	return math.Floor(amin - c.amax), math.Ceil(amax - c.amin),
		math.Floor(bmin - c.bmax), math.Ceil(bmax - c.bmin)
}
