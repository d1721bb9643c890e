// Package penrose builds aperiodic Penrose tilings by deflation.
//
// Tilings are built from Robinson half-tiles: golden triangles for the P3
// rhombus tiling and half-kites and half-darts for the P2 tiling. After the
// last deflation round, halves that share their mirror edge are merged back
// into whole tiles.
//
// Tile counts only approach growth by Phi squared per round once merging
// dominates the count. Halves on the outer boundary have no partner and stay
// single, so the first rounds are irregular: VariantSun yields 10, 10 and 30
// tiles at depths 0, 1 and 2, and the ratio settles near 2.6 from depth 4.
package penrose

import (
	"math"
	"math/cmplx"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/internal/spatial"
)

// Phi is the golden ratio.
var Phi = (1 + math.Sqrt(5)) / 2

// mergeTolerance is the midpoint matching distance relative to the seed radius.
const mergeTolerance = 1e-9

// Variant selects the seed and substitution rules.
type Variant uint8

const (
	// VariantSun is the P3 rhombus tiling grown from a decagonal sun of ten
	// thin golden triangles.
	VariantSun Variant = iota
	// VariantStar is the P3 rhombus tiling grown from a star of five thick
	// rhombi, each split into two obtuse golden gnomons.
	VariantStar
	// VariantKiteDart is the P2 kite and dart tiling grown from a sun of ten
	// half-kites.
	VariantKiteDart
)

var variantNames = [...]string{
	VariantSun:      "sun",
	VariantStar:     "star",
	VariantKiteDart: "kite-dart",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "unknown"
}

// ParseVariant maps a variant name ("sun", "star", "kite-dart", or the
// letters "a" and "b") to a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "sun", "a", "A":
		return VariantSun, true
	case "star", "b", "B":
		return VariantStar, true
	case "kite-dart", "kitedart", "p2":
		return VariantKiteDart, true
	}
	return 0, false
}

// Params are the generation parameters of a Penrose tesselation.
type Params struct {
	Variant Variant
	// Depth is the number of deflation rounds; 0 yields the seed.
	Depth int
}

// kind is the type of a half-tile.
type kind uint8

const (
	thin kind = iota
	thick
	kite
	dart
)

// half is a Robinson half-tile. For P3 triangles A is the apex and BC the
// mirror edge; for P2 halves AB is the mirror edge.
type half struct {
	kind    kind
	a, b, c complex128
}

func (h half) mirror() (u, v, apex complex128) {
	if h.kind == kite || h.kind == dart {
		return h.a, h.b, h.c
	}
	return h.b, h.c, h.a
}

// Generate builds the Penrose tiling described by params.
func Generate(params Params, limits mortier.Limits) (*mortier.Tesselation, error) {
	const op = "penrose"
	limits = limits.OrDefault()
	if int(params.Variant) >= len(variantNames) {
		return nil, mortier.Errorf(mortier.KindInvalidParameter, op, "unknown variant %d", params.Variant)
	}
	if params.Depth < 0 {
		return nil, mortier.Errorf(mortier.KindInvalidParameter, op, "depth must be non-negative, got %d", params.Depth)
	}
	if params.Depth > limits.MaxPenroseDepth {
		return nil, mortier.Errorf(mortier.KindResourceLimitExceeded, op,
			"depth %d exceeds the limit of %d", params.Depth, limits.MaxPenroseDepth)
	}

	halves, radius := seed(params.Variant)
	if n, ok := halfCount(halves, params.Depth, limits.MaxTiles); !ok {
		return nil, mortier.Errorf(mortier.KindResourceLimitExceeded, op,
			"depth %d needs at least %d half-tiles, limit is %d", params.Depth, n, limits.MaxTiles)
	}

	for round := 0; round < params.Depth; round++ {
		halves = deflate(halves)
	}
	outlines := merge(halves, radius)

	tiles := make([]mortier.Tile, len(outlines))
	for i, outline := range outlines {
		tiles[i] = mortier.NewTile(mortier.FamilyPenrose, i, outline, nil)
	}

	mortier.Logger().Debug("penrose tesselation generated",
		"variant", params.Variant.String(), "depth", params.Depth, "halves", len(halves), "tiles", len(tiles))

	return &mortier.Tesselation{
		Family: mortier.FamilyPenrose,
		Params: params,
		Tiles:  tiles,
	}, nil
}

// seed returns the initial half-tiles of a variant and the radius of the
// patch they cover.
func seed(v Variant) ([]half, float64) {
	var halves []half
	switch v {
	case VariantSun:
		for i := 0; i < 10; i++ {
			b := cmplx.Rect(1, float64(2*i-1)*math.Pi/10)
			c := cmplx.Rect(1, float64(2*i+1)*math.Pi/10)
			if i%2 == 0 {
				b, c = c, b
			}
			halves = append(halves, half{kind: thin, a: 0, b: b, c: c})
		}
		return halves, 1
	case VariantStar:
		for k := 0; k < 5; k++ {
			theta := 2 * math.Pi * float64(k) / 5
			f := cmplx.Rect(Phi, theta)
			halves = append(halves,
				half{kind: thick, a: cmplx.Rect(1, theta-math.Pi/5), b: 0, c: f},
				half{kind: thick, a: cmplx.Rect(1, theta+math.Pi/5), b: 0, c: f},
			)
		}
		return halves, Phi
	default:
		for i := 0; i < 5; i++ {
			deg := 72 * float64(i)
			a := cmplx.Rect(1, deg*math.Pi/180)
			halves = append(halves,
				half{kind: kite, a: a, b: 0, c: cmplx.Rect(1, (deg+36)*math.Pi/180)},
				half{kind: kite, a: a, b: 0, c: cmplx.Rect(1, (deg-36)*math.Pi/180)},
			)
		}
		return halves, 1
	}
}

// halfCount predicts the number of half-tiles after depth rounds from the
// kind counts of the seed. It stops early and reports false once the count
// exceeds limit.
func halfCount(seed []half, depth, limit int) (int, bool) {
	var counts [4]int
	for _, h := range seed {
		counts[h.kind]++
	}
	total := len(seed)
	for round := 0; round < depth; round++ {
		counts = [4]int{
			thin:  counts[thin] + counts[thick],
			thick: counts[thin] + 2*counts[thick],
			kite:  2*counts[kite] + counts[dart],
			dart:  counts[kite] + counts[dart],
		}
		total = counts[thin] + counts[thick] + counts[kite] + counts[dart]
		if total > limit {
			return total, false
		}
	}
	return total, total <= limit
}

// deflate applies one substitution round.
func deflate(halves []half) []half {
	inv := complex(1/Phi, 0)
	c1 := complex(Phi-1, 0)
	c2 := complex(2-Phi, 0)

	out := make([]half, 0, 3*len(halves))
	for _, h := range halves {
		switch h.kind {
		case thin:
			p := h.a + (h.b-h.a)*inv
			out = append(out,
				half{kind: thin, a: h.c, b: p, c: h.b},
				half{kind: thick, a: p, b: h.c, c: h.a},
			)
		case thick:
			q := h.b + (h.a-h.b)*inv
			r := h.b + (h.c-h.b)*inv
			out = append(out,
				half{kind: thick, a: r, b: h.c, c: h.a},
				half{kind: thick, a: q, b: r, c: h.b},
				half{kind: thin, a: r, b: q, c: h.a},
			)
		case kite:
			d := h.a*c1 + h.b*c2
			e := h.b*c1 + h.c*c2
			out = append(out,
				half{kind: kite, a: d, b: h.c, c: h.a},
				half{kind: kite, a: d, b: h.c, c: e},
				half{kind: dart, a: h.b, b: e, c: d},
			)
		case dart:
			d := h.a*c2 + h.c*c1
			out = append(out,
				half{kind: dart, a: h.c, b: d, c: h.b},
				half{kind: kite, a: h.b, b: h.a, c: d},
			)
		}
	}
	return out
}

// merge joins halves of the same kind sharing their mirror edge into
// quadrilaterals. Each whole tile takes the position of its first half;
// unmatched halves stay triangles. Every outline is counter-clockwise.
func merge(halves []half, radius float64) [][]mortier.Point {
	domain := mortier.NewRect(-radius, -radius, 2*radius, 2*radius)
	var open [4]*spatial.Index[int]
	for k := range open {
		open[k] = spatial.New[int](domain, mergeTolerance*radius)
	}

	partner := make([]int, len(halves))
	for i := range partner {
		partner[i] = -1
	}
	for i, h := range halves {
		u, v, _ := h.mirror()
		mid := mortier.PointFromComplex((u + v) / 2)
		if j, ok := open[h.kind].Delete(mid); ok {
			partner[j], partner[i] = i, j
			continue
		}
		open[h.kind].Insert(mid, i)
	}

	var out [][]mortier.Point
	for i, h := range halves {
		j := partner[i]
		switch {
		case j < 0:
			out = append(out, mortier.OrientCCW([]mortier.Point{
				mortier.PointFromComplex(h.a), mortier.PointFromComplex(h.b), mortier.PointFromComplex(h.c),
			}))
		case j > i:
			u, v, w := h.mirror()
			_, _, w2 := halves[j].mirror()
			out = append(out, mortier.OrientCCW([]mortier.Point{
				mortier.PointFromComplex(u), mortier.PointFromComplex(w2),
				mortier.PointFromComplex(v), mortier.PointFromComplex(w),
			}))
		}
	}
	return out
}
