// Package spatial provides a tolerance-based point index.
//
// Points are bucketed into square cells at least as wide as the tolerance;
// cells are keyed by their position along a Hilbert curve so that nearby
// cells share nearby keys. A lookup scans the 3x3 cell neighbourhood and
// returns the nearest stored point within tolerance.
package spatial

import (
	"math"

	"github.com/google/hilbert"

	"github.com/gogpu/mortier"
)

// maxSide caps the number of cells along one axis.
const maxSide = 1 << 30

type entry[V any] struct {
	p mortier.Point
	v V
}

// Index maps points to values, treating points closer than the tolerance
// as equal. The zero value is not usable; create one with New.
type Index[V any] struct {
	h       *hilbert.Hilbert
	min     mortier.Point
	cell    float64
	side    int
	tol     float64
	buckets map[int][]entry[V]
	n       int
}

// New creates an index for points expected inside domain. Points outside
// the domain are still accepted; they share the border cells.
func New[V any](domain mortier.Rect, tol float64) *Index[V] {
	if tol <= 0 {
		tol = 1e-12
	}
	extent := math.Max(domain.Width(), domain.Height())
	cell := 2 * tol
	side := 1
	for side < maxSide && float64(side)*cell < extent {
		side <<= 1
	}
	if float64(side)*cell < extent {
		cell = extent / float64(side)
	}
	h, err := hilbert.NewHilbert(side)
	if err != nil {
		// side is always a positive power of two
		panic(err)
	}
	return &Index[V]{
		h:       h,
		min:     domain.Min,
		cell:    cell,
		side:    side,
		tol:     tol,
		buckets: make(map[int][]entry[V]),
	}
}

// Len returns the number of stored points.
func (ix *Index[V]) Len() int { return ix.n }

func (ix *Index[V]) coord(v, min float64) int {
	c := math.Floor((v - min) / ix.cell)
	switch {
	case math.IsNaN(c) || c < 0:
		return 0
	case c >= float64(ix.side):
		return ix.side - 1
	}
	return int(c)
}

func (ix *Index[V]) key(x, y int) int {
	k, err := ix.h.MapInverse(x, y)
	if err != nil {
		panic(err)
	}
	return k
}

// find returns the bucket key and position of the nearest point within
// tolerance, or ok=false.
func (ix *Index[V]) find(p mortier.Point) (key, pos int, ok bool) {
	cx, cy := ix.coord(p.X, ix.min.X), ix.coord(p.Y, ix.min.Y)
	best := math.Inf(1)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= ix.side || y >= ix.side {
				continue
			}
			k := ix.key(x, y)
			for i, e := range ix.buckets[k] {
				d := e.p.Distance(p)
				if d <= ix.tol && d < best {
					best, key, pos, ok = d, k, i, true
				}
			}
		}
	}
	return key, pos, ok
}

// Find returns the value stored for the nearest point within tolerance of p.
func (ix *Index[V]) Find(p mortier.Point) (V, bool) {
	k, i, ok := ix.find(p)
	if !ok {
		var zero V
		return zero, false
	}
	return ix.buckets[k][i].v, true
}

// Insert stores v at p without checking for an existing point.
func (ix *Index[V]) Insert(p mortier.Point, v V) {
	k := ix.key(ix.coord(p.X, ix.min.X), ix.coord(p.Y, ix.min.Y))
	ix.buckets[k] = append(ix.buckets[k], entry[V]{p: p, v: v})
	ix.n++
}

// FindOrInsert returns the value already stored near p with found=true, or
// stores v at p and returns it with found=false.
func (ix *Index[V]) FindOrInsert(p mortier.Point, v V) (V, bool) {
	if old, ok := ix.Find(p); ok {
		return old, true
	}
	ix.Insert(p, v)
	return v, false
}

// Delete removes the nearest point within tolerance of p and returns its value.
func (ix *Index[V]) Delete(p mortier.Point) (V, bool) {
	k, i, ok := ix.find(p)
	if !ok {
		var zero V
		return zero, false
	}
	b := ix.buckets[k]
	v := b[i].v
	b = append(b[:i], b[i+1:]...)
	if len(b) == 0 {
		delete(ix.buckets, k)
	} else {
		ix.buckets[k] = b
	}
	ix.n--
	return v, true
}
