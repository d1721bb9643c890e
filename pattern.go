package mortier

import (
	"math"
	"strconv"
)

// Pattern is a base regular-tiling definition: the tiles of one lattice
// cell and the two lattice translation vectors.
type Pattern struct {
	ID   string
	Name string
	T1   Point
	T2   Point
	// Tiles are the cell's polygons in pattern units.
	Tiles [][]Point
}

// Validate checks that the pattern can be replicated.
func (p Pattern) Validate() error {
	op := "pattern " + p.ID
	if len(p.Tiles) == 0 {
		return Errorf(KindInvalidGeometry, op, "no tiles")
	}
	if math.Abs(p.T1.Cross(p.T2)) < 1e-12 || !p.T1.IsFinite() || !p.T2.IsFinite() {
		return Errorf(KindInvalidGeometry, op, "lattice vectors %v and %v are collinear", p.T1, p.T2)
	}
	for i, tile := range p.Tiles {
		if err := ValidatePolygon(op+" tile "+strconv.Itoa(i), tile); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the pattern.
func (p Pattern) Clone() Pattern {
	out := p
	out.Tiles = make([][]Point, len(p.Tiles))
	for i, tile := range p.Tiles {
		out.Tiles[i] = append([]Point(nil), tile...)
	}
	return out
}
