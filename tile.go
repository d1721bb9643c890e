package mortier

import (
	"strconv"

	"github.com/google/uuid"
)

// Family identifies the tiling family a tesselation was generated from.
type Family uint8

const (
	FamilyRegular Family = iota + 1
	FamilyHyperbolic
	FamilyPenrose
)

// String returns the lowercase family name.
func (f Family) String() string {
	switch f {
	case FamilyRegular:
		return "regular"
	case FamilyHyperbolic:
		return "hyperbolic"
	case FamilyPenrose:
		return "penrose"
	}
	return "Family(" + strconv.Itoa(int(f)) + ")"
}

// tileNamespace is the UUIDv5 namespace of tile identifiers.
var tileNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/gogpu/mortier/tile"))

// NewTileID returns the deterministic identifier of the seq-th tile of a
// tesselation of the given family.
func NewTileID(f Family, seq int) uuid.UUID {
	return uuid.NewSHA1(tileNamespace, []byte(f.String()+"/"+strconv.Itoa(seq)))
}

// Tile is one polygon of a tesselation.
type Tile struct {
	ID uuid.UUID
	// Outline is the closed polygon, counter-clockwise in the generation frame.
	Outline []Point
	// Corners indexes the true polygon corners inside Outline. Nil means every
	// outline point is a corner.
	Corners  []int
	Centroid Point
	// Angle is the draw angle in radians, set by angle assignment.
	Angle float64
}

// NewTile builds the seq-th tile of a tesselation, computing its identifier
// and centroid. The outline is taken over, not copied.
func NewTile(f Family, seq int, outline []Point, corners []int) Tile {
	return Tile{
		ID:       NewTileID(f, seq),
		Outline:  outline,
		Corners:  corners,
		Centroid: Centroid(outline),
	}
}

// CornerPoints returns the true corners of the tile in outline order.
func (t Tile) CornerPoints() []Point {
	if t.Corners == nil {
		return t.Outline
	}
	out := make([]Point, len(t.Corners))
	for i, idx := range t.Corners {
		out[i] = t.Outline[idx]
	}
	return out
}

// Tesselation is the ordered tile list produced by one generator call.
type Tesselation struct {
	Family Family
	// Params is the family-specific parameter value the tiles were generated from.
	Params any
	Tiles  []Tile
	// Frame is the generation-space rectangle fitted into the viewport. The
	// zero Rect means the bounding box of all tiles.
	Frame Rect
}

// Bounds returns the bounding box of all tile outlines.
func (t *Tesselation) Bounds() Rect {
	var r Rect
	for i, tile := range t.Tiles {
		b := Bounds(tile.Outline)
		if i == 0 {
			r = b
			continue
		}
		r = r.Union(b)
	}
	return r
}

// FitFrame returns Frame, or the tile bounding box when Frame is zero.
func (t *Tesselation) FitFrame() Rect {
	if !t.Frame.IsZero() {
		return t.Frame
	}
	return t.Bounds()
}

// WithAngles returns a copy of the tesselation whose tiles carry the given
// angles. Outlines are shared with the receiver and must not be modified.
func (t *Tesselation) WithAngles(angles []float64) *Tesselation {
	out := &Tesselation{Family: t.Family, Params: t.Params, Frame: t.Frame}
	out.Tiles = make([]Tile, len(t.Tiles))
	copy(out.Tiles, t.Tiles)
	for i := range out.Tiles {
		out.Tiles[i].Angle = angles[i]
	}
	return out
}
