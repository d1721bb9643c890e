package mortier

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle given by its minimum and maximum corners.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from an origin and a size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{Min: Pt(x, y), Max: Pt(x+width, y+height)}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return r.Min.Lerp(r.Max, 0.5) }

// IsZero reports whether r is the zero Rect.
func (r Rect) IsZero() bool { return r == Rect{} }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Overlaps reports whether r and other share an area wider than eps on both axes.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect, eps float64) bool {
	return r.Max.X > other.Min.X+eps && r.Min.X < other.Max.X-eps &&
		r.Max.Y > other.Min.Y+eps && r.Min.Y < other.Max.Y-eps
}

// Contains reports whether pt lies inside r or on its boundary.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.Min.X && pt.X <= r.Max.X && pt.Y >= r.Min.Y && pt.Y <= r.Max.Y
}

// Bounds returns the bounding box of a point set. It returns the zero Rect
// for an empty set.
func Bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Viewport is the output rectangle of a rendered document, in integer
// output units.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Validate checks that the viewport has positive dimensions.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return Errorf(KindInvalidParameter, "viewport", "dimensions must be positive, got %dx%d", v.Width, v.Height)
	}
	return nil
}

// Rect returns the viewport as a floating-point rectangle.
func (v Viewport) Rect() Rect {
	return NewRect(float64(v.X), float64(v.Y), float64(v.Width), float64(v.Height))
}

// String implements fmt.Stringer.
func (v Viewport) String() string {
	return fmt.Sprintf("%d %d %d %d", v.X, v.Y, v.Width, v.Height)
}
