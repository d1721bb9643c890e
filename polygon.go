package mortier

import "math"

// Polygon helpers. Polygons are plain point slices with an implicit closing
// edge from the last point back to the first.

// areaEpsilon is the smallest absolute area a polygon may have before it is
// considered degenerate.
const areaEpsilon = 1e-12

// SignedArea returns the shoelace area of the polygon.
// Positive for counter-clockwise order in a y-up frame.
func SignedArea(pts []Point) float64 {
	var area float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	return area / 2
}

// Centroid returns the area centroid of the polygon. Degenerate polygons
// fall back to the vertex mean.
func Centroid(pts []Point) Point {
	a := SignedArea(pts)
	if math.Abs(a) < areaEpsilon {
		return VertexMean(pts)
	}
	var cx, cy float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		f := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * f
		cy += (p.Y + q.Y) * f
	}
	return Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

// VertexMean returns the arithmetic mean of the points.
func VertexMean(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Div(float64(len(pts)))
}

// Reversed returns a reversed copy of pts.
func Reversed(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// OrientCCW returns a copy of pts in counter-clockwise order.
func OrientCCW(pts []Point) []Point {
	if SignedArea(pts) < 0 {
		return Reversed(pts)
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

// Winding returns the winding number of pt relative to the polygon.
// 0 = outside, non-zero = inside.
func Winding(pts []Point, pt Point) int {
	var winding int
	for i, p := range pts {
		winding += lineWinding(p, pts[(i+1)%len(pts)], pt)
	}
	return winding
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// Contains reports whether pt is inside the polygon (non-zero rule).
func Contains(pts []Point, pt Point) bool {
	return Winding(pts, pt) != 0
}

// SegmentDistance returns the distance from pt to the segment a-b.
func SegmentDistance(pt, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return pt.Distance(a)
	}
	t := math.Max(0, math.Min(1, pt.Sub(a).Dot(ab)/l2))
	return pt.Distance(a.Add(ab.Mul(t)))
}

// OnBoundary reports whether pt lies within tol of any polygon edge.
func OnBoundary(pts []Point, pt Point, tol float64) bool {
	for i, p := range pts {
		if SegmentDistance(pt, p, pts[(i+1)%len(pts)]) <= tol {
			return true
		}
	}
	return false
}

// ContainsStrict reports whether pt is inside the polygon and farther than
// tol from its boundary.
func ContainsStrict(pts []Point, pt Point, tol float64) bool {
	return Contains(pts, pt) && !OnBoundary(pts, pt, tol)
}

// SegmentsCross reports whether the open segments a-b and c-d properly
// intersect. Touching endpoints and collinear overlap do not count.
func SegmentsCross(a, b, c, d Point) bool {
	d1 := isLeft(c, d, a)
	d2 := isLeft(c, d, b)
	d3 := isLeft(a, b, c)
	d4 := isLeft(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// IsSimple reports whether no two non-adjacent edges of the polygon cross.
func IsSimple(pts []Point) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if SegmentsCross(a, b, pts[j], pts[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

// LineIntersection intersects the lines p+t*r and q+u*s. It reports false
// for parallel lines.
func LineIntersection(p, r, q, s Point) (Point, bool) {
	den := r.Cross(s)
	if math.Abs(den) < 1e-12 {
		return Point{}, false
	}
	t := q.Sub(p).Cross(s) / den
	return p.Add(r.Mul(t)), true
}

// ValidatePolygon checks the geometric invariants of a tile outline: at least
// three finite points, no zero-length edge and a non-zero area.
func ValidatePolygon(op string, pts []Point) error {
	if len(pts) < 3 {
		return Errorf(KindInvalidGeometry, op, "polygon has %d points, need at least 3", len(pts))
	}
	for i, p := range pts {
		if !p.IsFinite() {
			return Errorf(KindInvalidGeometry, op, "point %d is not finite", i)
		}
		if p == pts[(i+1)%len(pts)] {
			return Errorf(KindInvalidGeometry, op, "points %d and %d coincide", i, (i+1)%len(pts))
		}
	}
	if math.Abs(SignedArea(pts)) < areaEpsilon {
		return Errorf(KindInvalidGeometry, op, "polygon has zero area")
	}
	return nil
}
