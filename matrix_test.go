package mortier

import (
	"math"
	"testing"
)

func approxPoint(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -2), Pt(1, 1), Pt(11, -1)},
		{"scale", Scale(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotate 90", Rotate(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"translate after scale", Translate(5, 5).Multiply(Scale(2, 2)), Pt(1, 1), Pt(7, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.in); !approxPoint(got, tt.want, 1e-12) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(3, 7).Multiply(Rotate(0.7)).Multiply(Scale(2.5, 2.5))
	p := Pt(-1.25, 4)
	if got := m.Invert().TransformPoint(m.TransformPoint(p)); !approxPoint(got, p, 1e-9) {
		t.Errorf("Invert round trip = %v, want %v", got, p)
	}
	if !Scale(0, 0).Invert().IsIdentity() {
		t.Error("Invert of a singular matrix should be the identity")
	}
	if got := m.ScaleFactor(); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("ScaleFactor() = %v, want 2.5", got)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name   string
		frame  Rect
		dst    Rect
		corner Point
		want   Point
	}{
		{"disk into square", NewRect(-1, -1, 2, 2), NewRect(0, 0, 100, 100), Pt(-1, -1), Pt(0, 0)},
		{"disk into wide", NewRect(-1, -1, 2, 2), NewRect(0, 0, 200, 100), Pt(1, 1), Pt(150, 100)},
		{"identity", NewRect(0, 0, 80, 60), NewRect(0, 0, 80, 60), Pt(80, 60), Pt(80, 60)},
		{"offset viewport", NewRect(0, 0, 1, 1), NewRect(10, 20, 50, 50), Pt(0, 0), Pt(10, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Fit(tt.frame, tt.dst)
			if got := m.TransformPoint(tt.corner); !approxPoint(got, tt.want, 1e-9) {
				t.Errorf("Fit().TransformPoint(%v) = %v, want %v", tt.corner, got, tt.want)
			}
			if c := m.TransformPoint(tt.frame.Center()); !approxPoint(c, tt.dst.Center(), 1e-9) {
				t.Errorf("frame centre maps to %v, want %v", c, tt.dst.Center())
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	tests := []struct {
		other Rect
		want  bool
	}{
		{NewRect(5, 5, 10, 10), true},
		{NewRect(10, 0, 5, 5), false},
		{NewRect(-5, -5, 5, 20), false},
		{NewRect(2, 2, 1, 1), true},
	}
	for _, tt := range tests {
		if got := r.Overlaps(tt.other, 1e-9); got != tt.want {
			t.Errorf("Overlaps(%v) = %v, want %v", tt.other, got, tt.want)
		}
	}
	if b := Bounds([]Point{{1, 5}, {-2, 3}, {4, -1}}); b != (Rect{Min: Pt(-2, -1), Max: Pt(4, 5)}) {
		t.Errorf("Bounds() = %v", b)
	}
}
