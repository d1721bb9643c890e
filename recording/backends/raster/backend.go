// Package raster provides a PNG preview backend for the recording system.
// It rasterizes recordings with golang.org/x/image/vector.
//
// # Supported Features
//
//   - Solid color fills and strokes
//   - Path clipping with Save/Restore
//   - Round, square and butt caps; joins are always round
//   - PNG output
//
// Groups carry no meaning in a raster image and are ignored.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/mortier/recording/backends/raster"
//
//	backend, _ := recording.NewBackend("png")
//	rec.Playback(backend)
//	backend.(recording.FileBackend).SaveToFile("preview.png")
package raster

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/recording"
)

// MediaType is the media type of images produced by the backend.
const MediaType = "image/png"

// curveSteps is the number of line segments a stroked cubic is flattened into.
const curveSteps = 16

func init() {
	recording.Register(recording.Format{
		Name:      "png",
		Extension: ".png",
		New:       func() recording.Backend { return NewBackend() },
	})
}

// Backend renders recordings to an RGBA image on a white background.
// It implements recording.Backend, recording.WriterBackend and
// recording.FileBackend.
type Backend struct {
	img    *image.RGBA
	view   mortier.Viewport
	origin mortier.Matrix // output coordinates to pixel coordinates
	z      *vector.Rasterizer
	mask   *image.Alpha
	clip   *image.Alpha // nil means unclipped
	saved  []*image.Alpha
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new raster backend.
// The backend must be initialized with Begin before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin allocates the image for the viewport.
func (b *Backend) Begin(view mortier.Viewport) error {
	if err := view.Validate(); err != nil {
		return err
	}
	b.view = view
	b.origin = mortier.Translate(-float64(view.X), -float64(view.Y))
	b.img = image.NewRGBA(image.Rect(0, 0, view.Width, view.Height))
	draw.Draw(b.img, b.img.Bounds(), image.White, image.Point{}, draw.Src)
	b.z = vector.NewRasterizer(view.Width, view.Height)
	b.mask = image.NewAlpha(b.img.Bounds())
	b.clip = nil
	b.saved = b.saved[:0]
	return nil
}

// End finalizes the rendering.
func (b *Backend) End() error {
	return nil
}

// Save pushes the current clip.
func (b *Backend) Save() {
	b.saved = append(b.saved, b.clip)
}

// Restore pops the clip saved by the matching Save.
func (b *Backend) Restore() {
	if len(b.saved) == 0 {
		return
	}
	b.clip = b.saved[len(b.saved)-1]
	b.saved = b.saved[:len(b.saved)-1]
}

// SetClip intersects the clip with the given path.
func (b *Backend) SetClip(path *mortier.Path) {
	if path == nil {
		return
	}
	b.z.Reset(b.view.Width, b.view.Height)
	b.addPath(path)
	next := image.NewAlpha(b.img.Bounds())
	b.z.Draw(next, next.Bounds(), image.Opaque, image.Point{})
	if b.clip != nil {
		multiply(next, b.clip)
	}
	b.clip = next
}

// ClearClip removes the clip.
func (b *Backend) ClearClip() {
	b.clip = nil
}

// BeginGroup is a no-op.
func (b *Backend) BeginGroup(string) {}

// EndGroup is a no-op.
func (b *Backend) EndGroup() {}

// FillPath fills the given path with the brush.
func (b *Backend) FillPath(path *mortier.Path, brush recording.Brush) {
	if path == nil || path.IsEmpty() {
		return
	}
	b.z.Reset(b.view.Width, b.view.Height)
	b.addPath(path)
	b.paint(brush)
}

// StrokePath strokes the given path. Each segment is expanded to a quad and
// every vertex gets a round join.
func (b *Backend) StrokePath(path *mortier.Path, brush recording.Brush, stroke recording.Stroke) {
	if path == nil || path.IsEmpty() || stroke.Width <= 0 {
		return
	}
	half := stroke.Width / 2
	b.z.Reset(b.view.Width, b.view.Height)
	for _, poly := range flatten(path) {
		pts := b.origin.TransformPoints(poly.pts)
		for i := 0; i+1 < len(pts); i++ {
			b.addSegment(pts[i], pts[i+1], half)
		}
		for i, p := range pts {
			end := !poly.closed && (i == 0 || i == len(pts)-1)
			switch {
			case !end:
				b.addDisc(p, half)
			case stroke.Cap == recording.LineCapRound:
				b.addDisc(p, half)
			case stroke.Cap == recording.LineCapSquare:
				b.addSquareCap(pts, i, half)
			}
		}
	}
	b.paint(brush)
}

// MediaType returns "image/png".
func (b *Backend) MediaType() string {
	return MediaType
}

// WriteTo writes the rendered image as PNG to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SaveToFile saves the rendered image as PNG to a file.
func (b *Backend) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Image returns the rendered image.
func (b *Backend) Image() image.Image {
	return b.img
}

// paint composites the rasterizer coverage, clipped, with the brush color.
func (b *Backend) paint(brush recording.Brush) {
	clear(b.mask.Pix)
	b.z.Draw(b.mask, b.mask.Bounds(), image.Opaque, image.Point{})
	if b.clip != nil {
		multiply(b.mask, b.clip)
	}
	c := recording.BrushColor(brush).NRGBA()
	draw.DrawMask(b.img, b.img.Bounds(), &image.Uniform{C: c}, image.Point{}, b.mask, image.Point{}, draw.Over)
}

// addPath adds the path to the rasterizer in pixel coordinates.
func (b *Backend) addPath(path *mortier.Path) {
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case mortier.MoveTo:
			p := b.origin.TransformPoint(e.Point)
			b.z.MoveTo(float32(p.X), float32(p.Y))
		case mortier.LineTo:
			p := b.origin.TransformPoint(e.Point)
			b.z.LineTo(float32(p.X), float32(p.Y))
		case mortier.CubicTo:
			c1 := b.origin.TransformPoint(e.Control1)
			c2 := b.origin.TransformPoint(e.Control2)
			p := b.origin.TransformPoint(e.Point)
			b.z.CubeTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(p.X), float32(p.Y))
		case mortier.Close:
			b.z.ClosePath()
		}
	}
}

// addPolygon adds a closed polygon with a consistent orientation, so that
// overlapping stroke pieces accumulate instead of cancelling.
func (b *Backend) addPolygon(pts []mortier.Point) {
	pts = mortier.OrientCCW(pts)
	b.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		b.z.LineTo(float32(p.X), float32(p.Y))
	}
	b.z.ClosePath()
}

func (b *Backend) addSegment(p, q mortier.Point, half float64) {
	d := q.Sub(p)
	if d.Length() == 0 {
		return
	}
	n := d.Normalize().Perp().Mul(half)
	b.addPolygon([]mortier.Point{p.Add(n), q.Add(n), q.Sub(n), p.Sub(n)})
}

func (b *Backend) addDisc(c mortier.Point, r float64) {
	const n = 16
	pts := make([]mortier.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / n
		pts[i] = mortier.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	b.addPolygon(pts)
}

// addSquareCap extends the end segment at pts[i] by half the width.
func (b *Backend) addSquareCap(pts []mortier.Point, i int, half float64) {
	if len(pts) < 2 {
		return
	}
	var p, q mortier.Point
	if i == 0 {
		p, q = pts[1], pts[0]
	} else {
		p, q = pts[i-1], pts[i]
	}
	d := q.Sub(p)
	if d.Length() == 0 {
		return
	}
	b.addSegment(q, q.Add(d.Normalize().Mul(half)), half)
}

type polyline struct {
	pts    []mortier.Point
	closed bool
}

// flatten converts a path into polylines, splitting cubics into line segments.
func flatten(path *mortier.Path) []polyline {
	var out []polyline
	var cur polyline
	flush := func() {
		if len(cur.pts) > 0 {
			out = append(out, cur)
		}
		cur = polyline{}
	}
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case mortier.MoveTo:
			flush()
			cur.pts = append(cur.pts, e.Point)
		case mortier.LineTo:
			cur.pts = append(cur.pts, e.Point)
		case mortier.CubicTo:
			if len(cur.pts) == 0 {
				cur.pts = append(cur.pts, e.Point)
				continue
			}
			p0 := cur.pts[len(cur.pts)-1]
			for k := 1; k <= curveSteps; k++ {
				cur.pts = append(cur.pts, cubicAt(p0, e.Control1, e.Control2, e.Point, float64(k)/curveSteps))
			}
		case mortier.Close:
			if len(cur.pts) > 1 {
				cur.pts = append(cur.pts, cur.pts[0])
				cur.closed = true
			}
			start := cur.pts
			flush()
			if len(start) > 0 {
				cur.pts = append(cur.pts, start[0])
			}
		}
	}
	flush()
	// A bare Close leaves a one-point polyline behind; drop those.
	kept := out[:0]
	for _, pl := range out {
		if len(pl.pts) > 1 || pl.closed {
			kept = append(kept, pl)
		}
	}
	return kept
}

func cubicAt(p0, p1, p2, p3 mortier.Point, t float64) mortier.Point {
	u := 1 - t
	return p0.Mul(u * u * u).
		Add(p1.Mul(3 * u * u * t)).
		Add(p2.Mul(3 * u * t * t)).
		Add(p3.Mul(t * t * t))
}

// multiply scales dst coverage by src coverage.
func multiply(dst, src *image.Alpha) {
	for i, a := range src.Pix {
		dst.Pix[i] = uint8(uint16(dst.Pix[i]) * uint16(a) / 0xff)
	}
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
