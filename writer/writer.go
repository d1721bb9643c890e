// Package writer renders tesselations to vector documents.
package writer

import (
	"bytes"
	"strconv"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/hatch"
	"github.com/gogpu/mortier/ornament"
	"github.com/gogpu/mortier/recording"

	// The SVG backend is the default output format.
	_ "github.com/gogpu/mortier/recording/backends/svg"
)

// DefaultFormat is the backend used when no format is configured.
const DefaultFormat = "svg"

// Document is a rendered tesselation.
type Document struct {
	Format    string
	MediaType string
	Viewport  mortier.Viewport
	Data      []byte
}

// Writer renders tesselations with a fixed configuration.
// A Writer is immutable and safe for concurrent use.
type Writer struct {
	opts options
}

// New creates a Writer. Invalid options are rejected with an
// InvalidParameter error.
func New(opts ...Option) (*Writer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &Writer{opts: o}, nil
}

// Format returns the configured backend name.
func (w *Writer) Format() string {
	return w.opts.format
}

// Write renders tess into the viewport.
func (w *Writer) Write(tess *mortier.Tesselation, vp mortier.Viewport) (*Document, error) {
	rec, err := w.Record(tess, vp)
	if err != nil {
		return nil, err
	}
	backend, err := recording.NewBackend(w.opts.format)
	if err != nil {
		return nil, err
	}
	wb, ok := backend.(recording.WriterBackend)
	if !ok {
		return nil, mortier.Errorf(mortier.KindInvalidParameter, "writer", "backend %q cannot serialize", w.opts.format)
	}
	if err := rec.Playback(wb); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		return nil, err
	}

	mortier.Logger().Debug("writer: document written",
		"format", w.opts.format, "tiles", len(tess.Tiles), "bytes", buf.Len())
	return &Document{
		Format:    w.opts.format,
		MediaType: wb.MediaType(),
		Viewport:  vp,
		Data:      buf.Bytes(),
	}, nil
}

// Record draws tess into a recording without choosing a backend. The frame
// of the tesselation is fitted into the viewport and content is clipped to
// it. Each tile becomes a group "tile-<id>" holding its outline, its hatch
// fill and its ornament, in that order.
func (w *Writer) Record(tess *mortier.Tesselation, vp mortier.Viewport) (*recording.Recording, error) {
	const op = "writer"
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	if tess == nil {
		return nil, mortier.Errorf(mortier.KindInvalidParameter, op, "nil tesselation")
	}

	fit := mortier.Fit(tess.FitFrame(), vp.Rect())
	outlines := make([][]mortier.Point, len(tess.Tiles))
	for i, t := range tess.Tiles {
		outlines[i] = fit.TransformPoints(t.Outline)
		if err := mortier.ValidatePolygon(op+" tile "+strconv.Itoa(i), outlines[i]); err != nil {
			return nil, err
		}
	}
	var junctions *ornament.Junctions
	if w.opts.ornament.Kind == ornament.Laces {
		junctions = ornament.NewJunctions(outlines)
	}

	rec := recording.NewRecorder(vp)
	rec.ClipViewport()
	rec.SetColor(w.opts.color)
	rec.SetLineWidth(w.opts.lineWidth)
	rec.SetLineJoin(recording.LineJoinRound)

	budget := w.opts.hatchBudget
	for i, t := range tess.Tiles {
		rec.BeginGroup("tile-" + t.ID.String())

		rec.SetTransform(fit)
		rec.DrawPolygon(t.Outline)
		rec.Stroke()

		// hatch and ornament geometry is computed in output coordinates
		rec.Save()
		rec.SetTransform(mortier.Identity())
		if err := w.drawHatch(rec, outlines[i], t.Angle, &budget); err != nil {
			return nil, err
		}
		if err := w.drawOrnament(rec, outlines[i], t.Corners, junctions); err != nil {
			return nil, err
		}
		rec.Restore()

		rec.EndGroup()
	}
	return rec.FinishRecording(), nil
}

// drawHatch fills one tile and charges its primitives to the remaining
// document budget.
func (w *Writer) drawHatch(rec *recording.Recorder, outline []mortier.Point, tileAngle float64, budget *int) error {
	fill, err := hatch.GenerateBudget(outline, w.opts.hatch, tileAngle, *budget)
	if err != nil {
		return err
	}
	*budget -= fill.Count()
	for _, s := range fill.Lines {
		rec.DrawLine(s.A, s.B)
	}
	rec.Stroke()
	for _, d := range fill.Dots {
		rec.DrawCircle(d.X, d.Y, w.opts.dotRadius)
	}
	rec.Fill()
	return nil
}

func (w *Writer) drawOrnament(rec *recording.Recorder, outline []mortier.Point, corners []int, junctions *ornament.Junctions) error {
	overlay, err := ornament.Render(outline, corners, w.opts.ornament, junctions)
	if err != nil {
		return err
	}
	for _, ring := range overlay.Rings {
		rec.DrawPolygon(ring)
	}
	rec.Stroke()
	if len(overlay.Strands) > 0 {
		rec.SetLineCap(recording.LineCapRound)
		for _, s := range overlay.Strands {
			rec.DrawPolyline(s)
		}
		rec.Stroke()
	}
	return nil
}
