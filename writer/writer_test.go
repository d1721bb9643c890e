package writer

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/hatch"
	"github.com/gogpu/mortier/ornament"

	_ "github.com/gogpu/mortier/recording/backends/raster"
)

func squareTess(frame mortier.Rect, squares ...mortier.Rect) *mortier.Tesselation {
	tess := &mortier.Tesselation{Family: mortier.FamilyRegular, Frame: frame}
	for i, r := range squares {
		outline := []mortier.Point{r.Min, {X: r.Max.X, Y: r.Min.Y}, r.Max, {X: r.Min.X, Y: r.Max.Y}}
		tess.Tiles = append(tess.Tiles, mortier.NewTile(mortier.FamilyRegular, i, outline, nil))
	}
	return tess
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero line width", WithLineWidth(0)},
		{"negative dot radius", WithDotRadius(-1)},
		{"bad color", WithColor(mortier.Color{R: 300})},
		{"unknown format", WithFormat("pdf")},
		{"bad hatch", WithHatch(hatch.Spec{Kind: hatch.Line, Spacing: 0})},
		{"bad ornament", WithOrnament(ornament.Spec{Kind: ornament.Bands, Width: -1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			if !errors.Is(err, mortier.ErrInvalidParameter) {
				t.Errorf("New() error = %v, want InvalidParameter", err)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if w.Format() != "svg" {
		t.Errorf("Format() = %q, want svg", w.Format())
	}
}

// svgRoot is the subset of the SVG root element checked by the tests.
type svgRoot struct {
	Width   string `xml:"width,attr"`
	Height  string `xml:"height,attr"`
	ViewBox string `xml:"viewBox,attr"`
}

func TestWriteRoot(t *testing.T) {
	w, _ := New()
	vp := mortier.Viewport{X: 10, Y: 20, Width: 300, Height: 200}
	doc, err := w.Write(squareTess(mortier.Rect{}, mortier.NewRect(0, 0, 1, 1)), vp)
	if err != nil {
		t.Fatal(err)
	}
	if doc.MediaType != "image/svg+xml" || doc.Format != "svg" || doc.Viewport != vp {
		t.Errorf("document header = %q %q %v", doc.Format, doc.MediaType, doc.Viewport)
	}

	var root svgRoot
	if err := xml.Unmarshal(doc.Data, &root); err != nil {
		t.Fatalf("invalid SVG: %v", err)
	}
	if root.Width != "300" || root.Height != "200" || root.ViewBox != "10 20 300 200" {
		t.Errorf("root = %+v", root)
	}
}

// pathNumbers returns every coordinate pair of every tile path in the document.
func pathNumbers(t *testing.T, data []byte) []mortier.Point {
	t.Helper()
	var pts []mortier.Point
	dec := xml.NewDecoder(bytes.NewReader(data))
	inClip := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("invalid SVG: %v", err)
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "clipPath" {
				inClip = true
			}
			if se.Name.Local != "path" || inClip {
				continue
			}
			for _, a := range se.Attr {
				if a.Name.Local != "d" {
					continue
				}
				f := strings.FieldsFunc(a.Value, func(r rune) bool {
					return r == ' ' || r == 'M' || r == 'L' || r == 'C' || r == 'Z'
				})
				for i := 0; i+1 < len(f); i += 2 {
					x, _ := strconv.ParseFloat(f[i], 64)
					y, _ := strconv.ParseFloat(f[i+1], 64)
					pts = append(pts, mortier.Pt(x, y))
				}
			}
		case xml.EndElement:
			if se.Name.Local == "clipPath" {
				inClip = false
			}
		}
	}
	return pts
}

func TestWriteFitsViewport(t *testing.T) {
	w, _ := New()
	vp := mortier.Viewport{Width: 200, Height: 100}
	tess := squareTess(mortier.Rect{},
		mortier.NewRect(-3, -3, 2, 2), mortier.NewRect(1, 1, 2, 2))

	doc, err := w.Write(tess, vp)
	if err != nil {
		t.Fatal(err)
	}
	got := mortier.Bounds(pathNumbers(t, doc.Data))
	// The 6x6 tile box is scaled by 100/6 and centred horizontally.
	want := mortier.NewRect(50, 0, 100, 100)
	const eps = 1e-2
	if d := got.Min.Distance(want.Min) + got.Max.Distance(want.Max); d > eps {
		t.Errorf("drawing bounds = %v, want %v", got, want)
	}
}

func TestWriteGroupsPerTile(t *testing.T) {
	w, _ := New()
	tess := squareTess(mortier.Rect{}, mortier.NewRect(0, 0, 1, 1), mortier.NewRect(1, 0, 1, 1), mortier.NewRect(2, 0, 1, 1))
	doc, err := w.Write(tess, mortier.Viewport{Width: 30, Height: 10})
	if err != nil {
		t.Fatal(err)
	}
	s := string(doc.Data)
	for _, tile := range tess.Tiles {
		if !strings.Contains(s, `<g id="tile-`+tile.ID.String()+`">`) {
			t.Errorf("missing group for tile %s", tile.ID)
		}
	}
	if n := strings.Count(s, `<g id="tile-`); n != 3 {
		t.Errorf("got %d tile groups, want 3", n)
	}
}

func TestWriteHatchDots(t *testing.T) {
	w, err := New(WithHatch(hatch.Spec{Kind: hatch.Dot, Spacing: 5}), WithDotRadius(0.5))
	if err != nil {
		t.Fatal(err)
	}
	frame := mortier.NewRect(0, 0, 10, 10)
	doc, err := w.Write(squareTess(frame, frame), mortier.Viewport{Width: 10, Height: 10})
	if err != nil {
		t.Fatal(err)
	}
	s := string(doc.Data)
	i := strings.Index(s, `" fill="#000000"`)
	if i < 0 {
		t.Fatalf("no filled dots in:\n%s", s)
	}
	line := s[strings.LastIndex(s[:i], "<path"):i]
	if n := strings.Count(line, "M"); n != 4 {
		t.Errorf("got %d dots, want 4", n)
	}
}

func TestWriteHatchBudgetSpansDocument(t *testing.T) {
	// three 10x10 tiles with 10 scanlines each
	tess := squareTess(mortier.Rect{}, mortier.NewRect(0, 0, 1, 1), mortier.NewRect(1, 0, 1, 1), mortier.NewRect(2, 0, 1, 1))
	vp := mortier.Viewport{Width: 30, Height: 10}
	spec := hatch.Spec{Kind: hatch.Line, Spacing: 1}

	w, err := New(WithHatch(spec), WithLimits(mortier.Limits{MaxHatchPrimitives: 25}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(tess, vp); !errors.Is(err, mortier.ErrResourceLimit) {
		t.Errorf("Write() error = %v, want ResourceLimitExceeded", err)
	}

	w, err = New(WithHatch(spec), WithLimits(mortier.Limits{MaxHatchPrimitives: 30}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(tess, vp); err != nil {
		t.Errorf("Write() with an exact budget: %v", err)
	}
}

func TestWriteOrnamentBands(t *testing.T) {
	w, err := New(WithOrnament(ornament.Spec{Kind: ornament.Bands, Width: 1}))
	if err != nil {
		t.Fatal(err)
	}
	frame := mortier.NewRect(0, 0, 10, 10)
	doc, err := w.Write(squareTess(frame, frame), mortier.Viewport{Width: 10, Height: 10})
	if err != nil {
		t.Fatal(err)
	}
	// outline + one path holding the 4 rings
	s := string(doc.Data)
	if n := strings.Count(s, `fill="none"`); n != 2 {
		t.Errorf("got %d stroked paths, want 2", n)
	}
	if n := strings.Count(s, "Z"); n != 1+1+4 {
		t.Errorf("got %d closed subpaths, want 6 (clip, outline, 4 rings)", n)
	}
}

func TestWriteLaces(t *testing.T) {
	w, err := New(WithOrnament(ornament.Spec{Kind: ornament.Laces, Width: 0.5}))
	if err != nil {
		t.Fatal(err)
	}
	tess := squareTess(mortier.Rect{}, mortier.NewRect(0, 0, 1, 1), mortier.NewRect(1, 0, 1, 1))
	doc, err := w.Write(tess, mortier.Viewport{Width: 200, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(doc.Data), `stroke-linecap="round"`) {
		t.Error("lace strands should use round caps")
	}
}

func TestWriteDegenerateTile(t *testing.T) {
	w, _ := New()
	tess := &mortier.Tesselation{Tiles: []mortier.Tile{
		mortier.NewTile(mortier.FamilyRegular, 0, []mortier.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}, nil),
	}, Frame: mortier.NewRect(0, 0, 2, 2)}

	_, err := w.Write(tess, mortier.Viewport{Width: 10, Height: 10})
	if !errors.Is(err, mortier.ErrInvalidGeometry) {
		t.Errorf("Write() error = %v, want InvalidGeometry", err)
	}
}

func TestWriteInvalidViewport(t *testing.T) {
	w, _ := New()
	_, err := w.Write(squareTess(mortier.Rect{}, mortier.NewRect(0, 0, 1, 1)), mortier.Viewport{Width: -1, Height: 10})
	if !errors.Is(err, mortier.ErrInvalidParameter) {
		t.Errorf("Write() error = %v, want InvalidParameter", err)
	}
}

func TestWriteDeterministic(t *testing.T) {
	w, _ := New(WithHatch(hatch.Spec{Kind: hatch.Line, Spacing: 0.7, Angle: 0.3, CrossHatch: true}))
	tess := squareTess(mortier.Rect{}, mortier.NewRect(0, 0, 3, 3), mortier.NewRect(3, 0, 3, 3))
	vp := mortier.Viewport{Width: 123, Height: 77}
	a, err := w.Write(tess, vp)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := w.Write(tess, vp)
	if !bytes.Equal(a.Data, b.Data) {
		t.Error("identical inputs produced different documents")
	}
}

func TestWritePNG(t *testing.T) {
	w, err := New(WithFormat("png"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := w.Write(squareTess(mortier.Rect{}, mortier.NewRect(0, 0, 1, 1)), mortier.Viewport{Width: 16, Height: 16})
	if err != nil {
		t.Fatal(err)
	}
	if doc.MediaType != "image/png" || !bytes.HasPrefix(doc.Data, []byte("\x89PNG")) {
		t.Errorf("not a PNG document: %q", doc.MediaType)
	}
}
