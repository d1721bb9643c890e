package svg

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/recording"
)

func TestBackendRegistration(t *testing.T) {
	f, ok := recording.LookupFormat("svg")
	if !ok {
		t.Fatal("svg backend not registered")
	}
	if f.Extension != ".svg" {
		t.Errorf("extension = %q, want .svg", f.Extension)
	}
	backend, err := recording.NewBackend("svg")
	if err != nil {
		t.Fatalf("failed to create svg backend: %v", err)
	}
	if _, ok := backend.(*Backend); !ok {
		t.Fatal("backend is not *svg.Backend")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-2.5, "-2.5"},
		{1.23456, "1.235"},
		{0.1 + 0.2, "0.3"},
		{-0.0001, "0"},
		{100, "100"},
		{12.0004, "12"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.v); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestBeginRejectsBadViewport(t *testing.T) {
	b := NewBackend()
	if err := b.Begin(mortier.Viewport{Width: 0, Height: 10}); err == nil {
		t.Error("Begin with zero width should fail")
	}
}

func render(t *testing.T, draw func(rec *recording.Recorder)) string {
	t.Helper()
	rec := recording.NewRecorder(mortier.Viewport{X: 0, Y: 0, Width: 100, Height: 50})
	draw(rec)
	b := NewBackend()
	if err := rec.FinishRecording().Playback(b); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return buf.String()
}

// element is a generic parsed SVG element.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element `xml:",any"`
}

func (e element) attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func parse(t *testing.T, doc string) element {
	t.Helper()
	var root element
	if err := xml.Unmarshal([]byte(doc), &root); err != nil {
		t.Fatalf("malformed SVG: %v\n%s", err, doc)
	}
	return root
}

func TestDocumentStructure(t *testing.T) {
	got := render(t, func(rec *recording.Recorder) {
		rec.ClipViewport()
		rec.BeginGroup("tile-a")
		rec.SetColor(mortier.Color{R: 255, G: 128})
		rec.SetLineWidth(1.5)
		rec.DrawPolygon([]mortier.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10.25}})
		rec.Stroke()
		rec.DrawCircle(5, 5, 1)
		rec.Fill()
		rec.EndGroup()
	})

	root := parse(t, got)
	if root.XMLName.Local != "svg" {
		t.Fatalf("root element = %q", root.XMLName.Local)
	}
	if w, h, vb := root.attr("width"), root.attr("height"), root.attr("viewBox"); w != "100" || h != "50" || vb != "0 0 100 50" {
		t.Errorf("root attributes = %q %q %q", w, h, vb)
	}
	if len(root.Children) != 2 {
		t.Fatalf("got %d top-level elements, want clipPath and group", len(root.Children))
	}

	clip := root.Children[0]
	if clip.XMLName.Local != "clipPath" || clip.attr("id") != "clip0" {
		t.Errorf("clip element = %s id=%q", clip.XMLName.Local, clip.attr("id"))
	}
	if len(clip.Children) != 1 || clip.Children[0].attr("d") != "M0 0 L100 0 L100 50 L0 50 Z" {
		t.Errorf("clip path = %+v", clip.Children)
	}

	clipped := root.Children[1]
	if clipped.attr("clip-path") != "url(#clip0)" || len(clipped.Children) != 1 {
		t.Fatalf("clip group = %+v", clipped)
	}
	tile := clipped.Children[0]
	if tile.attr("id") != "tile-a" || len(tile.Children) != 2 {
		t.Fatalf("tile group = %+v", tile)
	}
	outline, dot := tile.Children[0], tile.Children[1]
	if outline.attr("d") != "M0 0 L10 0 L10 10.25 Z" {
		t.Errorf("outline d = %q", outline.attr("d"))
	}
	if outline.attr("fill") != "none" || outline.attr("stroke") != "#ff8000" || outline.attr("stroke-width") != "1.5" {
		t.Errorf("outline attributes = %+v", outline.Attrs)
	}
	if dot.attr("fill") != "#ff8000" || dot.attr("stroke") != "" {
		t.Errorf("dot attributes = %+v", dot.Attrs)
	}
}

func TestStrokeStyleAttributes(t *testing.T) {
	got := render(t, func(rec *recording.Recorder) {
		rec.SetLineCap(recording.LineCapRound)
		rec.SetLineJoin(recording.LineJoinRound)
		rec.DrawLine(mortier.Pt(0, 0), mortier.Pt(1, 1))
		rec.Stroke()
	})
	path := parse(t, got).Children[0]
	if path.attr("stroke-linecap") != "round" || path.attr("stroke-linejoin") != "round" {
		t.Errorf("missing cap/join attributes:\n%s", got)
	}
}

func TestGroupIDEscaped(t *testing.T) {
	got := render(t, func(rec *recording.Recorder) {
		rec.BeginGroup(`a"<b`)
		rec.EndGroup()
	})
	if id := parse(t, got).Children[0].attr("id"); id != `a"<b` {
		t.Errorf("group id = %q, want %q", id, `a"<b`)
	}
}

func TestSaveRestoreClosesClips(t *testing.T) {
	got := render(t, func(rec *recording.Recorder) {
		rec.Save()
		rec.ClipViewport()
		rec.ClipViewport()
		rec.Restore()
		rec.ResetClip()
	})
	if n := strings.Count(got, "<g clip-path"); n != 2 {
		t.Errorf("got %d clip groups, want 2", n)
	}
	if n := strings.Count(got, "</g>"); n != 2 {
		t.Errorf("got %d closing tags, want 2", n)
	}
	if !strings.Contains(got, `id="clip1"`) {
		t.Errorf("clip ids not sequential:\n%s", got)
	}
}

func TestDeterministic(t *testing.T) {
	draw := func(rec *recording.Recorder) {
		rec.BeginGroup("g")
		rec.DrawPolygon([]mortier.Point{{X: 1.0 / 3, Y: 2.0 / 3}, {X: 4, Y: 0}, {X: 4, Y: 4}})
		rec.Stroke()
		rec.EndGroup()
	}
	a := render(t, draw)
	b := render(t, draw)
	if a != b {
		t.Error("identical recordings produced different documents")
	}
	if !strings.Contains(a, "M0.333 0.667") {
		t.Errorf("coordinates not rounded to 3 decimals:\n%s", a)
	}
}

func TestMediaType(t *testing.T) {
	if got := NewBackend().MediaType(); got != "image/svg+xml" {
		t.Errorf("MediaType() = %q", got)
	}
}
