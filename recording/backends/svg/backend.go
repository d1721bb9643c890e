// Package svg provides an SVG backend for the recording system.
//
// Elements are written with github.com/ajstarks/svgo. The output is
// deterministic: identical recordings produce byte-identical documents.
// Coordinates are printed with at most three decimals and no timestamps or
// generator comments are emitted.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/mortier/recording/backends/svg"
//
//	backend, _ := recording.NewBackend("svg")
//	rec.Playback(backend)
//	backend.(recording.WriterBackend).WriteTo(w)
package svg

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/recording"
)

// MediaType is the media type of documents produced by the backend.
const MediaType = "image/svg+xml"

func init() {
	recording.Register(recording.Format{
		Name:      "svg",
		Extension: ".svg",
		New:       func() recording.Backend { return NewBackend() },
	})
}

// Backend serializes recordings to an SVG document.
type Backend struct {
	buf    bytes.Buffer
	canvas *svgo.SVG
	view   mortier.Viewport
	clips int // clip groups open at the current save level

	saved []int
	depth int // user groups
	seq   int // clipPath elements written
	ended bool
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a new SVG backend.
// The backend must be initialized with Begin before use.
func NewBackend() *Backend {
	b := &Backend{}
	b.canvas = svgo.New(&b.buf)
	return b
}

// Begin writes the document header for the given viewport.
func (b *Backend) Begin(view mortier.Viewport) error {
	if err := view.Validate(); err != nil {
		return err
	}
	b.buf.Reset()
	b.view = view
	b.clips = 0
	b.saved = b.saved[:0]
	b.depth = 0
	b.seq = 0
	b.ended = false

	b.canvas.Startview(view.Width, view.Height, view.X, view.Y, view.Width, view.Height)
	return nil
}

// End closes every open group and the document.
func (b *Backend) End() error {
	if b.ended {
		return nil
	}
	for b.depth > 0 {
		b.EndGroup()
	}
	for len(b.saved) > 0 {
		b.Restore()
	}
	b.closeClips()
	b.canvas.End()
	b.ended = true
	return nil
}

// Save pushes the clip state.
func (b *Backend) Save() {
	b.saved = append(b.saved, b.clips)
	b.clips = 0
}

// Restore closes the clip groups opened since the matching Save.
func (b *Backend) Restore() {
	if len(b.saved) == 0 {
		return
	}
	b.closeClips()
	b.clips = b.saved[len(b.saved)-1]
	b.saved = b.saved[:len(b.saved)-1]
}

// SetClip defines a clipPath and opens a group clipped by it.
func (b *Backend) SetClip(path *mortier.Path) {
	if path == nil || path.IsEmpty() {
		return
	}
	id := "clip" + strconv.Itoa(b.seq)
	b.seq++
	b.canvas.ClipPath(`id="` + id + `"`)
	b.canvas.Path(pathData(path))
	b.canvas.ClipEnd()
	b.canvas.Group(`clip-path="url(#` + id + `)"`)
	b.clips++
}

// ClearClip closes the clip groups opened at the current save level.
func (b *Backend) ClearClip() {
	b.closeClips()
}

// BeginGroup opens a group with the given id.
func (b *Backend) BeginGroup(id string) {
	b.canvas.Gid(id)
	b.depth++
}

// EndGroup closes the innermost group.
func (b *Backend) EndGroup() {
	if b.depth == 0 {
		return
	}
	b.canvas.Gend()
	b.depth--
}

// FillPath writes a filled path element.
func (b *Backend) FillPath(path *mortier.Path, brush recording.Brush) {
	if path == nil || path.IsEmpty() {
		return
	}
	b.canvas.Path(pathData(path), `fill="`+recording.BrushColor(brush).Hex()+`"`)
}

// StrokePath writes a stroked, unfilled path element.
func (b *Backend) StrokePath(path *mortier.Path, brush recording.Brush, stroke recording.Stroke) {
	if path == nil || path.IsEmpty() {
		return
	}
	attrs := []string{
		`fill="none"`,
		`stroke="` + recording.BrushColor(brush).Hex() + `"`,
		`stroke-width="` + formatNumber(stroke.Width) + `"`,
	}
	switch stroke.Cap {
	case recording.LineCapRound:
		attrs = append(attrs, `stroke-linecap="round"`)
	case recording.LineCapSquare:
		attrs = append(attrs, `stroke-linecap="square"`)
	}
	switch stroke.Join {
	case recording.LineJoinRound:
		attrs = append(attrs, `stroke-linejoin="round"`)
	case recording.LineJoinBevel:
		attrs = append(attrs, `stroke-linejoin="bevel"`)
	}
	b.canvas.Path(pathData(path), attrs...)
}

// MediaType returns "image/svg+xml".
func (b *Backend) MediaType() string {
	return MediaType
}

// WriteTo writes the document to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// SaveToFile writes the document to a file.
func (b *Backend) SaveToFile(path string) error {
	return os.WriteFile(path, b.buf.Bytes(), 0o644)
}

// Bytes returns the document written so far.
func (b *Backend) Bytes() []byte {
	return b.buf.Bytes()
}

func (b *Backend) closeClips() {
	for ; b.clips > 0; b.clips-- {
		b.canvas.Gend()
	}
}

// pathData formats path elements as SVG path data.
func pathData(path *mortier.Path) string {
	var sb strings.Builder
	for i, elem := range path.Elements() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch e := elem.(type) {
		case mortier.MoveTo:
			sb.WriteByte('M')
			writePoint(&sb, e.Point)
		case mortier.LineTo:
			sb.WriteByte('L')
			writePoint(&sb, e.Point)
		case mortier.CubicTo:
			sb.WriteByte('C')
			writePoint(&sb, e.Control1)
			sb.WriteByte(' ')
			writePoint(&sb, e.Control2)
			sb.WriteByte(' ')
			writePoint(&sb, e.Point)
		case mortier.Close:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

func writePoint(sb *strings.Builder, p mortier.Point) {
	sb.WriteString(formatNumber(p.X))
	sb.WriteByte(' ')
	sb.WriteString(formatNumber(p.Y))
}

// formatNumber prints v with at most three decimals and no trailing zeros.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
