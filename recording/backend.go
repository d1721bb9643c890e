package recording

import (
	"io"

	"github.com/gogpu/mortier"
)

// Backend is the interface that all output backends must implement.
// Backends receive drawing commands in output coordinates and translate them
// to their format (SVG elements, raster pixels, ...).
//
// A Backend manages its own state stack for Save/Restore.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Handle all Backend methods (even if no-op for some)
//  3. Manage own state stack for Save/Restore
type Backend interface {
	// Begin initializes the backend for rendering the given viewport.
	// It must be called before any drawing operation.
	Begin(view mortier.Viewport) error

	// End finalizes the rendering. After End, output methods
	// (WriteTo, SaveToFile) can be used.
	End() error

	// Save pushes the current clip onto a stack.
	Save()

	// Restore pops the clip saved by the matching Save.
	// If the stack is empty, this is a no-op.
	Restore()

	// SetClip intersects the clip region with the given path.
	SetClip(path *mortier.Path)

	// ClearClip resets the clip region to the full viewport.
	ClearClip()

	// BeginGroup opens a named group. Groups nest.
	BeginGroup(id string)

	// EndGroup closes the innermost open group.
	EndGroup()

	// FillPath fills a path (non-zero winding) with the given brush.
	FillPath(path *mortier.Path, brush Brush)

	// StrokePath strokes a path with the given brush and stroke style.
	StrokePath(path *mortier.Path, brush Brush, stroke Stroke)
}

// WriterBackend is a backend that can serialize its output to a writer.
type WriterBackend interface {
	Backend
	io.WriterTo

	// MediaType returns the IANA media type of the serialized output.
	MediaType() string
}

// FileBackend is a backend that can save its output to a file.
type FileBackend interface {
	Backend

	// SaveToFile writes the output to the file at path.
	SaveToFile(path string) error
}
