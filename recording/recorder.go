package recording

import "github.com/gogpu/mortier"

// Recorder captures drawing operations as commands.
// Use FinishRecording to obtain an immutable Recording that can be replayed
// to different backends.
//
// Paths are built in user space and mapped through the current transform
// when they are filled, stroked or clipped. Line widths are in output units
// and are not affected by the transform.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	view      mortier.Viewport
	commands  []Command
	resources *ResourcePool

	// Current path being built
	currentPath *mortier.Path

	// Current state
	brush     Brush
	lineWidth float64
	lineCap   LineCap
	lineJoin  LineJoin
	transform mortier.Matrix

	depth      int
	stateStack []recorderState
}

// recorderState stores the graphics state for Save/Restore.
type recorderState struct {
	brush     Brush
	lineWidth float64
	lineCap   LineCap
	lineJoin  LineJoin
	transform mortier.Matrix
}

// NewRecorder creates a new Recorder for the given viewport.
// The Recorder starts with default state: black brush, 1 unit line width,
// butt caps, miter joins and identity transform.
func NewRecorder(view mortier.Viewport) *Recorder {
	return &Recorder{
		view:        view,
		commands:    make([]Command, 0, 256),
		resources:   NewResourcePool(),
		currentPath: mortier.NewPath(),
		brush:       NewSolidBrush(mortier.Black),
		lineWidth:   1.0,
		lineCap:     LineCapButt,
		lineJoin:    LineJoinMiter,
		transform:   mortier.Identity(),
		stateStack:  make([]recorderState, 0, 8),
	}
}

// FinishRecording returns an immutable Recording containing all recorded
// commands. Groups still open are closed and saved states restored.
// After calling FinishRecording, the Recorder should not be used again.
func (r *Recorder) FinishRecording() *Recording {
	for r.depth > 0 {
		r.EndGroup()
	}
	for len(r.stateStack) > 0 {
		r.Restore()
	}
	return &Recording{
		view:      r.view,
		commands:  r.commands,
		resources: r.resources,
	}
}

// Recording is an immutable container for recorded drawing commands.
// It can be replayed to any Backend implementation.
type Recording struct {
	view      mortier.Viewport
	commands  []Command
	resources *ResourcePool
}

// Viewport returns the viewport of the recording.
func (r *Recording) Viewport() mortier.Viewport {
	return r.view
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool {
	return r.resources
}

// Playback replays the recording to the given backend.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.view); err != nil {
		return err
	}

	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			backend.Save()
		case RestoreCommand:
			backend.Restore()
		case SetClipCommand:
			backend.SetClip(r.resources.GetPath(c.Path))
		case ClearClipCommand:
			backend.ClearClip()
		case BeginGroupCommand:
			backend.BeginGroup(c.ID)
		case EndGroupCommand:
			backend.EndGroup()
		case FillPathCommand:
			backend.FillPath(r.resources.GetPath(c.Path), r.resources.GetBrush(c.Brush))
		case StrokePathCommand:
			backend.StrokePath(r.resources.GetPath(c.Path), r.resources.GetBrush(c.Brush), c.Stroke)
		}
	}

	return backend.End()
}

// Viewport returns the viewport the Recorder draws into.
func (r *Recorder) Viewport() mortier.Viewport {
	return r.view
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// Save saves the current graphics state and clip.
func (r *Recorder) Save() {
	r.stateStack = append(r.stateStack, recorderState{
		brush:     r.brush,
		lineWidth: r.lineWidth,
		lineCap:   r.lineCap,
		lineJoin:  r.lineJoin,
		transform: r.transform,
	})
	r.commands = append(r.commands, SaveCommand{})
}

// Restore restores the state saved by the matching Save.
// If the stack is empty, this is a no-op.
func (r *Recorder) Restore() {
	if len(r.stateStack) == 0 {
		return
	}
	s := r.stateStack[len(r.stateStack)-1]
	r.stateStack = r.stateStack[:len(r.stateStack)-1]
	r.brush = s.brush
	r.lineWidth = s.lineWidth
	r.lineCap = s.lineCap
	r.lineJoin = s.lineJoin
	r.transform = s.transform
	r.commands = append(r.commands, RestoreCommand{})
}

// SetTransform replaces the current transform.
func (r *Recorder) SetTransform(m mortier.Matrix) {
	r.transform = m
}

// Transform returns the current transform.
func (r *Recorder) Transform() mortier.Matrix {
	return r.transform
}

// SetColor sets the brush used by Fill and Stroke.
func (r *Recorder) SetColor(c mortier.Color) {
	r.brush = NewSolidBrush(c)
}

// SetLineWidth sets the stroke width in output units.
func (r *Recorder) SetLineWidth(w float64) {
	r.lineWidth = w
}

// SetLineCap sets the line cap style.
func (r *Recorder) SetLineCap(c LineCap) {
	r.lineCap = c
}

// SetLineJoin sets the line join style.
func (r *Recorder) SetLineJoin(j LineJoin) {
	r.lineJoin = j
}

// LineWidth returns the current stroke width.
func (r *Recorder) LineWidth() float64 {
	return r.lineWidth
}

// --------------------------------------------------------------------------
// Groups
// --------------------------------------------------------------------------

// BeginGroup opens a named group.
func (r *Recorder) BeginGroup(id string) {
	r.depth++
	r.commands = append(r.commands, BeginGroupCommand{ID: id})
}

// EndGroup closes the innermost group. Without an open group it is a no-op.
func (r *Recorder) EndGroup() {
	if r.depth == 0 {
		return
	}
	r.depth--
	r.commands = append(r.commands, EndGroupCommand{})
}

// --------------------------------------------------------------------------
// Path construction
// --------------------------------------------------------------------------

// MoveTo starts a new subpath.
func (r *Recorder) MoveTo(x, y float64) {
	r.currentPath.MoveTo(x, y)
}

// LineTo adds a line to the current subpath.
func (r *Recorder) LineTo(x, y float64) {
	r.currentPath.LineTo(x, y)
}

// ClosePath closes the current subpath.
func (r *Recorder) ClosePath() {
	r.currentPath.Close()
}

// DrawPolygon adds a closed polygon through pts.
func (r *Recorder) DrawPolygon(pts []mortier.Point) {
	r.currentPath.Polygon(pts)
}

// DrawPolyline adds an open polyline through pts.
func (r *Recorder) DrawPolyline(pts []mortier.Point) {
	r.currentPath.Polyline(pts)
}

// DrawLine adds a line segment from a to b.
func (r *Recorder) DrawLine(a, b mortier.Point) {
	r.currentPath.Segment(a, b)
}

// DrawCircle adds a circle approximated by four cubic curves.
func (r *Recorder) DrawCircle(x, y, radius float64) {
	r.currentPath.Circle(x, y, radius)
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// devicePath returns the current path in output coordinates.
func (r *Recorder) devicePath() *mortier.Path {
	if r.transform.IsIdentity() {
		return r.currentPath
	}
	return r.currentPath.Transform(r.transform)
}

// Fill fills the current path and clears it.
func (r *Recorder) Fill() {
	if r.currentPath.IsEmpty() {
		return
	}
	r.commands = append(r.commands, FillPathCommand{
		Path:  r.resources.AddPath(r.devicePath()),
		Brush: r.resources.AddBrush(r.brush),
	})
	r.currentPath = mortier.NewPath()
}

// Stroke strokes the current path and clears it.
func (r *Recorder) Stroke() {
	if r.currentPath.IsEmpty() {
		return
	}
	r.commands = append(r.commands, StrokePathCommand{
		Path:  r.resources.AddPath(r.devicePath()),
		Brush: r.resources.AddBrush(r.brush),
		Stroke: Stroke{
			Width: r.lineWidth,
			Cap:   r.lineCap,
			Join:  r.lineJoin,
		},
	})
	r.currentPath = mortier.NewPath()
}

// --------------------------------------------------------------------------
// Clipping
// --------------------------------------------------------------------------

// Clip intersects the clip region with the current path and clears it.
func (r *Recorder) Clip() {
	if r.currentPath.IsEmpty() {
		return
	}
	r.commands = append(r.commands, SetClipCommand{
		Path: r.resources.AddPath(r.devicePath()),
	})
	r.currentPath = mortier.NewPath()
}

// ClipViewport clips drawing to the recorder's viewport.
func (r *Recorder) ClipViewport() {
	vr := r.view.Rect()
	clip := mortier.NewPath()
	clip.Polygon([]mortier.Point{
		vr.Min, mortier.Pt(vr.Max.X, vr.Min.Y), vr.Max, mortier.Pt(vr.Min.X, vr.Max.Y),
	})
	r.commands = append(r.commands, SetClipCommand{Path: r.resources.AddPath(clip)})
}

// ResetClip removes all clipping regions.
func (r *Recorder) ResetClip() {
	r.commands = append(r.commands, ClearClipCommand{})
}
