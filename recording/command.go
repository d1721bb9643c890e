package recording

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave       CommandType = iota // Save current clip
	CmdRestore                       // Restore previous clip
	CmdSetClip                       // Set clipping region
	CmdClearClip                     // Clear clipping region
	CmdBeginGroup                    // Open a named group
	CmdEndGroup                      // Close the innermost group

	// Drawing commands
	CmdFillPath   // Fill a path
	CmdStrokePath // Stroke a path
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSave:       "Save",
	CmdRestore:    "Restore",
	CmdSetClip:    "SetClip",
	CmdClearClip:  "ClearClip",
	CmdBeginGroup: "BeginGroup",
	CmdEndGroup:   "EndGroup",
	CmdFillPath:   "FillPath",
	CmdStrokePath: "StrokePath",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// BrushRef is a reference to a brush in the resource pool.
type BrushRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference points to a valid path.
func (r PathRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// IsValid returns true if the reference points to a valid brush.
func (r BrushRef) IsValid() bool {
	return uint32(r) != InvalidRef
}

// SaveCommand saves the current clip.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// RestoreCommand restores the previously saved clip.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// SetClipCommand sets the clipping region.
type SetClipCommand struct {
	// Path references the clip path in the resource pool.
	Path PathRef
}

// Type implements Command.
func (SetClipCommand) Type() CommandType { return CmdSetClip }

// ClearClipCommand clears the clipping region to the full viewport.
type ClearClipCommand struct{}

// Type implements Command.
func (ClearClipCommand) Type() CommandType { return CmdClearClip }

// BeginGroupCommand opens a named group.
type BeginGroupCommand struct {
	ID string
}

// Type implements Command.
func (BeginGroupCommand) Type() CommandType { return CmdBeginGroup }

// EndGroupCommand closes the innermost group.
type EndGroupCommand struct{}

// Type implements Command.
func (EndGroupCommand) Type() CommandType { return CmdEndGroup }

// FillPathCommand fills a path with a brush.
type FillPathCommand struct {
	Path  PathRef
	Brush BrushRef
}

// Type implements Command.
func (FillPathCommand) Type() CommandType { return CmdFillPath }

// StrokePathCommand strokes a path with a brush.
type StrokePathCommand struct {
	Path   PathRef
	Brush  BrushRef
	Stroke Stroke
}

// Type implements Command.
func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Stroke defines the style for stroking paths.
type Stroke struct {
	// Width is the line width in output units.
	Width float64
	Cap   LineCap
	Join  LineJoin
}

// DefaultStroke returns a Stroke with default settings.
func DefaultStroke() Stroke {
	return Stroke{
		Width: 1.0,
		Cap:   LineCapButt,
		Join:  LineJoinMiter,
	}
}
