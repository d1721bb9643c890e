package recording

import "github.com/gogpu/mortier"

// Brush represents a fill/stroke style for recording commands.
// This is a sealed interface - only types in this package implement it.
type Brush interface {
	brushMarker()
}

// SolidBrush is a solid color brush.
type SolidBrush struct {
	Color mortier.Color
}

func (SolidBrush) brushMarker() {}

// NewSolidBrush creates a solid color brush.
func NewSolidBrush(c mortier.Color) SolidBrush {
	return SolidBrush{Color: c}
}

// BrushColor returns the color of a brush, or black for a nil brush.
func BrushColor(b Brush) mortier.Color {
	if sb, ok := b.(SolidBrush); ok {
		return sb.Color
	}
	return mortier.Black
}
