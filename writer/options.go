package writer

import (
	"math"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/hatch"
	"github.com/gogpu/mortier/ornament"
	"github.com/gogpu/mortier/recording"
)

// Option configures a Writer during creation.
//
// Example:
//
//	w, err := writer.New(
//	    writer.WithHatch(hatch.Spec{Kind: hatch.Line, Spacing: 4}),
//	    writer.WithColor(mortier.Color{R: 40, G: 40, B: 120}),
//	)
type Option func(*options)

// options holds the immutable configuration of a Writer.
type options struct {
	hatch     hatch.Spec
	ornament  ornament.Spec
	color     mortier.Color
	lineWidth float64
	dotRadius float64
	format    string
	// hatchBudget bounds the hatch primitives of one document.
	hatchBudget int
}

// defaultOptions returns the default writer options: black 1-unit outlines,
// no hatch, no ornament, SVG output.
func defaultOptions() options {
	return options{
		color:     mortier.Black,
		lineWidth: 1,
		dotRadius: 1,
		format:    DefaultFormat,

		hatchBudget: mortier.DefaultLimits().MaxHatchPrimitives,
	}
}

func (o options) validate() error {
	const op = "writer"
	if err := o.hatch.Validate(); err != nil {
		return err
	}
	if err := o.ornament.Validate(); err != nil {
		return err
	}
	if err := o.color.Validate(); err != nil {
		return err
	}
	if !(o.lineWidth > 0) || math.IsInf(o.lineWidth, 0) {
		return mortier.Errorf(mortier.KindInvalidParameter, op, "line width must be positive, got %v", o.lineWidth)
	}
	if !(o.dotRadius > 0) || math.IsInf(o.dotRadius, 0) {
		return mortier.Errorf(mortier.KindInvalidParameter, op, "dot radius must be positive, got %v", o.dotRadius)
	}
	if _, ok := recording.LookupFormat(o.format); !ok {
		return mortier.Errorf(mortier.KindInvalidParameter, op, "unknown format %q (registered: %v)", o.format, recording.Formats())
	}
	return nil
}

// WithHatch sets the hatch fill drawn inside every tile.
func WithHatch(spec hatch.Spec) Option {
	return func(o *options) {
		o.hatch = spec
	}
}

// WithOrnament sets the ornament drawn on every tile.
func WithOrnament(spec ornament.Spec) Option {
	return func(o *options) {
		o.ornament = spec
	}
}

// WithColor sets the colour of every stroke and dot.
func WithColor(c mortier.Color) Option {
	return func(o *options) {
		o.color = c
	}
}

// WithLineWidth sets the stroke width in output units.
func WithLineWidth(w float64) Option {
	return func(o *options) {
		o.lineWidth = w
	}
}

// WithDotRadius sets the radius of hatch dots in output units.
func WithDotRadius(r float64) Option {
	return func(o *options) {
		o.dotRadius = r
	}
}

// WithFormat selects the output backend by its registered name,
// "svg" by default. "png" requires importing
// github.com/gogpu/mortier/recording/backends/raster.
func WithFormat(name string) Option {
	return func(o *options) {
		o.format = name
	}
}

// WithLimits applies the document-level ceilings of limits, currently
// MaxHatchPrimitives. Non-positive fields fall back to their defaults.
func WithLimits(limits mortier.Limits) Option {
	return func(o *options) {
		o.hatchBudget = limits.OrDefault().MaxHatchPrimitives
	}
}
