// Package engine is the entry point turning a generation request into a
// rendered document.
//
// Example:
//
//	e := engine.New(patternstore.Builtin())
//	doc, err := e.Generate(engine.Request{
//	    Tiling:   engine.Hyperbolic{Params: hyperbolic.Params{P: 7, Q: 3, Depth: 3}},
//	    Viewport: mortier.Viewport{Width: 800, Height: 800},
//	})
package engine

import (
	"time"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/angle"
	"github.com/gogpu/mortier/hatch"
	"github.com/gogpu/mortier/hyperbolic"
	"github.com/gogpu/mortier/ornament"
	"github.com/gogpu/mortier/patternstore"
	"github.com/gogpu/mortier/penrose"
	"github.com/gogpu/mortier/regular"
	"github.com/gogpu/mortier/writer"
)

// Request describes one tesselation to generate and render.
type Request struct {
	Tiling   Tiling
	Viewport mortier.Viewport
	// Scale is the number of lattice cells across the viewport width.
	// Regular tilings only.
	Scale int
	// Angle rotates the lattice, in radians. Regular tilings only.
	Angle float64
	// Modulation assigns the per-tile draw angle that orients hatching.
	Modulation angle.Spec
	Hatch      hatch.Spec
	Ornament   ornament.Spec
	Color      mortier.Color
}

// Engine generates documents from requests. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	store patternstore.Store
	opts  options
}

// New creates an Engine looking regular patterns up in store. A nil store
// means the built-in library.
func New(store patternstore.Store, opts ...Option) *Engine {
	if store == nil {
		store = patternstore.Builtin()
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{store: store, opts: o}
}

// Limits returns the resource ceilings of the engine.
func (e *Engine) Limits() mortier.Limits {
	return e.opts.limits
}

// Generate validates req, builds its tesselation, assigns tile angles and
// renders the result.
func (e *Engine) Generate(req Request) (*writer.Document, error) {
	start := time.Now()
	w, err := e.writer(req)
	if err != nil {
		return nil, err
	}
	tess, err := e.Tesselate(req)
	if err != nil {
		return nil, err
	}
	doc, err := w.Write(tess, req.Viewport)
	if err != nil {
		return nil, err
	}
	mortier.Logger().Debug("engine: generated",
		"family", req.Tiling.Family(), "tiles", len(tess.Tiles),
		"format", doc.Format, "bytes", len(doc.Data), "elapsed", time.Since(start))
	return doc, nil
}

func (e *Engine) writer(req Request) (*writer.Writer, error) {
	opts := []writer.Option{
		writer.WithFormat(e.opts.format),
		writer.WithColor(req.Color),
		writer.WithHatch(req.Hatch),
		writer.WithOrnament(req.Ornament),
		writer.WithLimits(e.opts.limits),
	}
	return writer.New(append(opts, e.opts.writers...)...)
}

// Tesselate builds the tesselation of req with angles assigned, without
// rendering it.
func (e *Engine) Tesselate(req Request) (*mortier.Tesselation, error) {
	const op = "engine"
	if err := req.Viewport.Validate(); err != nil {
		return nil, err
	}
	if err := req.Modulation.Validate(); err != nil {
		return nil, err
	}

	var (
		tess *mortier.Tesselation
		err  error
	)
	switch t := req.Tiling.(type) {
	case Regular:
		var p mortier.Pattern
		p, err = e.store.Lookup(t.PatternID)
		if err != nil {
			return nil, err
		}
		tess, err = regular.Generate(p, req.Viewport, req.Scale, req.Angle, e.opts.limits)
	case Hyperbolic:
		tess, err = hyperbolic.Generate(t.Params, e.opts.limits)
	case Penrose:
		tess, err = penrose.Generate(t.Params, e.opts.limits)
	case nil:
		return nil, mortier.Errorf(mortier.KindInvalidParameter, op, "request has no tiling")
	default:
		return nil, mortier.Errorf(mortier.KindInvalidParameter, op, "unsupported tiling %T", t)
	}
	if err != nil {
		return nil, err
	}
	return angle.Assign(tess, req.Modulation)
}
