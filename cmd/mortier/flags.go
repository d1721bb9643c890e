package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/angle"
	"github.com/gogpu/mortier/engine"
	"github.com/gogpu/mortier/hatch"
	"github.com/gogpu/mortier/hyperbolic"
	"github.com/gogpu/mortier/ornament"
	"github.com/gogpu/mortier/patternstore"
	"github.com/gogpu/mortier/patternstore/sqlitestore"
	"github.com/gogpu/mortier/penrose"
	"github.com/gogpu/mortier/writer"
)

// requestFlags are the generation flags shared by render and batch.
type requestFlags struct {
	family  string
	pattern string
	scale   int
	angle   float64

	p, q        int
	depth       int
	halfPlane   bool
	refinements int
	variant     string

	width, height int

	modulation string
	base       float64
	amplitude  float64
	frequency  float64

	hatch      string
	spacing    float64
	hatchAngle float64
	cross      bool
	stagger    bool

	ornament      string
	ornamentWidth float64

	color     string
	lineWidth float64
	dotRadius float64
	format    string
	patterns  string
}

func (f *requestFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.family, "family", "regular", "Tiling family (regular, hyperbolic, penrose)")
	fs.StringVar(&f.pattern, "pattern", "", "Regular pattern id (empty picks one from -seed)")
	fs.IntVar(&f.scale, "scale", 10, "Lattice cells across the viewport width")
	fs.Float64Var(&f.angle, "angle", 0, "Lattice rotation in radians")

	fs.IntVar(&f.p, "p", 7, "Hyperbolic polygon sides")
	fs.IntVar(&f.q, "q", 3, "Hyperbolic polygons per vertex")
	fs.IntVar(&f.depth, "depth", 3, "Hyperbolic expansion rounds or Penrose deflations")
	fs.BoolVar(&f.halfPlane, "halfplane", false, "Use the upper half-plane model")
	fs.IntVar(&f.refinements, "refine", 0, "Geodesic refinement rounds")
	fs.StringVar(&f.variant, "variant", "sun", "Penrose variant (sun, star, kite-dart)")

	fs.IntVar(&f.width, "width", 800, "Viewport width")
	fs.IntVar(&f.height, "height", 600, "Viewport height")

	fs.StringVar(&f.modulation, "modulation", "none", "Angle modulation (none, smooth, quintic)")
	fs.Float64Var(&f.base, "base", 0, "Base tile angle in radians")
	fs.Float64Var(&f.amplitude, "amplitude", 0, "Modulation amplitude in radians")
	fs.Float64Var(&f.frequency, "frequency", 1, "Modulation frequency")

	fs.StringVar(&f.hatch, "hatch", "none", "Hatch kind (none, line, dot)")
	fs.Float64Var(&f.spacing, "spacing", 4, "Hatch spacing")
	fs.Float64Var(&f.hatchAngle, "hatch-angle", 0, "Hatch rotation in radians")
	fs.BoolVar(&f.cross, "cross", false, "Cross-hatch")
	fs.BoolVar(&f.stagger, "stagger", false, "Stagger dot rows")

	fs.StringVar(&f.ornament, "ornament", "none", "Ornament kind (none, bands, laces)")
	fs.Float64Var(&f.ornamentWidth, "ornament-width", 2, "Band spacing or lace thickness")

	fs.StringVar(&f.color, "color", "black", "Stroke color (name or #rrggbb)")
	fs.Float64Var(&f.lineWidth, "line-width", 1, "Stroke width")
	fs.Float64Var(&f.dotRadius, "dot-radius", 1, "Hatch dot radius")
	fs.StringVar(&f.format, "format", writer.DefaultFormat, "Output format (svg, png)")
	fs.StringVar(&f.patterns, "patterns", "", "Pattern library (.json or SQLite file; overrides MORTIER_PATTERNS)")
}

// engine builds an engine over store honouring the output flags.
func (f *requestFlags) engine(store patternstore.Store, limits mortier.Limits) *engine.Engine {
	return engine.New(store,
		engine.WithLimits(limits),
		engine.WithFormat(f.format),
		engine.WithWriterOptions(writer.WithLineWidth(f.lineWidth), writer.WithDotRadius(f.dotRadius)),
	)
}

// request converts the flags into an engine request. Regular requests
// without -pattern pick one from store using seed.
func (f *requestFlags) request(store patternstore.Store, seed uint64) (engine.Request, error) {
	req := engine.Request{
		Viewport: mortier.Viewport{Width: f.width, Height: f.height},
		Scale:    f.scale,
		Angle:    f.angle,
	}

	switch f.family {
	case "regular":
		id := f.pattern
		if id == "" {
			p, err := patternstore.Pick(store, seed)
			if err != nil {
				return req, err
			}
			id = p.ID
		}
		req.Tiling = engine.Regular{PatternID: id}
	case "hyperbolic":
		req.Tiling = engine.Hyperbolic{Params: hyperbolic.Params{
			P: f.p, Q: f.q, Depth: f.depth, HalfPlane: f.halfPlane, Refinements: f.refinements,
		}}
	case "penrose":
		v, ok := penrose.ParseVariant(f.variant)
		if !ok {
			return req, fmt.Errorf("unknown penrose variant %q", f.variant)
		}
		req.Tiling = engine.Penrose{Params: penrose.Params{Variant: v, Depth: f.depth}}
	default:
		return req, fmt.Errorf("unknown family %q", f.family)
	}

	mode, ok := angle.ParseMode(f.modulation)
	if !ok {
		return req, fmt.Errorf("unknown modulation %q", f.modulation)
	}
	req.Modulation = angle.Spec{Mode: mode, Base: f.base, Amplitude: f.amplitude, Frequency: f.frequency}

	hk, ok := hatch.ParseKind(f.hatch)
	if !ok {
		return req, fmt.Errorf("unknown hatch %q", f.hatch)
	}
	req.Hatch = hatch.Spec{Kind: hk, Spacing: f.spacing, Angle: f.hatchAngle, CrossHatch: f.cross, Stagger: f.stagger}

	ornamentKind, ok := ornament.ParseKind(f.ornament)
	if !ok {
		return req, fmt.Errorf("unknown ornament %q", f.ornament)
	}
	req.Ornament = ornament.Spec{Kind: ornamentKind, Width: f.ornamentWidth}

	c, err := mortier.ParseColor(f.color)
	if err != nil {
		return req, err
	}
	req.Color = c
	return req, nil
}

// loadStore opens the pattern library at path: the built-in library when
// path is empty, a JSON file for .json, a SQLite database otherwise.
func loadStore(ctx context.Context, path string) (patternstore.Store, error) {
	if path == "" {
		return patternstore.Builtin(), nil
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		s, err := patternstore.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sqlitestore.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	s, err := sqlitestore.Load(ctx, db)
	if err != nil {
		return nil, err
	}
	return s, nil
}
