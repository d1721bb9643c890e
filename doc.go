// Package mortier generates geometric tesselations and renders them to
// vector documents.
//
// # Overview
//
// Three tiling families are supported, each by its own generator package:
//
//   - regular: a stored base pattern replicated on its lattice across a viewport
//   - hyperbolic: {p,q} tilings of the Poincaré disk or half-plane
//   - penrose: aperiodic rhombus (P3) and kite/dart (P2) tilings by deflation
//
// Every generator returns a [Tesselation]: an ordered list of counter-clockwise
// [Tile] polygons plus the frame they are fitted from. Package angle assigns
// per-tile draw angles from a deterministic value-noise field, and package
// writer draws the tiles with hatch fills (package hatch) and ornaments
// (package ornament) into a vector document through the recording backends.
//
// Package engine ties everything together behind a single request type:
//
//	eng := engine.New(patternstore.Builtin())
//	doc, err := eng.Generate(engine.Request{
//	    Tiling:   engine.Hyperbolic{Params: hyperbolic.Params{P: 7, Q: 3, Depth: 3}},
//	    Viewport: mortier.Viewport{Width: 800, Height: 800},
//	})
//
// # Coordinate System
//
// Generation happens in a y-up mathematical frame; the writer maps the frame
// into the viewport with a single uniform scale and translation ([Fit]).
// Angles are in radians, counter-clockwise.
//
// # Errors
//
// All failures are reported as [*Error] values matching one of the sentinels
// [ErrNotFound], [ErrInvalidGeometry], [ErrResourceLimit] and
// [ErrInvalidParameter] through errors.Is. Nothing is clamped or retried.
//
// # Logging
//
// mortier is silent by default. Call [SetLogger] to receive debug output from
// the generators.
package mortier

// Version is the current version of the module.
const Version = "0.1.0"
