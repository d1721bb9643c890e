package engine

import (
	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/hyperbolic"
	"github.com/gogpu/mortier/penrose"
)

// Tiling selects the tesselation family of a request together with its
// family-specific parameters. The set of implementations is closed:
// Regular, Hyperbolic and Penrose.
type Tiling interface {
	Family() mortier.Family
	sealed()
}

// Regular replicates a stored lattice pattern over the viewport.
type Regular struct {
	PatternID string
}

// Hyperbolic builds a {P,Q} tiling of the hyperbolic plane.
type Hyperbolic struct {
	hyperbolic.Params
}

// Penrose builds an aperiodic Penrose tiling.
type Penrose struct {
	penrose.Params
}

func (Regular) Family() mortier.Family    { return mortier.FamilyRegular }
func (Hyperbolic) Family() mortier.Family { return mortier.FamilyHyperbolic }
func (Penrose) Family() mortier.Family    { return mortier.FamilyPenrose }

func (Regular) sealed()    {}
func (Hyperbolic) sealed() {}
func (Penrose) sealed()    {}
