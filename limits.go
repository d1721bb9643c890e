package mortier

// Limits are the resource ceilings checked before any expansion starts.
// Requests that would exceed a ceiling fail with ErrResourceLimit.
type Limits struct {
	// MaxTiles bounds the number of tiles (or half-tiles, for Penrose) a
	// single request may build.
	MaxTiles int
	// MaxPoints bounds the total outline points after hyperbolic refinement.
	MaxPoints int
	// MaxHyperbolicDepth is capped in turn by hyperbolic.MaxDepth.
	MaxHyperbolicDepth int
	MaxRefinements     int
	MaxPenroseDepth    int
	// MaxHatchPrimitives bounds the hatch lines and dots of one document,
	// summed over every filled tile.
	MaxHatchPrimitives int
}

// DefaultLimits returns the ceilings used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxTiles:           100000,
		MaxPoints:          2000000,
		MaxHyperbolicDepth: 8,
		MaxRefinements:     5,
		MaxPenroseDepth:    12,
		MaxHatchPrimitives: 1000000,
	}
}

// OrDefault replaces every non-positive field with its default.
func (l Limits) OrDefault() Limits {
	d := DefaultLimits()
	if l.MaxTiles <= 0 {
		l.MaxTiles = d.MaxTiles
	}
	if l.MaxPoints <= 0 {
		l.MaxPoints = d.MaxPoints
	}
	if l.MaxHyperbolicDepth <= 0 {
		l.MaxHyperbolicDepth = d.MaxHyperbolicDepth
	}
	if l.MaxRefinements <= 0 {
		l.MaxRefinements = d.MaxRefinements
	}
	if l.MaxPenroseDepth <= 0 {
		l.MaxPenroseDepth = d.MaxPenroseDepth
	}
	if l.MaxHatchPrimitives <= 0 {
		l.MaxHatchPrimitives = d.MaxHatchPrimitives
	}
	return l
}
