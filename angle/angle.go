// Package angle assigns per-tile draw angles.
//
// Angles are either constant or modulated by a lattice value-noise field
// sampled at each tile's centroid. The field is a pure function of its
// coordinates, so the same tesselation always receives the same angles.
package angle

import (
	"math"

	"github.com/gogpu/mortier"
)

// Mode selects how angles vary across the tesselation.
type Mode uint8

const (
	// None gives every tile the base angle.
	None Mode = iota
	// Smooth modulates the base angle with value noise interpolated by the
	// cubic smoothstep kernel.
	Smooth
	// Quintic modulates the base angle with value noise interpolated by the
	// quintic fade kernel 6t^5 - 15t^4 + 10t^3.
	Quintic
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Smooth:
		return "smooth"
	case Quintic:
		return "quintic"
	}
	return "unknown"
}

// ParseMode maps "none", "smooth" and "quintic" to a Mode.
func ParseMode(s string) (Mode, bool) {
	for _, m := range []Mode{None, Smooth, Quintic} {
		if m.String() == s {
			return m, true
		}
	}
	return None, false
}

// Spec configures angle assignment.
type Spec struct {
	Mode Mode
	// Base is the angle, in radians, every tile starts from.
	Base float64
	// Amplitude scales the noise, in radians.
	Amplitude float64
	// Frequency scales centroid coordinates before sampling. Zero means 1.
	Frequency float64
}

// Validate reports parameters that cannot produce finite angles.
func (s Spec) Validate() error {
	const op = "angle"
	if s.Mode > Quintic {
		return mortier.Errorf(mortier.KindInvalidParameter, op, "unknown mode %d", s.Mode)
	}
	if !finite(s.Base) || !finite(s.Amplitude) {
		return mortier.Errorf(mortier.KindInvalidParameter, op, "base and amplitude must be finite")
	}
	if !finite(s.Frequency) || s.Frequency < 0 {
		return mortier.Errorf(mortier.KindInvalidParameter, op, "frequency must be finite and non-negative, got %v", s.Frequency)
	}
	return nil
}

// Assign returns a copy of tess whose tiles carry the angles described by
// spec. The input is not modified.
func Assign(tess *mortier.Tesselation, spec Spec) (*mortier.Tesselation, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	f := spec.Frequency
	if f == 0 {
		f = 1
	}
	angles := make([]float64, len(tess.Tiles))
	for i, tile := range tess.Tiles {
		angles[i] = spec.Base
		if spec.Mode != None {
			c := tile.Centroid
			angles[i] += spec.Amplitude * Noise(spec.Mode, f*c.X, f*c.Y)
		}
	}
	return tess.WithAngles(angles), nil
}

// Noise samples the value-noise field of mode at (x, y). The result lies in
// [-1, 1]. Mode None yields 0.
func Noise(mode Mode, x, y float64) float64 {
	var kernel func(float64) float64
	switch mode {
	case Smooth:
		kernel = smoothstep
	case Quintic:
		kernel = fade
	default:
		return 0
	}
	x0, y0 := math.Floor(x), math.Floor(y)
	u, v := kernel(x-x0), kernel(y-y0)
	ix, iy := int64(x0), int64(y0)

	a := lerp(lattice(ix, iy), lattice(ix+1, iy), u)
	b := lerp(lattice(ix, iy+1), lattice(ix+1, iy+1), u)
	return lerp(a, b, v)
}

// lattice hashes an integer lattice corner to a value in [-1, 1].
func lattice(ix, iy int64) float64 {
	h := uint32(ix)*0x27d4eb2d ^ uint32(iy)*0x165667b1
	h ^= h >> 15
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return float64(h)/float64(math.MaxUint32)*2 - 1
}

func smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
