package penrose

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/mortier"
)

// Sun starts 10, 10, 30: unpaired boundary halves skew the early rounds.
var knownCounts = map[Variant][]int{
	VariantSun:      {10, 10, 30, 70, 180, 460, 1190, 3090},
	VariantStar:     {5, 20, 45, 115, 290, 745, 1925, 5000},
	VariantKiteDart: {5, 15, 45, 115, 285, 735, 1915, 4985},
}

func TestGenerateCounts(t *testing.T) {
	for variant, counts := range knownCounts {
		t.Run(variant.String(), func(t *testing.T) {
			for depth, want := range counts {
				tess, err := Generate(Params{Variant: variant, Depth: depth}, mortier.DefaultLimits())
				if err != nil {
					t.Fatalf("depth %d: %v", depth, err)
				}
				if got := len(tess.Tiles); got != want {
					t.Errorf("depth %d: %d tiles, want %d", depth, got, want)
				}
			}
		})
	}
}

func TestGrowthApproachesPhiSquared(t *testing.T) {
	for variant, counts := range knownCounts {
		for depth := 6; depth < len(counts); depth++ {
			ratio := float64(counts[depth]) / float64(counts[depth-1])
			if math.Abs(ratio-Phi*Phi) > 0.05 {
				t.Errorf("%v depth %d: growth %v, want about %v", variant, depth, ratio, Phi*Phi)
			}
		}
	}
}

func TestHalfCountMatchesDeflation(t *testing.T) {
	for _, variant := range []Variant{VariantSun, VariantStar, VariantKiteDart} {
		halves, _ := seed(variant)
		for depth := 0; depth < 6; depth++ {
			n, ok := halfCount(halves, 0, math.MaxInt)
			if !ok || n != len(halves) {
				t.Fatalf("%v: halfCount(depth 0) = %d, want %d", variant, n, len(halves))
			}
			predicted, _ := halfCount(halves, 1, math.MaxInt)
			halves = deflate(halves)
			if predicted != len(halves) {
				t.Errorf("%v depth %d: predicted %d halves, deflation made %d", variant, depth+1, predicted, len(halves))
			}
		}
	}
}

func TestTilesAreRhombiOrKitesAndDarts(t *testing.T) {
	tess, err := Generate(Params{Variant: VariantStar, Depth: 4}, mortier.DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	quads := 0
	for i, tile := range tess.Tiles {
		if mortier.SignedArea(tile.Outline) <= 0 {
			t.Fatalf("tile %d is not counter-clockwise", i)
		}
		if !mortier.IsSimple(tile.Outline) {
			t.Fatalf("tile %d self-intersects", i)
		}
		if len(tile.Outline) != 4 {
			continue
		}
		quads++
		side := tile.Outline[0].Distance(tile.Outline[1])
		for k := 1; k < 4; k++ {
			if d := tile.Outline[k].Distance(tile.Outline[(k+1)%4]); math.Abs(d-side) > 1e-9 {
				t.Fatalf("tile %d is not a rhombus: sides %v and %v", i, side, d)
			}
		}
	}
	if quads == 0 {
		t.Error("no merged rhombi")
	}
}

func TestNoOverlappingEdges(t *testing.T) {
	// Every interior edge is shared by exactly two tiles: no duplicate
	// boundaries survive the merge.
	tess, err := Generate(Params{Variant: VariantSun, Depth: 5}, mortier.DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	type vertex [2]int64
	q := func(p mortier.Point) vertex {
		return vertex{int64(math.Round(p.X * 1e6)), int64(math.Round(p.Y * 1e6))}
	}
	edges := make(map[[2]vertex]int)
	for _, tile := range tess.Tiles {
		for k, p := range tile.Outline {
			a, b := q(p), q(tile.Outline[(k+1)%len(tile.Outline)])
			if a[0] > b[0] || (a[0] == b[0] && a[1] > b[1]) {
				a, b = b, a
			}
			edges[[2]vertex{a, b}]++
		}
	}
	for e, n := range edges {
		if n > 2 {
			t.Fatalf("edge %v used by %d tiles", e, n)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _ := Generate(Params{Variant: VariantKiteDart, Depth: 4}, mortier.DefaultLimits())
	b, _ := Generate(Params{Variant: VariantKiteDart, Depth: 4}, mortier.DefaultLimits())
	for i := range a.Tiles {
		if a.Tiles[i].ID != b.Tiles[i].ID || a.Tiles[i].Centroid != b.Tiles[i].Centroid {
			t.Fatalf("tile %d differs between runs", i)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		limits mortier.Limits
		want   error
	}{
		{"negative depth", Params{Depth: -1}, mortier.Limits{}, mortier.ErrInvalidParameter},
		{"unknown variant", Params{Variant: 9}, mortier.Limits{}, mortier.ErrInvalidParameter},
		{"depth limit", Params{Depth: 13}, mortier.Limits{}, mortier.ErrResourceLimit},
		{"tile ceiling", Params{Depth: 6}, mortier.Limits{MaxTiles: 1000}, mortier.ErrResourceLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(tt.params, tt.limits); !errors.Is(err, tt.want) {
				t.Errorf("Generate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
		ok   bool
	}{
		{"a", VariantSun, true},
		{"star", VariantStar, true},
		{"kite-dart", VariantKiteDart, true},
		{"p5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseVariant(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseVariant(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
