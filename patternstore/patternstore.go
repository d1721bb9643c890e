// Package patternstore provides the lattice pattern libraries used by the
// regular generator.
//
// A library is a JSON object mapping pattern identifiers to a lattice cell:
//
//	{
//	  "t1001": {
//	    "name": "square",
//	    "t1": [1, 0],
//	    "t2": [0, 1],
//	    "tiles": [[0, 0, 1, 0, 1, 1, 0, 1]]
//	  }
//	}
//
// Tile outlines are flat coordinate arrays [x0, y0, x1, y1, ...].
package patternstore

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/gogpu/mortier"
)

// Store looks up patterns by identifier. Implementations hand out deep
// copies and must be safe for concurrent use.
type Store interface {
	// Lookup returns the pattern with the given id, or a NotFound error.
	Lookup(id string) (mortier.Pattern, error)
	// IDs returns all identifiers in sorted order.
	IDs() []string
}

// MapStore is an immutable in-memory Store.
type MapStore struct {
	patterns map[string]mortier.Pattern
	ids      []string
}

var _ Store = (*MapStore)(nil)

// NewMapStore validates the patterns and returns a store holding copies of
// them. Duplicate identifiers are rejected.
func NewMapStore(patterns ...mortier.Pattern) (*MapStore, error) {
	s := &MapStore{patterns: make(map[string]mortier.Pattern, len(patterns))}
	for _, p := range patterns {
		if p.ID == "" {
			return nil, mortier.Errorf(mortier.KindInvalidParameter, "patternstore", "pattern without id")
		}
		if _, dup := s.patterns[p.ID]; dup {
			return nil, mortier.Errorf(mortier.KindInvalidParameter, "patternstore", "duplicate pattern %q", p.ID)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		s.patterns[p.ID] = p.Clone()
		s.ids = append(s.ids, p.ID)
	}
	slices.Sort(s.ids)
	return s, nil
}

// Lookup returns a copy of the pattern with the given id.
func (s *MapStore) Lookup(id string) (mortier.Pattern, error) {
	p, ok := s.patterns[id]
	if !ok {
		return mortier.Pattern{}, mortier.Errorf(mortier.KindNotFound, "patternstore", "unknown pattern %q", id)
	}
	return p.Clone(), nil
}

// IDs returns the sorted pattern identifiers.
func (s *MapStore) IDs() []string {
	return slices.Clone(s.ids)
}

// Len returns the number of patterns.
func (s *MapStore) Len() int {
	return len(s.ids)
}

type rawPattern struct {
	Name  string      `json:"name"`
	T1    [2]float64  `json:"t1"`
	T2    [2]float64  `json:"t2"`
	Tiles [][]float64 `json:"tiles"` // flat [x0,y0,x1,y1,...]
}

// LoadJSON reads a pattern library.
func LoadJSON(r io.Reader) (*MapStore, error) {
	var raw map[string]rawPattern
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("patternstore: decode library: %w", err)
	}

	patterns := make([]mortier.Pattern, 0, len(raw))
	for id, rp := range raw {
		p := mortier.Pattern{
			ID:    id,
			Name:  rp.Name,
			T1:    mortier.Pt(rp.T1[0], rp.T1[1]),
			T2:    mortier.Pt(rp.T2[0], rp.T2[1]),
			Tiles: make([][]mortier.Point, len(rp.Tiles)),
		}
		for i, flat := range rp.Tiles {
			pts, err := pointsFromFlat(flat)
			if err != nil {
				return nil, mortier.Errorf(mortier.KindInvalidGeometry, "patternstore",
					"pattern %q tile %d: %v", id, i, err)
			}
			p.Tiles[i] = pts
		}
		patterns = append(patterns, p)
	}
	return NewMapStore(patterns...)
}

// ReadFile reads a pattern library from a JSON file.
func ReadFile(path string) (*MapStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("patternstore: %w", err)
	}
	defer f.Close()
	return LoadJSON(f)
}

// WriteJSON writes every pattern of s as a JSON library, sorted by id.
func WriteJSON(w io.Writer, s Store) error {
	raw := make(map[string]rawPattern)
	for _, id := range s.IDs() {
		p, err := s.Lookup(id)
		if err != nil {
			return err
		}
		rp := rawPattern{
			Name:  p.Name,
			T1:    [2]float64{p.T1.X, p.T1.Y},
			T2:    [2]float64{p.T2.X, p.T2.Y},
			Tiles: make([][]float64, len(p.Tiles)),
		}
		for i, tile := range p.Tiles {
			rp.Tiles[i] = flatFromPoints(tile)
		}
		raw[id] = rp
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("patternstore: encode library: %w", err)
	}
	return nil
}

func pointsFromFlat(flat []float64) ([]mortier.Point, error) {
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("odd coordinate count %d", len(flat))
	}
	pts := make([]mortier.Point, len(flat)/2)
	for i := range pts {
		pts[i] = mortier.Pt(flat[2*i], flat[2*i+1])
	}
	return pts, nil
}

func flatFromPoints(pts []mortier.Point) []float64 {
	flat := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		flat = append(flat, p.X, p.Y)
	}
	return flat
}

// Pick selects a pattern deterministically from seed. The same store and
// seed always yield the same pattern.
func Pick(s Store, seed uint64) (mortier.Pattern, error) {
	ids := s.IDs()
	if len(ids) == 0 {
		return mortier.Pattern{}, mortier.Errorf(mortier.KindNotFound, "patternstore", "empty pattern library")
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return s.Lookup(ids[r.IntN(len(ids))])
}
