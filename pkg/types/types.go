// Package types contains the shared puzzle model produced by the geometry
// compiler and the puzzle-data loader.
package types

import (
	"fmt"

	"github.com/SeamusWaldron/twisty/pkg/orient"
)

// Side is one of the six axis directions a facet can face.
type Side int

const (
	SideNegX Side = 0 // Left
	SidePosX Side = 1 // Right
	SideNegY Side = 2 // Front
	SidePosY Side = 3 // Back
	SideNegZ Side = 4 // Down
	SidePosZ Side = 5 // Up

	// NoSide marks facets whose side is unknown (precomputed data may omit it).
	NoSide Side = -1
)

// Sides lists the six sides in index order.
var Sides = [6]Side{SideNegX, SidePosX, SideNegY, SidePosY, SideNegZ, SidePosZ}

func (s Side) String() string {
	switch s {
	case SideNegX:
		return "-x"
	case SidePosX:
		return "+x"
	case SideNegY:
		return "-y"
	case SidePosY:
		return "+y"
	case SideNegZ:
		return "-z"
	case SidePosZ:
		return "+z"
	default:
		return "?"
	}
}

// Axis returns the coordinate index (0, 1, 2) the side lies along.
func (s Side) Axis() int {
	return int(s) / 2
}

// Direction returns the outward unit vector of the side.
func (s Side) Direction() Vec3 {
	var v Vec3
	if s%2 == 0 {
		v[s.Axis()] = -1
	} else {
		v[s.Axis()] = 1
	}
	return v
}

// Opposite returns the side facing the other way along the same axis.
func (s Side) Opposite() Side {
	return s ^ 1
}

// Vec3 is an integer lattice vector.
type Vec3 [3]int

// Manhattan returns the L1 distance between v and o.
func (v Vec3) Manhattan(o Vec3) int {
	d := 0
	for i := 0; i < 3; i++ {
		if v[i] > o[i] {
			d += v[i] - o[i]
		} else {
			d += o[i] - v[i]
		}
	}
	return d
}

// NoColor marks structural facets that carry no color.
const NoColor = -1

// Facet is the immutable identity of one face unit of a puzzle.
type Facet struct {
	Cubie Vec3 // lattice position of the piece (or panel) holding the facet
	Side  Side
	Color int // initial palette index, or NoColor
}

// Colored reports whether the facet carries a palette color.
func (f Facet) Colored() bool {
	return f.Color != NoColor
}

// Move is one generator of the puzzle group.
type Move struct {
	Slice int  // slice position along the side's axis; -1 for data moves
	Side  Side // rotation side; NoSide for data moves

	// Perm[i] is the destination of the facet currently at position i.
	Perm []int
	// Affected[i] is true when facet i is carried by the rotation.
	Affected []bool
	// AffectedCubies is indexed by z*n*n + y*n + x; nil for data moves.
	AffectedCubies []bool

	Axis        [3]float64
	Fraction    int
	Orientation orient.ID
}

// Model is the immutable output of puzzle construction. It is shared by every
// puzzle instance built from the same source and must not be mutated.
type Model struct {
	Name   string
	Size   int
	Facets []Facet
	Moves  []Move

	// Opposites[m] is the move whose permutation inverts move m.
	Opposites []int
	// Gestures, when non-nil, is a precomputed [from][to] move table; -1
	// means no move.
	Gestures [][]int

	Orient  *orient.Group
	Palette [][3]float64
}

// FacetCount returns the number of facets.
func (m *Model) FacetCount() int {
	return len(m.Facets)
}

// MoveCount returns the number of generating moves.
func (m *Model) MoveCount() int {
	return len(m.Moves)
}

// ValidMove reports whether id names a move of m.
func (m *Model) ValidMove(id int) bool {
	return id >= 0 && id < len(m.Moves)
}

// ValidFacet reports whether i names a facet of m.
func (m *Model) ValidFacet(i int) bool {
	return i >= 0 && i < len(m.Facets)
}

// Check verifies the structural invariants every model must satisfy: permutations are
// bijections, opposites invert their moves and orientation ids are in range.
func (m *Model) Check() error {
	n := len(m.Facets)
	if m.Orient == nil {
		return fmt.Errorf("model %q has no orientation group", m.Name)
	}
	if len(m.Opposites) != len(m.Moves) {
		return fmt.Errorf("model %q has %d opposites for %d moves", m.Name, len(m.Opposites), len(m.Moves))
	}
	for id, mv := range m.Moves {
		if len(mv.Perm) != n || len(mv.Affected) != n {
			return fmt.Errorf("move %d covers %d facets, want %d", id, len(mv.Perm), n)
		}
		seen := make([]bool, n)
		for i, dst := range mv.Perm {
			if dst < 0 || dst >= n || seen[dst] {
				return fmt.Errorf("move %d is not a bijection at facet %d", id, i)
			}
			seen[dst] = true
			if dst != i && !mv.Affected[i] {
				return fmt.Errorf("move %d relocates unaffected facet %d", id, i)
			}
		}
		if !m.Orient.Valid(mv.Orientation) {
			return fmt.Errorf("move %d has orientation %d outside the group", id, mv.Orientation)
		}
		if mv.Fraction <= 0 {
			return fmt.Errorf("move %d has turn fraction %d", id, mv.Fraction)
		}
	}
	for id, opp := range m.Opposites {
		if !m.ValidMove(opp) {
			return fmt.Errorf("move %d has opposite %d out of range", id, opp)
		}
		fwd, back := m.Moves[id], m.Moves[opp]
		for i := 0; i < n; i++ {
			if back.Perm[fwd.Perm[i]] != i || back.Affected[i] != fwd.Affected[i] {
				return fmt.Errorf("move %d is not inverted by %d", id, opp)
			}
		}
		if m.Orient.Compose(fwd.Orientation, back.Orientation) != orient.Identity {
			return fmt.Errorf("orientation of move %d is not inverted by %d", id, opp)
		}
	}
	if m.Gestures != nil {
		if len(m.Gestures) != n {
			return fmt.Errorf("gesture table has %d rows, want %d", len(m.Gestures), n)
		}
		for i, row := range m.Gestures {
			if len(row) != n {
				return fmt.Errorf("gesture row %d has %d entries, want %d", i, len(row), n)
			}
			for j, id := range row {
				if id != -1 && !m.ValidMove(id) {
					return fmt.Errorf("gesture (%d, %d) names move %d out of range", i, j, id)
				}
			}
		}
	}
	return nil
}
