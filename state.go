package twisty

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/SeamusWaldron/twisty/pkg/orient"
	"github.com/SeamusWaldron/twisty/pkg/types"
)

// State holds the color and orientation at every facet position of one
// puzzle. It is the move-applying core shared by Puzzle and by replay.
type State struct {
	model        *types.Model
	colors       []int
	orientations []orient.ID
}

// NewState returns the default state of a model: every facet holds its own
// color in the identity orientation.
func NewState(model *types.Model) *State {
	s := &State{
		model:        model,
		colors:       make([]int, len(model.Facets)),
		orientations: make([]orient.ID, len(model.Facets)),
	}
	for i, f := range model.Facets {
		s.colors[i] = f.Color
	}
	return s
}

// Apply performs a move. The next arrays are built from the previous ones
// and swapped in whole, so no caller ever sees a partly applied move.
//
// An out-of-range id is a programming error and panics.
func (s *State) Apply(id int) {
	if !s.model.ValidMove(id) {
		panic(fmt.Sprintf("%v: %d (puzzle has %d moves)", ErrMoveOutOfRange, id, len(s.model.Moves)))
	}
	mv := &s.model.Moves[id]
	group := s.model.Orient

	colors := make([]int, len(s.colors))
	orientations := make([]orient.ID, len(s.orientations))
	for i, dst := range mv.Perm {
		colors[dst] = s.colors[i]
		if mv.Affected[i] {
			orientations[dst] = group.Compose(s.orientations[i], mv.Orientation)
		} else {
			orientations[dst] = s.orientations[i]
		}
	}
	s.colors = colors
	s.orientations = orientations
}

// Opposite returns the move that undoes id.
func (s *State) Opposite(id int) int {
	if !s.model.ValidMove(id) {
		panic(fmt.Sprintf("%v: %d (puzzle has %d moves)", ErrMoveOutOfRange, id, len(s.model.Moves)))
	}
	return s.model.Opposites[id]
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	return &State{
		model:        s.model,
		colors:       append([]int(nil), s.colors...),
		orientations: append([]orient.ID(nil), s.orientations...),
	}
}

// Equal reports whether s and o hold the same colors and orientations.
func (s *State) Equal(o *State) bool {
	if len(s.colors) != len(o.colors) {
		return false
	}
	for i := range s.colors {
		if s.colors[i] != o.colors[i] || s.orientations[i] != o.orientations[i] {
			return false
		}
	}
	return true
}

// IsSolved returns true if every facet position holds its home color.
// Orientations are not considered.
func (s *State) IsSolved() bool {
	for i, f := range s.model.Facets {
		if s.colors[i] != f.Color {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of the current arrays for rendering.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Colors:       append([]int(nil), s.colors...),
		Orientations: append([]orient.ID(nil), s.orientations...),
	}
}

// Snapshot is an immutable copy of puzzle state handed to renderers.
type Snapshot struct {
	Colors       []int
	Orientations []orient.ID
}

// Fingerprint returns a BLAKE2b-256 digest of the snapshot. Equal states have
// equal fingerprints.
func (s Snapshot) Fingerprint() [32]byte {
	buf := make([]byte, 0, 8*len(s.Colors))
	for i := range s.Colors {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(s.Colors[i])))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Orientations[i]))
	}
	return blake2b.Sum256(buf)
}

// Equal reports whether two snapshots hold the same arrays.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s.Colors) != len(o.Colors) || len(s.Orientations) != len(o.Orientations) {
		return false
	}
	for i := range s.Colors {
		if s.Colors[i] != o.Colors[i] || s.Orientations[i] != o.Orientations[i] {
			return false
		}
	}
	return true
}
