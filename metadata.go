package twisty

import (
	"fmt"
	"math"

	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/twisty/pkg/orient"
	"github.com/SeamusWaldron/twisty/pkg/types"
)

// MoveMetadata describes a move for animation. None of it affects state.
type MoveMetadata struct {
	Axis     [3]float64
	Fraction int // turns per full revolution, 4 for quarter turns
	// Affected[i] is true when facet i turns with the move.
	Affected []bool
	// AffectedCubies is indexed by z*n*n + y*n + x for cube puzzles and
	// is nil otherwise.
	AffectedCubies []bool
}

// MoveMetadata returns the animation data for a move.
func (p *Puzzle) MoveMetadata(id int) MoveMetadata {
	if !p.model.ValidMove(id) {
		panic(fmt.Sprintf("%v: %d", ErrMoveOutOfRange, id))
	}
	mv := p.model.Moves[id]
	return MoveMetadata{
		Axis:           mv.Axis,
		Fraction:       mv.Fraction,
		Affected:       append([]bool(nil), mv.Affected...),
		AffectedCubies: append([]bool(nil), mv.AffectedCubies...),
	}
}

// RotationAt returns the rotation of affected facets when the move is
// progress of the way done (0 to 1). Compiled moves turn counterclockwise
// about their axis; precomputed data moves turn clockwise.
func (p *Puzzle) RotationAt(id int, progress float64) quaternion.Quaternion {
	md := p.MoveMetadata(id)
	angle := progress * 2 * math.Pi / float64(md.Fraction)
	if p.model.Moves[id].Side == types.NoSide {
		angle = -angle
	}
	return orient.AxisAngle(md.Axis, angle)
}

// OrientationQuaternion returns the render-time quaternion of an orientation
// class.
func (p *Puzzle) OrientationQuaternion(id orient.ID) quaternion.Quaternion {
	return p.model.Orient.Quaternion(id)
}
