package twisty

import (
	"fmt"

	"github.com/SeamusWaldron/twisty/internal/notation"
	"github.com/SeamusWaldron/twisty/pkg/types"
)

// isCube reports whether the model came from the cube compiler, whose move
// ids follow slice and side order.
func (p *Puzzle) isCube() bool {
	return p.model.Size > 0 && p.model.MoveCount() == p.model.Size*6 &&
		p.model.Moves[0].Side != types.NoSide
}

// ParseMoves converts face-turn notation such as "R U R' U'" into move ids.
// Only cube puzzles have a notation.
func (p *Puzzle) ParseMoves(s string) ([]int, error) {
	if !p.isCube() {
		return nil, fmt.Errorf("%w: puzzle %q has no face notation", ErrInvalidNotation, p.model.Name)
	}
	return notation.ParseSequence(s, p.model.Size)
}

// ApplyNotation parses s and plays every move interactively. Nothing is
// applied if s does not parse.
func (p *Puzzle) ApplyNotation(s string) error {
	moves, err := p.ParseMoves(s)
	if err != nil {
		return err
	}
	for _, id := range moves {
		p.DoMove(id)
	}
	return nil
}

// FormatMoves renders move ids in face-turn notation. Puzzles without a
// notation get plain ids.
func (p *Puzzle) FormatMoves(moves []int) string {
	if !p.isCube() {
		return fmt.Sprint(moves)
	}
	return notation.FormatSequence(moves, p.model.Size)
}
