// Package notation converts between cube move ids and standard face-turn
// notation such as R, U', F2 and 2R for an inner layer.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/twisty/internal/geometry"
	"github.com/SeamusWaldron/twisty/pkg/types"
)

// ErrInvalid is returned for tokens that do not name a move.
var ErrInvalid = errors.New("notation: invalid move")

// Face letters by side. Viewed from the front (-y) with up at +z.
var faceLetters = [6]byte{'L', 'R', 'F', 'B', 'D', 'U'}

func faceSide(c byte) (types.Side, bool) {
	switch c {
	case 'L', 'l':
		return types.SideNegX, true
	case 'R', 'r':
		return types.SidePosX, true
	case 'F', 'f':
		return types.SideNegY, true
	case 'B', 'b':
		return types.SidePosY, true
	case 'D', 'd':
		return types.SideNegZ, true
	case 'U', 'u':
		return types.SidePosZ, true
	default:
		return 0, false
	}
}

// ParseNotation parses one token for an n x n x n cube. A clockwise turn of
// a face is a turn about the opposite side; R2 yields two moves.
// Examples: R, R', R2, 2R, 3U'
func ParseNotation(s string, n int) ([]int, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: empty token", ErrInvalid)
	}

	// Extract layer depth
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	depth := 1
	if i > 0 {
		d, err := strconv.Atoi(s[:i])
		if err != nil || d < 1 || d > n {
			return nil, fmt.Errorf("%w: layer %q on a size %d cube", ErrInvalid, s[:i], n)
		}
		depth = d
	}
	if i >= len(s) {
		return nil, fmt.Errorf("%w: %q has no face", ErrInvalid, s)
	}

	// Extract face
	face, ok := faceSide(s[i])
	if !ok {
		return nil, fmt.Errorf("%w: unknown face in %q", ErrInvalid, s)
	}
	slice := depth - 1
	if face%2 == 1 {
		slice = n - depth
	}

	// Extract turn
	clockwise := geometry.MoveID(slice, face.Opposite())
	switch s[i+1:] {
	case "":
		return []int{clockwise}, nil
	case "'", "`":
		return []int{geometry.MoveID(slice, face)}, nil
	case "2", "2'":
		return []int{clockwise, clockwise}, nil
	default:
		return nil, fmt.Errorf("%w: unknown turn in %q", ErrInvalid, s)
	}
}

// ParseSequence parses a space-separated sequence of moves.
func ParseSequence(s string, n int) ([]int, error) {
	var moves []int
	for _, part := range strings.Fields(s) {
		ids, err := ParseNotation(part, n)
		if err != nil {
			return nil, err
		}
		moves = append(moves, ids...)
	}
	return moves, nil
}

// Format returns the notation of a move of an n x n x n cube. Slices in the
// lower half are named from the negative face, the rest from the positive
// face.
func Format(id, n int) string {
	slice, side := geometry.SliceSide(id)
	face := types.Side(side.Axis() * 2)
	depth := slice + 1
	if slice > (n-1)/2 {
		face++
		depth = n - slice
	}

	var b strings.Builder
	if depth > 1 {
		b.WriteString(strconv.Itoa(depth))
	}
	b.WriteByte(faceLetters[face])
	if side == face {
		b.WriteByte('\'')
	}
	return b.String()
}

// FormatSequence formats moves as a space-separated string.
func FormatSequence(moves []int, n int) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, id := range moves {
		parts[i] = Format(id, n)
	}
	return strings.Join(parts, " ")
}
