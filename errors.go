package twisty

import (
	"errors"

	"github.com/SeamusWaldron/twisty/internal/geometry"
	"github.com/SeamusWaldron/twisty/internal/notation"
	"github.com/SeamusWaldron/twisty/internal/puzzledata"
)

// Sentinel errors for the twisty package.
var (
	// Construction errors
	ErrInvalidSize       = geometry.ErrSize
	ErrMalformedGeometry = geometry.ErrMalformed
	ErrInvalidData       = puzzledata.ErrInvalid

	// Contract violations. These are reported by panicking.
	ErrMoveOutOfRange = errors.New("twisty: move id out of range")

	// Recoverable input errors
	ErrInvalidHistory  = errors.New("twisty: invalid saved history")
	ErrInvalidFragment = errors.New("twisty: invalid history fragment")
	ErrInvalidNotation = notation.ErrInvalid
)
