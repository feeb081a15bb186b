package twisty

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/twisty/internal/geometry"
	"github.com/SeamusWaldron/twisty/internal/puzzledata"
	"github.com/SeamusWaldron/twisty/pkg/types"
)

// Puzzle is one playable puzzle instance: a state, its move history and the
// shared move tables it was built from. A Puzzle is not safe for concurrent
// use.
type Puzzle struct {
	model   *types.Model
	state   *State
	history History
	cfg     *config
}

// NewCube returns a solved n x n x n cube. Models are compiled once per size
// and shared between puzzles.
func NewCube(n int, opts ...Option) (*Puzzle, error) {
	model, err := geometry.Cached(n)
	if err != nil {
		return nil, fmt.Errorf("failed to build %dx%dx%d cube: %w", n, n, n, err)
	}
	return FromModel(model, opts...), nil
}

// MustCube is like NewCube but panics on error.
func MustCube(n int, opts ...Option) *Puzzle {
	p, err := NewCube(n, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// FromData builds a puzzle from precomputed puzzle data in JSON or YAML.
func FromData(data []byte, opts ...Option) (*Puzzle, error) {
	d, err := puzzledata.Decode(data)
	if err != nil {
		return nil, err
	}
	model, err := d.Model()
	if err != nil {
		return nil, err
	}
	return FromModel(model, opts...), nil
}

// FromDataFile reads precomputed puzzle data from path.
func FromDataFile(path string, opts ...Option) (*Puzzle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle data: %w", err)
	}
	return FromData(raw, opts...)
}

// FromModel returns a puzzle in the default state of model. The model is
// shared, not copied.
func FromModel(model *types.Model, opts ...Option) *Puzzle {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Puzzle{
		model: model,
		state: NewState(model),
		cfg:   cfg,
	}
}

// Model returns the shared, read-only model.
func (p *Puzzle) Model() *types.Model {
	return p.model
}

// FacetCount returns the number of facets.
func (p *Puzzle) FacetCount() int {
	return p.model.FacetCount()
}

// MoveCount returns the number of generating moves.
func (p *Puzzle) MoveCount() int {
	return p.model.MoveCount()
}

// ApplyMove applies a move without recording it in the history.
func (p *Puzzle) ApplyMove(id int) {
	p.state.Apply(id)
}

// OppositeMove returns the move that undoes id.
func (p *Puzzle) OppositeMove(id int) int {
	return p.state.Opposite(id)
}

// Snapshot returns a copy of the current colors and orientations.
func (p *Puzzle) Snapshot() Snapshot {
	return p.state.Snapshot()
}

// IsSolved returns true if every facet holds its home color.
func (p *Puzzle) IsSolved() bool {
	return p.state.IsSolved()
}

// Reset returns the puzzle to its default state and forgets all history,
// including scrambles.
func (p *Puzzle) Reset() {
	p.state = NewState(p.model)
	p.history = History{}
}

func (p *Puzzle) log() logrus.FieldLogger {
	return p.cfg.logger.WithField("puzzle", p.model.Name)
}
