// Package geometry derives the facets and moves of an NxNxN cube from six
// rotation matrices and a side permutation table.
package geometry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/SeamusWaldron/twisty/pkg/orient"
	"github.com/SeamusWaldron/twisty/pkg/types"
)

// ErrMalformed is returned when a rotation sends a facet nowhere.
var ErrMalformed = errors.New("geometry: malformed rotation tables")

// ErrSize is returned for cube sizes below one.
var ErrSize = errors.New("geometry: cube size must be at least 1")

// SidesPerSlice is the number of moves generated per slice position.
const SidesPerSlice = 6

// quarter is the turn fraction of every cube move.
const quarter = 4

// rotationMats[s] turns a slice counterclockwise when viewed from side s.
// Matrices are applied forwards to cubie positions centred on the cube.
var rotationMats = [6]orient.Matrix{
	{{+1, 0, 0}, {0, 0, +1}, {0, -1, 0}},
	{{+1, 0, 0}, {0, 0, -1}, {0, +1, 0}},
	{{0, 0, -1}, {0, +1, 0}, {+1, 0, 0}},
	{{0, 0, +1}, {0, +1, 0}, {-1, 0, 0}},
	{{0, +1, 0}, {-1, 0, 0}, {0, 0, +1}},
	{{0, -1, 0}, {+1, 0, 0}, {0, 0, +1}},
}

// sideRotations[s][a] is the side a facet on side a faces after rotating
// about side s.
var sideRotations = [6][6]types.Side{
	{0, 1, 5, 4, 2, 3},
	{0, 1, 4, 5, 3, 2},
	{4, 5, 2, 3, 1, 0},
	{5, 4, 2, 3, 0, 1},
	{3, 2, 0, 1, 4, 5},
	{2, 3, 1, 0, 4, 5},
}

// Palette holds the display color of each side: R, O, B, G, Y, W.
var Palette = [][3]float64{
	{0xbb / 255.0, 0, 0},
	{0xbb / 255.0, 0x60 / 255.0, 0},
	{0, 0, 0xbb / 255.0},
	{0, 0xbb / 255.0, 0},
	{0xbb / 255.0, 0xbb / 255.0, 0},
	{0xbb / 255.0, 0xbb / 255.0, 0xbb / 255.0},
}

// MoveID returns the id of the move turning slice about side.
func MoveID(slice int, side types.Side) int {
	return slice*SidesPerSlice + int(side)
}

// SliceSide splits a move id into its slice and side.
func SliceSide(id int) (int, types.Side) {
	return id / SidesPerSlice, types.Side(id % SidesPerSlice)
}

type facetKey struct {
	cubie types.Vec3
	side  types.Side
}

type compiler struct {
	n     int
	model *types.Model
	index map[facetKey]int
}

// Compile builds the model of an n x n x n cube. Facets are numbered in
// z, y, x, side order and moves in slice, side order.
func Compile(n int) (*types.Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrSize, n)
	}

	c := &compiler{
		n: n,
		model: &types.Model{
			Name:    fmt.Sprintf("cube%d", n),
			Size:    n,
			Orient:  orient.Cube(),
			Palette: Palette,
		},
		index: make(map[facetKey]int),
	}
	c.facets()
	if err := c.moves(); err != nil {
		return nil, err
	}
	if err := c.model.Check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return c.model, nil
}

func (c *compiler) facets() {
	n := c.n
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				outside := [6]bool{x == 0, x == n-1, y == 0, y == n-1, z == 0, z == n-1}
				for _, s := range types.Sides {
					if !outside[s] {
						continue
					}
					f := types.Facet{Cubie: types.Vec3{x, y, z}, Side: s, Color: int(s)}
					c.index[facetKey{f.Cubie, s}] = len(c.model.Facets)
					c.model.Facets = append(c.model.Facets, f)
				}
			}
		}
	}
}

func (c *compiler) moves() error {
	group := c.model.Orient
	for slice := 0; slice < c.n; slice++ {
		for _, side := range types.Sides {
			orientation, ok := group.Find(rotationMats[side])
			if !ok {
				return fmt.Errorf("%w: rotation for side %v is not a cube rotation", ErrMalformed, side)
			}
			dir := side.Direction()
			mv := types.Move{
				Slice:          slice,
				Side:           side,
				Perm:           make([]int, len(c.model.Facets)),
				Affected:       make([]bool, len(c.model.Facets)),
				AffectedCubies: c.affectedCubies(side, slice),
				Axis:           [3]float64{float64(dir[0]), float64(dir[1]), float64(dir[2])},
				Fraction:       quarter,
				Orientation:    orientation,
			}
			for i, f := range c.model.Facets {
				if f.Cubie[side.Axis()] != slice {
					mv.Perm[i] = i
					continue
				}
				dst, err := c.rotateFacet(f, side)
				if err != nil {
					return fmt.Errorf("move (slice %d, side %v), facet %d: %w", slice, side, i, err)
				}
				mv.Perm[i] = dst
				mv.Affected[i] = true
			}
			c.model.Moves = append(c.model.Moves, mv)
			c.model.Opposites = append(c.model.Opposites, MoveID(slice, side.Opposite()))
		}
	}
	return nil
}

func (c *compiler) affectedCubies(side types.Side, slice int) []bool {
	n := c.n
	out := make([]bool, n*n*n)
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				out[z*n*n+y*n+x] = types.Vec3{x, y, z}[side.Axis()] == slice
			}
		}
	}
	return out
}

// rotateCubie turns a cubie position about side. The matrix rotates about
// the origin, so every axis whose rotated basis flips negative is shifted
// back by n-1.
func (c *compiler) rotateCubie(pos types.Vec3, side types.Side) types.Vec3 {
	mat := rotationMats[side]
	v := types.Vec3(mat.Apply(pos))
	compensation := mat.Apply([3]int{1, 1, 1})
	for i := 0; i < 3; i++ {
		if compensation[i] < 0 {
			v[i] += c.n - 1
		}
	}
	return v
}

func (c *compiler) rotateFacet(f types.Facet, side types.Side) (int, error) {
	pos := c.rotateCubie(f.Cubie, side)
	newSide := sideRotations[side][f.Side]
	dst, ok := c.index[facetKey{pos, newSide}]
	if !ok {
		return 0, fmt.Errorf("%w: no facet at %v side %v", ErrMalformed, pos, newSide)
	}
	return dst, nil
}

var (
	cacheMu sync.Mutex
	cache   = map[int]*types.Model{}
)

// Cached returns the shared model for size n, compiling it on first use.
func Cached(n int) (*types.Model, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if m, ok := cache[n]; ok {
		return m, nil
	}
	m, err := Compile(n)
	if err != nil {
		return nil, err
	}
	cache[n] = m
	return m, nil
}
