// Package render lays puzzle facets out on a terminal grid and draws them
// with lipgloss.
package render

import (
	"errors"

	"github.com/SeamusWaldron/twisty/pkg/types"
)

// ErrNotCube is returned when a net is requested for a non-cube model.
var ErrNotCube = errors.New("render: model is not a cube")

// Grid maps terminal cells to facet indices. Empty cells hold -1.
type Grid struct {
	cells [][]int
}

func newGrid(rows, cols int) *Grid {
	g := &Grid{cells: make([][]int, rows)}
	for r := range g.cells {
		g.cells[r] = make([]int, cols)
		for c := range g.cells[r] {
			g.cells[r][c] = -1
		}
	}
	return g
}

// Rows returns the grid height.
func (g *Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the grid width.
func (g *Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// At returns the facet at a cell, or -1 for empty or out-of-range cells.
func (g *Grid) At(row, col int) int {
	if row < 0 || row >= g.Rows() || col < 0 || col >= g.Cols() {
		return -1
	}
	return g.cells[row][col]
}

// Find returns the cell holding facet.
func (g *Grid) Find(facet int) (row, col int, ok bool) {
	for r, line := range g.cells {
		for c, f := range line {
			if f == facet && f >= 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// First returns the first non-empty cell in reading order.
func (g *Grid) First() (row, col int, ok bool) {
	for r, line := range g.cells {
		for c, f := range line {
			if f >= 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// netBlocks places each face of the net, in block units:
//
//	   U
//	L  F  R  B
//	   D
var netBlocks = map[types.Side][2]int{
	types.SidePosZ: {0, 1},
	types.SideNegX: {1, 0},
	types.SideNegY: {1, 1},
	types.SidePosX: {1, 2},
	types.SidePosY: {1, 3},
	types.SideNegZ: {2, 1},
}

// netCubie returns the cubie drawn at (row, col) of a face, viewed from
// outside with the front at -y and up at +z.
func netCubie(face types.Side, row, col, n int) types.Vec3 {
	switch face {
	case types.SideNegY:
		return types.Vec3{col, 0, n - 1 - row}
	case types.SidePosX:
		return types.Vec3{n - 1, col, n - 1 - row}
	case types.SidePosY:
		return types.Vec3{n - 1 - col, n - 1, n - 1 - row}
	case types.SideNegX:
		return types.Vec3{0, n - 1 - col, n - 1 - row}
	case types.SidePosZ:
		return types.Vec3{col, n - 1 - row, n - 1}
	default:
		return types.Vec3{col, row, 0}
	}
}

// CubeNet lays out the six faces of a cube model as an unfolded cross.
func CubeNet(model *types.Model) (*Grid, error) {
	n := model.Size
	if n < 1 || len(model.Facets) != 6*n*n {
		return nil, ErrNotCube
	}

	type key struct {
		cubie types.Vec3
		side  types.Side
	}
	index := make(map[key]int, len(model.Facets))
	for i, f := range model.Facets {
		if f.Side == types.NoSide {
			return nil, ErrNotCube
		}
		index[key{f.Cubie, f.Side}] = i
	}

	g := newGrid(3*n, 4*n)
	for face, block := range netBlocks {
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				i, ok := index[key{netCubie(face, row, col, n), face}]
				if !ok {
					return nil, ErrNotCube
				}
				g.cells[block[0]*n+row][block[1]*n+col] = i
			}
		}
	}
	return g, nil
}

// Strip lays out the colored facets of any model in index order, width
// cells per row.
func Strip(model *types.Model, width int) *Grid {
	if width < 1 {
		width = 1
	}
	var facets []int
	for i, f := range model.Facets {
		if f.Colored() {
			facets = append(facets, i)
		}
	}

	rows := (len(facets) + width - 1) / width
	g := newGrid(rows, width)
	for k, i := range facets {
		g.cells[k/width][k%width] = i
	}
	return g
}

// ForModel returns a cube net when the model is a cube and a strip of the
// given width otherwise.
func ForModel(model *types.Model, width int) *Grid {
	if g, err := CubeNet(model); err == nil {
		return g
	}
	return Strip(model, width)
}
