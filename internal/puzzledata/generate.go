package puzzledata

import (
	"math"

	"github.com/SeamusWaldron/twisty/pkg/orient"
	"github.com/SeamusWaldron/twisty/pkg/types"
)

// shellColors are the side colors of generated data, in side order.
var shellColors = [][3]float64{
	{1, 0, 0},
	{1, 0.5, 0},
	{0, 0, 1},
	{0, 1, 0},
	{1, 1, 0},
	{1, 1, 1},
}

const panelMargin = 0.1

var panelExtents = [5][2]float64{
	{-3 - panelMargin, -3},
	{-3 + panelMargin, -1 - panelMargin},
	{-1 + panelMargin, 1 - panelMargin},
	{1 + panelMargin, 3 - panelMargin},
	{3, 3 + panelMargin},
}

var cubieExtents = [3][2]float64{
	{-3, -1},
	{-1, 1},
	{1, 3},
}

// Gesture scores used when building the move table.
const (
	gestureBudget   = 50
	gestureMismatch = 100
	gestureSameFace = 10
)

// Generate builds the data for a 3x3x3 cube modelled as panels on a 5x5x5
// lattice. Outer panels are colored; each cubie also gets structural panels
// on its hidden faces. The move table is precomputed.
func Generate() *Data {
	d := &Data{Size: 3, Colors: shellColors}
	d.generatePanels()

	group := orient.Cube()
	d.QuaternionTable = group.Table()
	for id := 0; id < group.Len(); id++ {
		q := group.Quaternion(orient.ID(id))
		d.Quaternions = append(d.Quaternions, Quaternion{
			W: round4(q.W), X: round4(q.X), Y: round4(q.Y), Z: round4(q.Z),
		})
	}

	d.generateMoves(group)
	d.MoveOpposites = d.findOpposites()
	d.MoveTable = d.buildMoveTable()
	return d
}

func (d *Data) generatePanels() {
	for x := -2; x <= 2; x++ {
		for y := -2; y <= 2; y++ {
			for z := -2; z <= 2; z++ {
				pos := [3]int{x, y, z}
				hi, mid := sortedAbs(pos)
				if mid >= 2 {
					continue
				}
				p := Panel{
					Pos:         pos,
					CubieCenter: [3]int{2 * sgn(x), 2 * sgn(y), 2 * sgn(z)},
					Color:       types.NoColor,
				}
				if hi == 2 {
					for i := 0; i < 3; i++ {
						p.Box = append(p.Box, panelExtents[pos[i]+2])
					}
					for _, s := range types.Sides {
						dir := s.Direction()
						if dir[0]*x+dir[1]*y+dir[2]*z == 2 {
							side := int(s)
							p.Color = side
							p.Side = &side
						}
					}
				} else {
					for i := 0; i < 3; i++ {
						p.Box = append(p.Box, cubieExtents[pos[i]+1])
					}
				}
				d.Panels = append(d.Panels, p)
			}
		}
	}
}

func (d *Data) generateMoves(group *orient.Group) {
	index := make(map[[3]int]int, len(d.Panels))
	for i, p := range d.Panels {
		index[p.Pos] = i
	}

	for _, s := range types.Sides {
		dir := s.Direction()
		// Moves turn clockwise about their axis, animated with a negative angle.
		rot := orient.QuarterTurn(dir).Transpose()
		q, _ := group.Find(rot)
		for plane := -1; plane <= 1; plane++ {
			mv := Move{
				AffectedPanels: make([]int, len(d.Panels)),
				Axis:           [3]float64{float64(dir[0]), float64(dir[1]), float64(dir[2])},
				Fraction:       4,
				Quaternion:     int(q),
				PanelPerm:      make([]int, len(d.Panels)),
			}
			for i, p := range d.Panels {
				mv.PanelPerm[i] = i
				if sgn(p.Pos[s.Axis()]) != plane {
					continue
				}
				mv.AffectedPanels[i] = 1
				mv.PanelPerm[i] = index[rot.Apply(p.Pos)]
			}
			d.Moves = append(d.Moves, mv)
		}
	}
}

func (d *Data) findOpposites() []int {
	opposites := make([]int, len(d.Moves))
	for m, fwd := range d.Moves {
		opposites[m] = -1
		for o, back := range d.Moves {
			if inverts(fwd.PanelPerm, back.PanelPerm) {
				opposites[m] = o
				break
			}
		}
	}
	return opposites
}

// buildMoveTable scores every move for every pair of colored panels and
// keeps the first best one under the budget.
func (d *Data) buildMoveTable() [][]int {
	n := len(d.Panels)
	table := make([][]int, n)
	for i := range table {
		table[i] = make([]int, n)
		for j := range table[i] {
			table[i][j] = -1
		}
	}

	for from, old := range d.Panels {
		for to, target := range d.Panels {
			if from == to || old.Color == types.NoColor || target.Color == types.NoColor {
				continue
			}
			best, bestDistance := -1, gestureBudget
			for id, mv := range d.Moves {
				moved := mv.PanelPerm[from]
				distance := d.gestureDistance(from, to, moved, moved != from, mv.PanelPerm[to] != to)
				if distance < bestDistance {
					best, bestDistance = id, distance
				}
			}
			table[from][to] = best
		}
	}
	return table
}

func (d *Data) gestureDistance(from, to, moved int, fromMoves, toMoves bool) int {
	old, target, landed := d.Panels[from], d.Panels[to], d.Panels[moved]
	if !fromMoves || moved == from {
		return gestureMismatch
	}
	if target.Color == landed.Color && target.Color != old.Color {
		return 0
	}
	if toMoves {
		distance := manhattan(landed.Pos, target.Pos)
		if landed.Color == old.Color {
			distance += gestureSameFace
		}
		return distance
	}
	return gestureMismatch
}

func sortedAbs(v [3]int) (hi, mid int) {
	a, b, c := abs(v[0]), abs(v[1]), abs(v[2])
	if a < b {
		a, b = b, a
	}
	if b < c {
		b, c = c, b
	}
	if a < b {
		a, b = b, a
	}
	return a, b
}

func manhattan(a, b [3]int) int {
	return abs(a[0]-b[0]) + abs(a[1]-b[1]) + abs(a[2]-b[2])
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sgn(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
