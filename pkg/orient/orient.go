// Package orient implements the orientation algebra for twisty puzzles.
//
// An orientation is a small integer naming one element of a finite rotation
// group. Composition is a table lookup, so orientations stay exact no matter
// how many moves are applied. Floating point quaternions are only produced
// at the render boundary via Group.Quaternion.
package orient

import (
	"fmt"
	"math"
	"sync"

	"github.com/westphae/quaternion"
)

// ID identifies an orientation class within a Group.
type ID int

// Identity is the orientation every facet starts in.
const Identity ID = 0

// Group is a closed composition table over a finite set of orientation
// classes. Element 0 is always the identity.
type Group struct {
	compose [][]ID
	inverse []ID
	quats   []quaternion.Quaternion
	mats    []Matrix
}

var (
	cubeOnce  sync.Once
	cubeGroup *Group
)

// Cube returns the group of the 24 proper rotations of a cube. The group is
// built once and shared.
func Cube() *Group {
	cubeOnce.Do(func() {
		cubeGroup = newMatrixGroup(cubeRotations())
	})
	return cubeGroup
}

// cubeRotations enumerates the signed permutation matrices with determinant
// +1. Permutations in lexicographic order, signs with + first, so the
// identity comes out first.
func cubeRotations() []Matrix {
	perms := [][3]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	var out []Matrix
	for _, p := range perms {
		for signs := 0; signs < 8; signs++ {
			var m Matrix
			for row := 0; row < 3; row++ {
				s := 1
				if signs&(1<<row) != 0 {
					s = -1
				}
				m[row][p[row]] = s
			}
			if m.Det() == 1 {
				out = append(out, m)
			}
		}
	}
	return out
}

func newMatrixGroup(mats []Matrix) *Group {
	index := make(map[Matrix]ID, len(mats))
	for i, m := range mats {
		index[m] = ID(i)
	}

	g := &Group{
		compose: make([][]ID, len(mats)),
		inverse: make([]ID, len(mats)),
		quats:   make([]quaternion.Quaternion, len(mats)),
		mats:    mats,
	}
	for a, ma := range mats {
		g.compose[a] = make([]ID, len(mats))
		for b, mb := range mats {
			c, ok := index[ma.Mul(mb)]
			if !ok {
				panic(fmt.Sprintf("orient: rotation set not closed at (%d, %d)", a, b))
			}
			g.compose[a][b] = c
			if c == Identity {
				g.inverse[a] = ID(b)
			}
		}
		g.quats[a] = ma.Quaternion()
	}
	return g
}

// FromTable builds a group from a precomputed composition table, where
// table[a][b] is the class of a composed with b. quats is optional; when
// given it must have one entry per class.
func FromTable(table [][]int, quats []quaternion.Quaternion) (*Group, error) {
	n := len(table)
	if n == 0 {
		return nil, fmt.Errorf("orient: empty composition table")
	}
	if len(quats) != 0 && len(quats) != n {
		return nil, fmt.Errorf("orient: %d quaternions for %d classes", len(quats), n)
	}

	g := &Group{
		compose: make([][]ID, n),
		inverse: make([]ID, n),
	}
	for a, row := range table {
		if len(row) != n {
			return nil, fmt.Errorf("orient: row %d has %d entries, want %d", a, len(row), n)
		}
		seen := make([]bool, n)
		g.compose[a] = make([]ID, n)
		g.inverse[a] = -1
		for b, c := range row {
			if c < 0 || c >= n {
				return nil, fmt.Errorf("orient: entry (%d, %d) = %d out of range", a, b, c)
			}
			if seen[c] {
				return nil, fmt.Errorf("orient: row %d repeats class %d", a, c)
			}
			seen[c] = true
			g.compose[a][b] = ID(c)
			if c == 0 {
				g.inverse[a] = ID(b)
			}
		}
	}

	for a := 0; a < n; a++ {
		if g.compose[0][a] != ID(a) || g.compose[a][0] != ID(a) {
			return nil, fmt.Errorf("orient: class 0 is not the identity for class %d", a)
		}
		if g.compose[g.inverse[a]][a] != Identity {
			return nil, fmt.Errorf("orient: class %d has no two-sided inverse", a)
		}
	}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				if g.compose[g.compose[a][b]][c] != g.compose[a][g.compose[b][c]] {
					return nil, fmt.Errorf("orient: composition not associative at (%d, %d, %d)", a, b, c)
				}
			}
		}
	}

	if len(quats) != 0 {
		g.quats = append([]quaternion.Quaternion(nil), quats...)
	}
	return g, nil
}

// Len returns the number of orientation classes.
func (g *Group) Len() int {
	return len(g.compose)
}

// Valid reports whether id names a class of g.
func (g *Group) Valid(id ID) bool {
	return id >= 0 && int(id) < len(g.compose)
}

// Compose returns the class of the matrix product a*b: b is applied
// first, then a. State tracking composes as Compose(old, move).
func (g *Group) Compose(a, b ID) ID {
	return g.compose[a][b]
}

// Inverse returns the class that composes with a to the identity.
func (g *Group) Inverse(a ID) ID {
	return g.inverse[a]
}

// Table returns a copy of the composition table.
func (g *Group) Table() [][]int {
	out := make([][]int, len(g.compose))
	for a, row := range g.compose {
		out[a] = make([]int, len(row))
		for b, c := range row {
			out[a][b] = int(c)
		}
	}
	return out
}

// Quaternion returns the unit quaternion for a class. Table-backed groups
// without quaternions report the identity for every class.
func (g *Group) Quaternion(id ID) quaternion.Quaternion {
	if g.quats == nil {
		return quaternion.Quaternion{W: 1}
	}
	return g.quats[id]
}

// Matrix returns the rotation matrix for a class, if the group is matrix
// backed.
func (g *Group) Matrix(id ID) (Matrix, bool) {
	if g.mats == nil {
		return Matrix{}, false
	}
	return g.mats[id], true
}

// Find returns the class of a rotation matrix in a matrix-backed group.
func (g *Group) Find(m Matrix) (ID, bool) {
	for i, candidate := range g.mats {
		if candidate == m {
			return ID(i), true
		}
	}
	return 0, false
}

// Matrix is an integer 3x3 rotation matrix, applied to column vectors.
type Matrix [3][3]int

// QuarterTurn returns the counterclockwise quarter turn about a unit axis
// (right hand rule). For a unit axis k this is [k]x + k k^T.
func QuarterTurn(axis [3]int) Matrix {
	x, y, z := axis[0], axis[1], axis[2]
	return Matrix{
		{x * x, x*y - z, x*z + y},
		{x*y + z, y * y, y*z - x},
		{x*z - y, y*z + x, z * z},
	}
}

// Mul returns m * o, the rotation o followed by m.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

// Apply rotates v by m.
func (m Matrix) Apply(v [3]int) [3]int {
	return [3]int{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Transpose returns the transpose of m, which for a rotation is its inverse.
func (m Matrix) Transpose() Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Det returns the determinant of m.
func (m Matrix) Det() int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Quaternion converts m to a unit quaternion with non-negative W.
func (m Matrix) Quaternion() quaternion.Quaternion {
	r := func(i, j int) float64 { return float64(m[i][j]) }
	tr := r(0, 0) + r(1, 1) + r(2, 2)

	var q quaternion.Quaternion
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = quaternion.Quaternion{W: s / 4, X: (r(2, 1) - r(1, 2)) / s, Y: (r(0, 2) - r(2, 0)) / s, Z: (r(1, 0) - r(0, 1)) / s}
	case r(0, 0) >= r(1, 1) && r(0, 0) >= r(2, 2):
		s := math.Sqrt(1+r(0, 0)-r(1, 1)-r(2, 2)) * 2
		q = quaternion.Quaternion{W: (r(2, 1) - r(1, 2)) / s, X: s / 4, Y: (r(0, 1) + r(1, 0)) / s, Z: (r(0, 2) + r(2, 0)) / s}
	case r(1, 1) >= r(2, 2):
		s := math.Sqrt(1+r(1, 1)-r(0, 0)-r(2, 2)) * 2
		q = quaternion.Quaternion{W: (r(0, 2) - r(2, 0)) / s, X: (r(0, 1) + r(1, 0)) / s, Y: s / 4, Z: (r(1, 2) + r(2, 1)) / s}
	default:
		s := math.Sqrt(1+r(2, 2)-r(0, 0)-r(1, 1)) * 2
		q = quaternion.Quaternion{W: (r(1, 0) - r(0, 1)) / s, X: (r(0, 2) + r(2, 0)) / s, Y: (r(1, 2) + r(2, 1)) / s, Z: s / 4}
	}

	if q.W < 0 || (q.W == 0 && (q.X < 0 || (q.X == 0 && (q.Y < 0 || (q.Y == 0 && q.Z < 0))))) {
		q = quaternion.Quaternion{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
	}
	return q
}

// AxisAngle returns the quaternion rotating by angle radians about axis.
func AxisAngle(axis [3]float64, angle float64) quaternion.Quaternion {
	s := math.Sin(angle / 2)
	return quaternion.Quaternion{
		W: math.Cos(angle / 2),
		X: s * axis[0],
		Y: s * axis[1],
		Z: s * axis[2],
	}
}
