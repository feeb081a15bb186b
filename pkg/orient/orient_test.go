package orient

import (
	"math"
	"testing"

	"github.com/westphae/quaternion"
)

func TestCubeGroupHas24Rotations(t *testing.T) {
	g := Cube()
	if g.Len() != 24 {
		t.Fatalf("expected 24 rotations, got %d", g.Len())
	}
	m, ok := g.Matrix(Identity)
	if !ok || m != (Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}) {
		t.Errorf("class 0 should be the identity matrix, got %v", m)
	}
}

func TestCubeGroupIsClosedWithInverses(t *testing.T) {
	g := Cube()
	for a := ID(0); int(a) < g.Len(); a++ {
		if g.Compose(a, g.Inverse(a)) != Identity || g.Compose(g.Inverse(a), a) != Identity {
			t.Errorf("class %d: inverse %d does not cancel", a, g.Inverse(a))
		}
		for b := ID(0); int(b) < g.Len(); b++ {
			c := g.Compose(a, b)
			if !g.Valid(c) {
				t.Fatalf("compose(%d, %d) = %d escapes the group", a, b, c)
			}
		}
	}
}

func TestQuarterTurnHasOrderFour(t *testing.T) {
	axes := [][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, axis := range axes {
		q := QuarterTurn(axis)
		if q.Det() != 1 {
			t.Errorf("quarter turn about %v has det %d", axis, q.Det())
		}
		if q.Apply(axis) != axis {
			t.Errorf("quarter turn about %v moves its own axis", axis)
		}
		r := q.Mul(q).Mul(q).Mul(q)
		if r != (Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}) {
			t.Errorf("quarter turn about %v to the fourth is %v", axis, r)
		}
		if q.Mul(q.Transpose()) != (Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}) {
			t.Errorf("transpose of quarter turn about %v is not its inverse", axis)
		}
	}
}

func TestQuarterTurnIsCounterclockwise(t *testing.T) {
	// Looking down +z, x should turn towards y.
	got := QuarterTurn([3]int{0, 0, 1}).Apply([3]int{1, 0, 0})
	if got != [3]int{0, 1, 0} {
		t.Errorf("expected x to rotate onto y, got %v", got)
	}
}

func sameRotation(a, b quaternion.Quaternion) bool {
	const eps = 1e-9
	d1 := math.Abs(a.W-b.W) + math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y) + math.Abs(a.Z-b.Z)
	d2 := math.Abs(a.W+b.W) + math.Abs(a.X+b.X) + math.Abs(a.Y+b.Y) + math.Abs(a.Z+b.Z)
	return d1 < eps || d2 < eps
}

func rotate(q quaternion.Quaternion, v [3]int) [3]float64 {
	p := quaternion.Quaternion{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
	conj := quaternion.Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
	r := quaternion.Prod(q, p, conj)
	return [3]float64{r.X, r.Y, r.Z}
}

func TestQuaternionsMatchMatrices(t *testing.T) {
	g := Cube()
	basis := [][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for a := ID(0); int(a) < g.Len(); a++ {
		m, _ := g.Matrix(a)
		q := g.Quaternion(a)
		if q.W < 0 {
			t.Errorf("class %d quaternion not canonical: %+v", a, q)
		}
		for _, v := range basis {
			want := m.Apply(v)
			got := rotate(q, v)
			for i := 0; i < 3; i++ {
				if math.Abs(got[i]-float64(want[i])) > 1e-9 {
					t.Fatalf("class %d rotates %v to %v by quaternion, %v by matrix", a, v, got, want)
				}
			}
		}
	}
}

func TestComposeMatchesQuaternionProduct(t *testing.T) {
	g := Cube()
	for a := ID(0); int(a) < g.Len(); a++ {
		for b := ID(0); int(b) < g.Len(); b++ {
			want := quaternion.Prod(g.Quaternion(a), g.Quaternion(b))
			if !sameRotation(g.Quaternion(g.Compose(a, b)), want) {
				t.Errorf("compose(%d, %d) disagrees with quaternion product", a, b)
			}
		}
	}
}

func TestComposeAppliesSecondArgumentFirst(t *testing.T) {
	g := Cube()
	x, _ := g.Find(QuarterTurn([3]int{1, 0, 0}))
	z, _ := g.Find(QuarterTurn([3]int{0, 0, 1}))

	mx, _ := g.Matrix(x)
	mz, _ := g.Matrix(z)
	v := [3]int{1, 0, 0}
	// z first takes +x to +y, then x takes +y to +z.
	want := mx.Apply(mz.Apply(v))
	if want != [3]int{0, 0, 1} {
		t.Fatalf("x after z moves +x to %v", want)
	}

	m, _ := g.Matrix(g.Compose(x, z))
	if got := m.Apply(v); got != want {
		t.Errorf("Compose(x, z) moves +x to %v, want %v", got, want)
	}
}

func TestFromTableRoundTrip(t *testing.T) {
	g, err := FromTable(Cube().Table(), nil)
	if err != nil {
		t.Fatalf("FromTable rejected the cube table: %v", err)
	}
	if g.Len() != 24 {
		t.Errorf("expected 24 classes, got %d", g.Len())
	}
	if q := g.Quaternion(5); q.W != 1 {
		t.Errorf("table groups without quaternions should report identity, got %+v", q)
	}
	if _, ok := g.Matrix(1); ok {
		t.Error("table groups should not report matrices")
	}
}

func TestFromTableRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		table [][]int
	}{
		{"empty", nil},
		{"ragged", [][]int{{0, 1}, {1}}},
		{"out of range", [][]int{{0, 2}, {1, 0}}},
		{"no identity", [][]int{{1, 0}, {0, 1}}},
		{"repeated", [][]int{{0, 1}, {1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromTable(tt.table, nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
