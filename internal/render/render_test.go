package render

import (
	"strings"
	"testing"

	"github.com/SeamusWaldron/twisty/internal/geometry"
	"github.com/SeamusWaldron/twisty/internal/puzzledata"
	"github.com/SeamusWaldron/twisty/pkg/types"
)

func TestCubeNetCoversEveryFacet(t *testing.T) {
	for n := 1; n <= 4; n++ {
		model, err := geometry.Compile(n)
		if err != nil {
			t.Fatal(err)
		}
		g, err := CubeNet(model)
		if err != nil {
			t.Fatal(err)
		}
		if g.Rows() != 3*n || g.Cols() != 4*n {
			t.Errorf("n=%d: grid is %dx%d", n, g.Rows(), g.Cols())
		}

		seen := make(map[int]bool)
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				if f := g.At(r, c); f >= 0 {
					if seen[f] {
						t.Errorf("n=%d: facet %d drawn twice", n, f)
					}
					seen[f] = true
				}
			}
		}
		if len(seen) != model.FacetCount() {
			t.Errorf("n=%d: net shows %d of %d facets", n, len(seen), model.FacetCount())
		}
	}
}

func TestCubeNetFaces(t *testing.T) {
	model, _ := geometry.Compile(3)
	g, _ := CubeNet(model)

	// Centers of each block
	want := map[[2]int]types.Side{
		{1, 4}:  types.SidePosZ,
		{4, 1}:  types.SideNegX,
		{4, 4}:  types.SideNegY,
		{4, 7}:  types.SidePosX,
		{4, 10}: types.SidePosY,
		{7, 4}:  types.SideNegZ,
	}
	for cell, side := range want {
		f := model.Facets[g.At(cell[0], cell[1])]
		if f.Side != side {
			t.Errorf("cell %v shows side %v, want %v", cell, f.Side, side)
		}
	}
}

func TestCubeNetSeams(t *testing.T) {
	const n = 3
	model, _ := geometry.Compile(n)
	g, _ := CubeNet(model)
	cubie := func(r, c int) types.Vec3 { return model.Facets[g.At(r, c)].Cubie }

	for i := 0; i < n; i++ {
		// U above F
		if cubie(n-1, n+i) != cubie(n, n+i) {
			t.Errorf("U/F seam at column %d", i)
		}
		// F above D
		if cubie(2*n-1, n+i) != cubie(2*n, n+i) {
			t.Errorf("F/D seam at column %d", i)
		}
		// L beside F, F beside R, R beside B
		for _, col := range []int{n - 1, 2*n - 1, 3*n - 1} {
			if cubie(n+i, col) != cubie(n+i, col+1) {
				t.Errorf("seam at row %d, column %d", i, col)
			}
		}
	}
}

func TestCubeNetRejectsData(t *testing.T) {
	model, err := puzzledata.Generate().Model()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := CubeNet(model); err != ErrNotCube {
		t.Errorf("error = %v, want ErrNotCube", err)
	}

	g := ForModel(model, 9)
	if g.Rows() != 6 || g.Cols() != 9 {
		t.Errorf("strip is %dx%d, want 6x9", g.Rows(), g.Cols())
	}
}

func TestGridLookups(t *testing.T) {
	model, _ := geometry.Compile(2)
	g, _ := CubeNet(model)

	if g.At(-1, 0) != -1 || g.At(0, 0) != -1 || g.At(0, 100) != -1 {
		t.Error("empty and out-of-range cells should be -1")
	}
	r, c, ok := g.First()
	if !ok || r != 0 || c != 2 {
		t.Errorf("First = %d, %d, %v", r, c, ok)
	}
	f := g.At(3, 5)
	if r, c, ok := g.Find(f); !ok || r != 3 || c != 5 {
		t.Errorf("Find(%d) = %d, %d, %v", f, r, c, ok)
	}
	if _, _, ok := g.Find(-1); ok {
		t.Error("Find(-1) should fail")
	}
}

func TestRender(t *testing.T) {
	model, _ := geometry.Compile(2)
	g, _ := CubeNet(model)
	colors := make([]int, model.FacetCount())
	for i, f := range model.Facets {
		colors[i] = f.Color
	}

	p := NewPainter(model.Palette)
	out := p.Render(g, colors, Marks{Cursor: g.At(2, 2), Selected: g.At(3, 3)})
	if got := strings.Count(out, "\n"); got != g.Rows() {
		t.Errorf("rendered %d lines, want %d", got, g.Rows())
	}
	if !strings.Contains(out, "[]") || !strings.Contains(out, "<>") {
		t.Error("cursor and selection should be drawn")
	}
	if strings.Contains(p.Render(g, colors, NoMarks), "[]") {
		t.Error("no marks should draw no cursor")
	}
}

func TestHex(t *testing.T) {
	if got := Hex([3]float64{1, 0.5, 0}); got != "#ff8000" {
		t.Errorf("Hex = %s", got)
	}
	if got := Hex([3]float64{-1, 2, 0}); got != "#00ff00" {
		t.Errorf("Hex clamps to %s", got)
	}
}
