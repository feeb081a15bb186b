package twisty

import (
	"testing"

	"github.com/SeamusWaldron/twisty/internal/puzzledata"
)

func TestTryRotateFindsEveryMove(t *testing.T) {
	for n := 2; n <= 4; n++ {
		p := MustCube(n)
		m := p.Model()
		checked := 0
		for from, f := range m.Facets {
			for id, mv := range m.Moves {
				to := mv.Perm[from]
				if to == from || m.Facets[to].Side == f.Side {
					continue
				}
				got, ok := p.TryRotate(from, to)
				if !ok || got != id {
					t.Errorf("n=%d: TryRotate(%d, %d) = %d, %v; want move %d", n, from, to, got, ok, id)
				}
				checked++
			}
		}
		if checked == 0 {
			t.Errorf("n=%d: no gestures checked", n)
		}
	}
}

func TestTryRotateRejectsNonGestures(t *testing.T) {
	p := MustCube(3)
	pairs := [][2]int{{-1, 0}, {0, -1}, {0, p.FacetCount()}, {p.FacetCount(), 0}, {5, 5}}
	for _, pair := range pairs {
		if id, ok := p.TryRotate(pair[0], pair[1]); ok {
			t.Errorf("TryRotate(%d, %d) = %d, want no move", pair[0], pair[1], id)
		}
	}
}

// bestMoves returns the lowest distance any move achieves for a drag and
// every move achieving it.
func bestMoves(p *Puzzle, from, to int) (int, []int) {
	m := p.Model()
	penalty := m.Size + 2
	best := -1
	var ids []int
	for id, mv := range m.Moves {
		moved := mv.Perm[from]
		if moved == from || m.Facets[moved].Side == m.Facets[from].Side {
			continue
		}
		d := m.Facets[moved].Cubie.Manhattan(m.Facets[to].Cubie)
		if m.Facets[moved].Side != m.Facets[to].Side {
			d += penalty
		}
		switch {
		case best < 0 || d < best:
			best, ids = d, []int{id}
		case d == best:
			ids = append(ids, id)
		}
	}
	return best, ids
}

func TestTryRotatePicksLowestOfTies(t *testing.T) {
	p := MustCube(3)
	ties := 0
	for from := 0; from < p.FacetCount(); from++ {
		for to := 0; to < p.FacetCount(); to++ {
			if from == to {
				continue
			}
			_, ids := bestMoves(p, from, to)
			got, ok := p.TryRotate(from, to)
			if !ok {
				t.Fatalf("TryRotate(%d, %d) found no move", from, to)
			}
			if got != ids[0] {
				t.Errorf("TryRotate(%d, %d) = %d, want %d of %v", from, to, got, ids[0], ids)
			}
			if len(ids) > 1 {
				ties++
			}
		}
	}
	if ties == 0 {
		t.Error("expected some drags with tied moves")
	}
}

func TestTryRotateUsesGestureTable(t *testing.T) {
	d := puzzledata.Generate()
	model, err := d.Model()
	if err != nil {
		t.Fatal(err)
	}
	p := FromModel(model)

	for from, row := range d.MoveTable {
		for to, want := range row {
			got, ok := p.TryRotate(from, to)
			if want < 0 {
				if ok {
					t.Errorf("TryRotate(%d, %d) = %d, table has no move", from, to, got)
				}
				continue
			}
			if !ok || got != want {
				t.Errorf("TryRotate(%d, %d) = %d, %v; table says %d", from, to, got, ok, want)
			}
		}
	}
}

func TestTryRotateDataWithoutTableScoresBySide(t *testing.T) {
	d := puzzledata.Generate()
	d.MoveTable = nil
	model, err := d.Model()
	if err != nil {
		t.Fatal(err)
	}
	p := FromModel(model)

	resolved := 0
	for from, f := range model.Facets {
		if !f.Colored() {
			continue
		}
		for _, mv := range model.Moves {
			to := mv.Perm[from]
			if model.Facets[to].Side == f.Side {
				continue
			}
			if _, ok := p.TryRotate(from, to); !ok {
				t.Fatalf("TryRotate(%d, %d) found no move", from, to)
			}
			resolved++
		}
	}
	if resolved == 0 {
		t.Error("expected drags across sides")
	}
}

type fakePicker map[float64]int

func (f fakePicker) FacetUnderRay(ray Ray) int {
	if i, ok := f[ray.Origin[0]]; ok {
		return i
	}
	return -1
}

func TestGesture(t *testing.T) {
	p := MustCube(3)
	m := p.Model()
	from := 0
	to := m.Moves[2].Perm[from]
	want, ok := p.TryRotate(from, to)
	if !ok {
		t.Fatalf("TryRotate(%d, %d) found no move", from, to)
	}

	picker := fakePicker{1: from, 2: to}
	got, ok := p.Gesture(picker, Ray{Origin: [3]float64{1}}, Ray{Origin: [3]float64{2}})
	if !ok || got != want {
		t.Errorf("Gesture = %d, %v; want %d", got, ok, want)
	}

	if _, ok := p.Gesture(picker, Ray{Origin: [3]float64{1}}, Ray{Origin: [3]float64{9}}); ok {
		t.Error("releasing over nothing should not resolve a move")
	}
}
