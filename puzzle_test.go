package twisty

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/SeamusWaldron/twisty/internal/puzzledata"
)

func TestNewCubeIsSolved(t *testing.T) {
	for n := 1; n <= 4; n++ {
		p := MustCube(n)
		if !p.IsSolved() {
			t.Errorf("new %d-cube should be solved", n)
		}
		if got, want := p.FacetCount(), 6*n*n; got != want {
			t.Errorf("n=%d: FacetCount = %d, want %d", n, got, want)
		}
		if got, want := p.MoveCount(), 6*n; got != want {
			t.Errorf("n=%d: MoveCount = %d, want %d", n, got, want)
		}
		for i, o := range p.Snapshot().Orientations {
			if o != 0 {
				t.Errorf("n=%d: facet %d starts in orientation %d", n, i, o)
			}
		}
	}
}

func TestNewCubeRejectsBadSize(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, err := NewCube(n); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewCube(%d) error = %v, want ErrInvalidSize", n, err)
		}
	}
}

func TestMustCubePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCube(0) should panic")
		}
	}()
	MustCube(0)
}

func TestCubesShareModel(t *testing.T) {
	a, b := MustCube(3), MustCube(3)
	if a.Model() != b.Model() {
		t.Error("cubes of the same size should share one model")
	}
	a.DoMove(0)
	if !b.IsSolved() {
		t.Error("moving one cube should not affect another")
	}
}

func TestApplyMovesColors(t *testing.T) {
	for n := 1; n <= 4; n++ {
		p := MustCube(n, WithSeed(int64(n)))
		p.Scramble(10)
		for id := 0; id < p.MoveCount(); id++ {
			before := p.Snapshot()
			p.ApplyMove(id)
			after := p.Snapshot()
			perm := p.Model().Moves[id].Perm
			for i, dst := range perm {
				if after.Colors[dst] != before.Colors[i] {
					t.Fatalf("n=%d move %d: color at %d did not travel to %d", n, id, i, dst)
				}
			}
			p.ApplyMove(p.OppositeMove(id))
		}
	}
}

func TestOppositeRestoresState(t *testing.T) {
	for n := 1; n <= 4; n++ {
		p := MustCube(n, WithSeed(42))
		p.Scramble(15)
		for id := 0; id < p.MoveCount(); id++ {
			before := p.Snapshot()
			p.ApplyMove(id)
			p.ApplyMove(p.OppositeMove(id))
			if !p.Snapshot().Equal(before) {
				t.Errorf("n=%d: move %d then its opposite changed the state", n, id)
			}
		}
	}
}

func TestFourQuarterTurnsIsIdentity(t *testing.T) {
	p := MustCube(3)
	for id := 0; id < p.MoveCount(); id++ {
		for i := 0; i < 4; i++ {
			p.ApplyMove(id)
		}
		if !p.Snapshot().Equal(MustCube(3).Snapshot()) {
			t.Errorf("four turns of move %d should restore the default state", id)
		}
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	p := MustCube(3)
	p.DoMove(0)
	if p.IsSolved() {
		t.Error("cube should not be solved after one move")
	}
}

func TestColorCountsArePreserved(t *testing.T) {
	for _, n := range []int{2, 3} {
		p := MustCube(n)
		rng := rand.New(rand.NewSource(int64(n)))
		for i := 0; i < 200; i++ {
			p.ApplyMove(rng.Intn(p.MoveCount()))
		}
		counts := make(map[int]int)
		snap := p.Snapshot()
		for i, c := range snap.Colors {
			counts[c]++
			if !p.Model().Orient.Valid(snap.Orientations[i]) {
				t.Errorf("n=%d: facet %d has orientation %d outside the group", n, i, snap.Orientations[i])
			}
		}
		for c := 0; c < 6; c++ {
			if counts[c] != n*n {
				t.Errorf("n=%d: color %d appears %d times, want %d", n, c, counts[c], n*n)
			}
		}
	}
}

func TestMoveComposesAffectedOrientations(t *testing.T) {
	p := MustCube(3)
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 30; i++ {
		p.ApplyMove(rng.Intn(p.MoveCount()))
	}
	group := p.Model().Orient

	for id, mv := range p.Model().Moves {
		before := p.Snapshot()
		p.ApplyMove(id)
		after := p.Snapshot()

		for i, dst := range mv.Perm {
			want := before.Orientations[i]
			if mv.Affected[i] {
				want = group.Compose(want, mv.Orientation)
			}
			if after.Orientations[dst] != want {
				t.Fatalf("move %d: facet %d -> %d has orientation %d, want %d", id, i, dst, after.Orientations[dst], want)
			}
			if after.Colors[dst] != before.Colors[i] {
				t.Fatalf("move %d: facet %d -> %d carried color %d, want %d", id, i, dst, after.Colors[dst], before.Colors[i])
			}
		}
	}
}

func TestSexyMoveSixTimesReturnsToSolved(t *testing.T) {
	p := MustCube(3)
	for i := 0; i < 6; i++ {
		if err := p.ApplyNotation("R U R' U'"); err != nil {
			t.Fatal(err)
		}
	}
	if !p.IsSolved() {
		t.Error("(R U R' U') x 6 should return to solved")
	}
}

func TestApplyOutOfRangePanics(t *testing.T) {
	p := MustCube(2)
	for _, id := range []int{-1, p.MoveCount()} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ApplyMove(%d) should panic", id)
				}
			}()
			p.ApplyMove(id)
		}()
	}
}

func TestResetClearsEverything(t *testing.T) {
	p := MustCube(3, WithSeed(1))
	p.Scramble(5)
	p.DoMove(1)
	p.Undo()
	p.Reset()

	if !p.IsSolved() || p.CanUndo() || p.CanRedo() {
		t.Error("Reset should leave a solved cube with no history")
	}
	if h := p.History(); len(h.Initial) != 0 {
		t.Errorf("Reset kept %d scramble moves", len(h.Initial))
	}
}

func TestFingerprint(t *testing.T) {
	a, b := MustCube(3), MustCube(3)
	if a.Snapshot().Fingerprint() != b.Snapshot().Fingerprint() {
		t.Error("equal states should have equal fingerprints")
	}
	a.DoMove(4)
	if a.Snapshot().Fingerprint() == b.Snapshot().Fingerprint() {
		t.Error("different states should have different fingerprints")
	}
	b.DoMove(4)
	if a.Snapshot().Fingerprint() != b.Snapshot().Fingerprint() {
		t.Error("same moves should give the same fingerprint")
	}
}

func dataPuzzle(t *testing.T) *Puzzle {
	t.Helper()
	raw, err := puzzledata.Generate().Marshal(puzzledata.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	p, err := FromData(raw)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFromData(t *testing.T) {
	p := dataPuzzle(t)
	if p.FacetCount() != 81 || p.MoveCount() != 18 {
		t.Fatalf("data puzzle has %d facets and %d moves", p.FacetCount(), p.MoveCount())
	}
	if !p.IsSolved() {
		t.Error("data puzzle should start solved")
	}

	p.DoMove(0)
	if p.IsSolved() {
		t.Error("data puzzle should not be solved after a move")
	}
	p.Undo()
	if !p.Snapshot().Equal(dataPuzzle(t).Snapshot()) {
		t.Error("undo should restore the data puzzle")
	}
}

func TestFromDataRejectsGarbage(t *testing.T) {
	if _, err := FromData([]byte("{}")); !errors.Is(err, ErrInvalidData) {
		t.Errorf("FromData({}) error = %v, want ErrInvalidData", err)
	}
}

func TestFromDataFile(t *testing.T) {
	path := t.TempDir() + "/cube.yaml"
	if err := puzzledata.Generate().WriteFile(path, puzzledata.FormatYAML); err != nil {
		t.Fatal(err)
	}
	p, err := FromDataFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.FacetCount() != 81 {
		t.Errorf("FacetCount = %d, want 81", p.FacetCount())
	}

	if _, err := FromDataFile(t.TempDir() + "/missing.json"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestNotationOnlyForCubes(t *testing.T) {
	if err := dataPuzzle(t).ApplyNotation("R"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("error = %v, want ErrInvalidNotation", err)
	}

	p := MustCube(3)
	if err := p.ApplyNotation("R Q"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("error = %v, want ErrInvalidNotation", err)
	}
	if p.MoveHistoryLen() != 0 {
		t.Error("a bad sequence should apply nothing")
	}

	moves, err := p.ParseMoves("R U2")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.FormatMoves(moves); got != "R U U" {
		t.Errorf("FormatMoves = %q, want %q", got, "R U U")
	}
}
