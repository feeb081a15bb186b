package twisty

import (
	"errors"
	"testing"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	p := MustCube(3)
	moves := []int{0, 7, 13, 2, 17, 5}
	for _, id := range moves {
		p.DoMove(id)
	}
	played := p.Snapshot()

	for range moves {
		if !p.Undo() {
			t.Fatal("Undo returned false with moves left")
		}
	}
	if !p.Snapshot().Equal(MustCube(3).Snapshot()) {
		t.Error("undoing every move should restore the default state")
	}
	if p.Undo() {
		t.Error("Undo with an empty stack should return false")
	}

	for range moves {
		if !p.Redo() {
			t.Fatal("Redo returned false with moves left")
		}
	}
	if !p.Snapshot().Equal(played) {
		t.Error("redoing every move should restore the played state")
	}
	if p.Redo() {
		t.Error("Redo with an empty stack should return false")
	}
	if got := p.History().Undo; !equalInts(got, moves) {
		t.Errorf("undo history = %v, want %v", got, moves)
	}
}

func TestDoMoveClearsRedo(t *testing.T) {
	p := MustCube(3)
	p.DoMove(1)
	p.DoMove(2)
	p.Undo()
	if !p.CanRedo() {
		t.Fatal("expected a move to redo")
	}
	p.DoMove(3)
	if p.CanRedo() {
		t.Error("a new move should clear the redo stack")
	}
	if p.MoveHistoryLen() != 2 {
		t.Errorf("MoveHistoryLen = %d, want 2", p.MoveHistoryLen())
	}
}

func TestScrambleZeroIsNoOp(t *testing.T) {
	p := MustCube(3)
	p.DoMove(4)
	before, history := p.Snapshot(), p.History()

	if moves := p.Scramble(0); moves != nil {
		t.Errorf("Scramble(0) = %v, want nil", moves)
	}
	if !p.Snapshot().Equal(before) || !p.History().Equal(history) {
		t.Error("Scramble(0) should change nothing")
	}
}

func TestScrambleIsSeeded(t *testing.T) {
	a := MustCube(3, WithSeed(99))
	b := MustCube(3, WithSeed(99))
	ma, mb := a.Scramble(25), b.Scramble(25)
	if !equalInts(ma, mb) {
		t.Errorf("same seed gave %v and %v", ma, mb)
	}
	if len(ma) != 25 {
		t.Fatalf("Scramble(25) returned %d moves", len(ma))
	}
	for _, id := range ma {
		if id < 0 || id >= a.MoveCount() {
			t.Errorf("scramble move %d out of range", id)
		}
	}
	if a.CanUndo() {
		t.Error("scramble moves should not be undoable")
	}
	if !equalInts(a.History().Initial, ma) {
		t.Error("scramble should be recorded as the initial history")
	}
}

func TestScrambleFoldsInteractiveMoves(t *testing.T) {
	p := MustCube(3, WithSeed(5))
	p.DoMove(3)
	p.DoMove(9)
	p.Undo()
	moves := p.Scramble(4)

	h := p.History()
	want := append([]int{3}, moves...)
	if !equalInts(h.Initial, want) {
		t.Errorf("initial history = %v, want %v", h.Initial, want)
	}
	if p.CanUndo() || p.CanRedo() {
		t.Error("scramble should leave no undo or redo")
	}

	data, err := p.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	q := MustCube(3)
	if err := q.Deserialize(data); err != nil {
		t.Fatal(err)
	}
	if !q.Snapshot().Equal(p.Snapshot()) {
		t.Error("replayed state differs from played state")
	}
}

func TestSerializeEmpty(t *testing.T) {
	data, err := MustCube(2).Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"initial_history":[],"undo_history":[]}`; got != want {
		t.Errorf("Serialize = %s, want %s", got, want)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	p := MustCube(4, WithSeed(11))
	p.Scramble(20)
	for _, id := range []int{1, 22, 5, 14} {
		p.DoMove(id)
	}
	p.Undo()

	data, err := p.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	q := MustCube(4)
	if err := q.Deserialize(data); err != nil {
		t.Fatal(err)
	}
	if !q.History().Equal(p.History()) {
		t.Errorf("history %+v, want %+v", q.History(), p.History())
	}
	if !q.Snapshot().Equal(p.Snapshot()) {
		t.Error("replayed state differs from original")
	}
	if q.CanRedo() {
		t.Error("redo history is not persisted")
	}
	if q.MoveHistoryLen() != 3 {
		t.Errorf("MoveHistoryLen = %d, want 3", q.MoveHistoryLen())
	}
}

func TestDeserializeAcceptsOneKey(t *testing.T) {
	p := MustCube(3)
	if err := p.Deserialize([]byte(`{"undo_history":[0,1]}`)); err != nil {
		t.Fatal(err)
	}
	if p.MoveHistoryLen() != 2 {
		t.Errorf("MoveHistoryLen = %d, want 2", p.MoveHistoryLen())
	}
}

func TestDeserializeRejectsBadInput(t *testing.T) {
	inputs := []string{
		"",
		"not json",
		"{}",
		`{"initial_history":"R U"}`,
		`{"initial_history":[0, 18]}`,
		`{"initial_history":[], "undo_history":[-1]}`,
	}

	for _, input := range inputs {
		p := MustCube(3, WithSeed(3))
		p.Scramble(6)
		p.DoMove(2)
		before, history := p.Snapshot(), p.History()

		err := p.Deserialize([]byte(input))
		if !errors.Is(err, ErrInvalidHistory) {
			t.Errorf("Deserialize(%q) error = %v, want ErrInvalidHistory", input, err)
		}
		if !p.Snapshot().Equal(before) || !p.History().Equal(history) {
			t.Errorf("Deserialize(%q) changed the puzzle", input)
		}
	}
}
