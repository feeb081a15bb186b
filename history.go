package twisty

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// History is the move log of a puzzle. Initial holds scramble moves applied
// before interactive play; Undo holds interactive moves still in effect,
// most recent last. The redo stack is not persisted.
type History struct {
	Initial []int `json:"initial_history"`
	Undo    []int `json:"undo_history"`

	redo []int
}

// Redo returns the moves available to Redo, most recent last.
func (h History) Redo() []int {
	return h.redo
}

// Equal reports whether h and o hold the same persisted sequences.
func (h History) Equal(o History) bool {
	return equalInts(h.Initial, o.Initial) && equalInts(h.Undo, o.Undo)
}

func (h History) clone() History {
	return History{
		Initial: append([]int(nil), h.Initial...),
		Undo:    append([]int(nil), h.Undo...),
		redo:    append([]int(nil), h.redo...),
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// History returns a copy of the move log.
func (p *Puzzle) History() History {
	return p.history.clone()
}

// MoveHistoryLen returns the number of interactive moves in effect.
func (p *Puzzle) MoveHistoryLen() int {
	return len(p.history.Undo)
}

// DoMove applies a move as an interactive edit. Any redo history is lost.
func (p *Puzzle) DoMove(id int) {
	p.state.Apply(id)
	p.history.Undo = append(p.history.Undo, id)
	p.history.redo = nil
}

// CanUndo reports whether Undo would change the state.
func (p *Puzzle) CanUndo() bool {
	return len(p.history.Undo) > 0
}

// CanRedo reports whether Redo would change the state.
func (p *Puzzle) CanRedo() bool {
	return len(p.history.redo) > 0
}

// Undo reverts the most recent interactive move. It returns false when there
// is nothing to undo.
func (p *Puzzle) Undo() bool {
	n := len(p.history.Undo)
	if n == 0 {
		return false
	}
	id := p.history.Undo[n-1]
	p.history.Undo = p.history.Undo[:n-1]
	p.state.Apply(p.state.Opposite(id))
	p.history.redo = append(p.history.redo, id)
	return true
}

// Redo re-applies the most recently undone move. It returns false when there
// is nothing to redo.
func (p *Puzzle) Redo() bool {
	n := len(p.history.redo)
	if n == 0 {
		return false
	}
	id := p.history.redo[n-1]
	p.history.redo = p.history.redo[:n-1]
	p.state.Apply(id)
	p.history.Undo = append(p.history.Undo, id)
	return true
}

// Scramble applies count uniformly random moves as a new baseline that
// cannot be undone. Interactive moves made before the scramble are folded
// into the baseline so that replay order matches play order, and redo
// history is dropped.
func (p *Puzzle) Scramble(count int) []int {
	if count <= 0 {
		return nil
	}
	p.history.Initial = append(p.history.Initial, p.history.Undo...)
	p.history.Undo = nil
	p.history.redo = nil

	moves := make([]int, count)
	for i := range moves {
		moves[i] = p.cfg.rng.Intn(p.model.MoveCount())
		p.state.Apply(moves[i])
	}
	p.history.Initial = append(p.history.Initial, moves...)

	p.log().WithField("count", count).Debug("scrambled")
	return moves
}

// Serialize encodes the persisted history as JSON:
//
//	{"initial_history":[...],"undo_history":[...]}
func (p *Puzzle) Serialize() ([]byte, error) {
	h := History{
		Initial: nonNil(p.history.Initial),
		Undo:    nonNil(p.history.Undo),
	}
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}
	return data, nil
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}

// ParseHistory decodes a serialized history without applying it.
func ParseHistory(data []byte) (History, error) {
	if len(data) == 0 {
		return History{}, fmt.Errorf("%w: empty input", ErrInvalidHistory)
	}
	var raw struct {
		Initial *[]int `json:"initial_history"`
		Undo    *[]int `json:"undo_history"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return History{}, fmt.Errorf("%w: %v", ErrInvalidHistory, err)
	}
	if raw.Initial == nil && raw.Undo == nil {
		return History{}, fmt.Errorf("%w: no history keys present", ErrInvalidHistory)
	}

	var h History
	if raw.Initial != nil {
		h.Initial = *raw.Initial
	}
	if raw.Undo != nil {
		h.Undo = *raw.Undo
	}
	return h, nil
}

// Deserialize replaces the puzzle state and history with a serialized
// history. On any error the puzzle is left exactly as it was.
func (p *Puzzle) Deserialize(data []byte) error {
	h, err := ParseHistory(data)
	if err != nil {
		return err
	}
	return p.LoadHistory(h)
}

// LoadHistory rebuilds the state by replaying h from the default state:
// Initial by plain application, Undo as interactive moves. On error the
// puzzle is unchanged.
func (p *Puzzle) LoadHistory(h History) error {
	if err := p.checkIDs("initial_history", h.Initial); err != nil {
		return err
	}
	if err := p.checkIDs("undo_history", h.Undo); err != nil {
		return err
	}

	scratch := &Puzzle{model: p.model, state: NewState(p.model), cfg: p.cfg}
	for _, id := range h.Initial {
		scratch.state.Apply(id)
	}
	scratch.history.Initial = append([]int(nil), h.Initial...)
	for _, id := range h.Undo {
		scratch.DoMove(id)
	}

	p.state = scratch.state
	p.history = scratch.history
	p.log().WithFields(logrus.Fields{
		"initial": len(h.Initial),
		"undo":    len(h.Undo),
	}).Debug("history loaded")
	return nil
}

func (p *Puzzle) checkIDs(field string, ids []int) error {
	for i, id := range ids {
		if !p.model.ValidMove(id) {
			p.log().WithFields(logrus.Fields{"field": field, "move": id}).Debug("rejected history entry")
			return fmt.Errorf("%w: %s[%d] = %d, puzzle has %d moves", ErrInvalidHistory, field, i, id, p.model.MoveCount())
		}
	}
	return nil
}
